package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vigia-app/vigia-backend/internal/models"
	"github.com/vigia-app/vigia-backend/pkg/e"
)

type leaderboardService struct {
	repo   NeighborhoodRepository
	logger *logrus.Logger
}

func NewLeaderboardService(repo NeighborhoodRepository, logger *logrus.Logger) LeaderboardService {
	return &leaderboardService{
		repo:   repo,
		logger: logger,
	}
}

// Leaderboard returns neighborhoods ordered by verification rate, cache first.
func (s *leaderboardService) Leaderboard(ctx context.Context) ([]*models.Neighborhood, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "leaderboard",
		"method":  "Leaderboard",
	})

	cached, err := s.repo.GetLeaderboardFromCache(ctx)
	if err != nil {
		log.WithError(err).Warn("Leaderboard cache lookup failed, falling back to database")
	}
	if cached != nil {
		log.WithField("count", len(cached)).Debug("Leaderboard served from cache")
		return cached, nil
	}

	entries, err := s.repo.Leaderboard(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load leaderboard from repository")
		return nil, e.Wrap("service: could not load leaderboard", err)
	}

	if err := s.repo.SetLeaderboardCache(ctx, entries); err != nil {
		log.WithError(err).Warn("Failed to cache leaderboard")
	}

	log.WithField("count", len(entries)).Info("Leaderboard loaded")
	return entries, nil
}
