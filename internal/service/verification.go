package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vigia-app/vigia-backend/internal/config"
	"github.com/vigia-app/vigia-backend/internal/models"
	"github.com/vigia-app/vigia-backend/pkg/e"
	"github.com/vigia-app/vigia-backend/pkg/geo"
)

type verificationService struct {
	reports       ReportRepository
	neighborhoods NeighborhoodRepository
	directory     AuthDirectory
	logger        *logrus.Logger
	verifyRadius  float64
	listingRadius float64
}

func NewVerificationService(
	reports ReportRepository,
	neighborhoods NeighborhoodRepository,
	directory AuthDirectory,
	logger *logrus.Logger,
	cfg *config.Config,
) VerificationService {
	return &verificationService{
		reports:       reports,
		neighborhoods: neighborhoods,
		directory:     directory,
		logger:        logger,
		verifyRadius:  cfg.VerifyRadiusMeters,
		listingRadius: cfg.ListingRadiusMeters,
	}
}

// ListVerifiableReports returns the unverified reports the requester may
// attempt to verify, newest first. Admins see the full set regardless of
// location; everyone else needs a location and sees only nearby reports.
func (s *verificationService) ListVerifiableReports(ctx context.Context, requester *models.UserIdentity, loc *geo.Coordinate) ([]*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "verification",
		"method":  "ListVerifiableReports",
		"user_id": requester.ID,
	})
	log.Info("Listing verifiable reports")

	if !requester.IsAdmin() && loc == nil {
		log.Warn("Requester location unavailable")
		return nil, e.ErrLocationUnavailable
	}

	reports, err := s.reports.ListUnverified(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list unverified reports from repository")
		return nil, e.Wrap("service: could not list unverified reports", err)
	}

	if requester.IsAdmin() {
		log.WithField("count", len(reports)).Info("Returning full unverified set for admin")
		return reports, nil
	}

	// Repository order (created_at DESC) is preserved by filtering in place.
	nearby := make([]*models.Report, 0, len(reports))
	for _, report := range reports {
		if geo.DistanceMeters(*loc, report.Coordinate()) <= s.listingRadius {
			nearby = append(nearby, report)
		}
	}

	log.WithFields(logrus.Fields{"total": len(reports), "nearby": len(nearby)}).Info("Filtered reports by distance")
	return nearby, nil
}

// VerifyReport applies the one-way verified transition under the ownership
// and proximity guards. Checks run in a fixed order; the first failure wins.
func (s *verificationService) VerifyReport(ctx context.Context, requester *models.UserIdentity, reportID uuid.UUID, loc *geo.Coordinate) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "verification",
		"method":    "VerifyReport",
		"user_id":   requester.ID,
		"report_id": reportID,
	})
	log.Info("Attempting to verify report")

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			log.Warn("Report not found")
			return e.ErrReportNotFound
		}
		log.WithError(err).Error("Failed to get report from repository")
		return e.Wrap("service: could not load report", err)
	}

	// Self-verification is forbidden for every role, admins included.
	if report.UserID == requester.ID {
		log.Warn("Requester attempted to verify their own report")
		return e.ErrSelfVerification
	}

	if !requester.IsAdmin() {
		if loc == nil {
			log.Warn("Requester location unavailable")
			return e.ErrLocationUnavailable
		}
		distance := geo.DistanceMeters(*loc, report.Coordinate())
		if distance > s.verifyRadius {
			log.WithField("distance_m", distance).Warn("Requester too far from incident")
			return &e.TooFarError{DistanceMeters: distance}
		}
	}

	affected, err := s.reports.MarkVerified(ctx, reportID)
	if err != nil {
		log.WithError(err).Error("Failed to mark report verified")
		return e.Wrap("service: could not verify report", err)
	}
	if affected == 0 {
		// Another verifier won the race; the transition already happened.
		log.Info("Report was already verified")
		return e.ErrAlreadyVerified
	}

	s.creditNeighborhood(ctx, log, report.UserID)

	log.Info("Report verified successfully")
	return nil
}

// creditNeighborhood bumps the reporter's neighborhood verified counter and
// drops the cached leaderboard. Failures are logged only: the verification
// itself has already committed.
func (s *verificationService) creditNeighborhood(ctx context.Context, log *logrus.Entry, reporterID uuid.UUID) {
	reporter, err := s.directory.CurrentUser(ctx, reporterID)
	if err != nil {
		log.WithError(err).Warn("Failed to resolve reporter for leaderboard credit")
		return
	}
	if reporter.Neighborhood == "" {
		return
	}
	if err := s.neighborhoods.IncrementVerified(ctx, reporter.Neighborhood); err != nil {
		log.WithError(err).Warn("Failed to increment neighborhood verified counter")
		return
	}
	if err := s.neighborhoods.InvalidateLeaderboardCache(ctx); err != nil {
		log.WithError(err).Warn("Failed to invalidate leaderboard cache")
	}
}
