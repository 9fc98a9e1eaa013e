package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vigia-app/vigia-backend/internal/models"
	"github.com/vigia-app/vigia-backend/pkg/e"
)

type reportService struct {
	repo          ReportRepository
	neighborhoods NeighborhoodRepository
	directory     AuthDirectory
	logger        *logrus.Logger
}

func NewReportService(
	repo ReportRepository,
	neighborhoods NeighborhoodRepository,
	directory AuthDirectory,
	logger *logrus.Logger,
) ReportService {
	return &reportService{
		repo:          repo,
		neighborhoods: neighborhoods,
		directory:     directory,
		logger:        logger,
	}
}

// CreateReport persists a new incident report. Reports always start
// unverified; the verified flag is owned by the verification workflow.
func (s *reportService) CreateReport(ctx context.Context, report *models.Report) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "report",
		"method":   "CreateReport",
		"user_id":  report.UserID,
		"category": report.Category,
	})
	log.Info("Attempting to create a new report")

	if !report.Category.Valid() {
		log.Warn("Unknown report category")
		return e.Wrap("service: unknown report category", e.ErrInvalidInput)
	}

	report.Verified = false
	if err := s.repo.Create(ctx, report); err != nil {
		log.WithError(err).Error("Failed to create report in repository")
		return e.Wrap("service: could not create report", err)
	}

	s.countTowardsNeighborhood(ctx, log, report.UserID)

	log.WithField("report_id", report.ID).Info("Report created successfully")
	return nil
}

// GetReport returns one report by id.
func (s *reportService) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "GetReport",
		"report_id": id,
	})

	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get report from repository")
		return nil, e.Wrap("service: could not get report", err)
	}
	return report, nil
}

// ListVerifiedReports returns verified reports newest first, optionally
// filtered to one category. An empty category means all categories.
func (s *reportService) ListVerifiedReports(ctx context.Context, category models.ReportCategory, page, pageSize int) ([]*models.Report, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":  "report",
		"method":   "ListVerifiedReports",
		"category": category,
		"page":     page,
	})

	if category != "" && !category.Valid() {
		log.Warn("Unknown report category filter")
		return nil, e.Wrap("service: unknown report category", e.ErrInvalidInput)
	}

	reports, err := s.repo.ListVerified(ctx, category, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list verified reports from repository")
		return nil, e.Wrap("service: could not list reports", err)
	}

	log.WithField("count", len(reports)).Info("Verified reports listed")
	return reports, nil
}

// ListUserReports returns every report submitted by one user, newest first.
func (s *reportService) ListUserReports(ctx context.Context, userID uuid.UUID) ([]*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "ListUserReports",
		"user_id": userID,
	})

	reports, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to list user reports from repository")
		return nil, e.Wrap("service: could not list user reports", err)
	}
	return reports, nil
}

// countTowardsNeighborhood bumps the reporter's neighborhood total counter.
// Best effort: the report itself has already been persisted.
func (s *reportService) countTowardsNeighborhood(ctx context.Context, log *logrus.Entry, reporterID uuid.UUID) {
	reporter, err := s.directory.CurrentUser(ctx, reporterID)
	if err != nil {
		log.WithError(err).Warn("Failed to resolve reporter for neighborhood count")
		return
	}
	if reporter.Neighborhood == "" {
		return
	}
	if err := s.neighborhoods.IncrementTotal(ctx, reporter.Neighborhood); err != nil {
		log.WithError(err).Warn("Failed to increment neighborhood total counter")
		return
	}
	if err := s.neighborhoods.InvalidateLeaderboardCache(ctx); err != nil {
		log.WithError(err).Warn("Failed to invalidate leaderboard cache")
	}
}
