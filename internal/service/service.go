package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vigia-app/vigia-backend/internal/models"
	"github.com/vigia-app/vigia-backend/pkg/geo"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=mocks

// ReportRepository is the persistence contract for incident reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ListVerified(ctx context.Context, category models.ReportCategory, page, pageSize int) ([]*models.Report, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Report, error)
	ListUnverified(ctx context.Context) ([]*models.Report, error)
	// MarkVerified performs the one-way verified transition as a single
	// conditional write and reports how many rows were affected: 0 means
	// another verifier already won the race.
	MarkVerified(ctx context.Context, id uuid.UUID) (int64, error)
}

// AuthDirectory resolves user identities from the out-of-scope auth collaborator.
type AuthDirectory interface {
	CurrentUser(ctx context.Context, id uuid.UUID) (*models.UserIdentity, error)
}

// NeighborhoodRepository serves the verification leaderboard and its counters.
type NeighborhoodRepository interface {
	Leaderboard(ctx context.Context) ([]*models.Neighborhood, error)
	IncrementTotal(ctx context.Context, name string) error
	IncrementVerified(ctx context.Context, name string) error
	GetLeaderboardFromCache(ctx context.Context) ([]*models.Neighborhood, error)
	SetLeaderboardCache(ctx context.Context, entries []*models.Neighborhood) error
	InvalidateLeaderboardCache(ctx context.Context) error
}

// VerificationService applies the proximity-gated verification workflow.
type VerificationService interface {
	ListVerifiableReports(ctx context.Context, requester *models.UserIdentity, loc *geo.Coordinate) ([]*models.Report, error)
	VerifyReport(ctx context.Context, requester *models.UserIdentity, reportID uuid.UUID, loc *geo.Coordinate) error
}

// ReportService covers report submission and browsing.
type ReportService interface {
	CreateReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ListVerifiedReports(ctx context.Context, category models.ReportCategory, page, pageSize int) ([]*models.Report, error)
	ListUserReports(ctx context.Context, userID uuid.UUID) ([]*models.Report, error)
}

// LeaderboardService serves the neighborhood verification leaderboard.
type LeaderboardService interface {
	Leaderboard(ctx context.Context) ([]*models.Neighborhood, error)
}

// Service bundles the business-logic services for wiring.
type Service struct {
	Reports      ReportService
	Verification VerificationService
	Leaderboard  LeaderboardService
}

func NewService(reports ReportService, verification VerificationService, leaderboard LeaderboardService) *Service {
	return &Service{
		Reports:      reports,
		Verification: verification,
		Leaderboard:  leaderboard,
	}
}
