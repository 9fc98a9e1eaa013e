package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vigia-app/vigia-backend/internal/models"
	"github.com/vigia-app/vigia-backend/internal/service"
	"github.com/vigia-app/vigia-backend/pkg/e"
)

type ReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) service.ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `
	id,
	user_id,
	category,
	latitude,
	longitude,
	description,
	COALESCE(photo_url, ''),
	COALESCE(police_folio, ''),
	verified,
	created_at`

// Create inserts a new report row, filling in the generated id and timestamp.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (user_id, category, latitude, longitude, description, photo_url, police_folio, verified)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8)
		RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		report.UserID,
		report.Category,
		report.Latitude,
		report.Longitude,
		report.Description,
		report.PhotoURL,
		report.PoliceFolio,
		report.Verified,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return e.WrapStore("repository: create report", err)
	}
	return nil
}

// GetByID returns a report by its UUID.
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	report := &models.Report{}
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1;`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.UserID,
		&report.Category,
		&report.Latitude,
		&report.Longitude,
		&report.Description,
		&report.PhotoURL,
		&report.PoliceFolio,
		&report.Verified,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, e.WrapStore("repository: get report by id", err)
	}
	return report, nil
}

// ListVerified returns verified reports newest first, optionally filtered to
// one category, with pagination.
func (r *ReportRepository) ListVerified(ctx context.Context, category models.ReportCategory, page, pageSize int) ([]*models.Report, error) {
	offset := (page - 1) * pageSize

	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE verified = TRUE
		  AND ($1 = '' OR category = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, string(category), pageSize, offset)
	if err != nil {
		return nil, e.WrapStore("repository: list verified reports", err)
	}
	defer rows.Close()

	return scanReports(rows)
}

// ListByUser returns every report submitted by one user, newest first.
func (r *ReportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, e.WrapStore("repository: list user reports", err)
	}
	defer rows.Close()

	return scanReports(rows)
}

// ListUnverified returns the full unverified set newest first, for the
// verification workflow to filter in memory.
func (r *ReportRepository) ListUnverified(ctx context.Context) ([]*models.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE verified = FALSE
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, e.WrapStore("repository: list unverified reports", err)
	}
	defer rows.Close()

	return scanReports(rows)
}

// MarkVerified flips the verified flag as a single conditional write. The
// WHERE verified = FALSE guard makes concurrent verifications race safely:
// exactly one caller sees one affected row, everyone else sees zero.
func (r *ReportRepository) MarkVerified(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `UPDATE reports SET verified = TRUE WHERE id = $1 AND verified = FALSE;`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return 0, e.WrapStore("repository: mark report verified", err)
	}
	return cmdTag.RowsAffected(), nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanReports(rows rowScanner) ([]*models.Report, error) {
	reports := make([]*models.Report, 0)
	for rows.Next() {
		report := &models.Report{}
		err := rows.Scan(
			&report.ID,
			&report.UserID,
			&report.Category,
			&report.Latitude,
			&report.Longitude,
			&report.Description,
			&report.PhotoURL,
			&report.PoliceFolio,
			&report.Verified,
			&report.CreatedAt,
		)
		if err != nil {
			return nil, e.WrapStore("repository: scan report row", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapStore("repository: report rows iteration", err)
	}
	return reports, nil
}
