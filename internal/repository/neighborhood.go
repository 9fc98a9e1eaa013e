package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/vigia-app/vigia-backend/internal/models"
	"github.com/vigia-app/vigia-backend/internal/service"
	"github.com/vigia-app/vigia-backend/pkg/e"
)

const leaderboardCacheKey = "neighborhoods:leaderboard"

// NeighborhoodRepository serves leaderboard rows from Postgres with a short
// Redis cache in front, mirroring how the leaderboard is read far more often
// than it changes.
type NeighborhoodRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewNeighborhoodRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.NeighborhoodRepository {
	return &NeighborhoodRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Leaderboard returns neighborhoods ordered by verification rate, best first.
func (r *NeighborhoodRepository) Leaderboard(ctx context.Context) ([]*models.Neighborhood, error) {
	query := `
		SELECT id, name, total_reports, verified_reports, COALESCE(current_prize, ''), created_at
		FROM neighborhoods
		ORDER BY verified_reports::float / NULLIF(total_reports, 0) DESC NULLS LAST, name;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, e.WrapStore("repository: leaderboard", err)
	}
	defer rows.Close()

	entries := make([]*models.Neighborhood, 0)
	for rows.Next() {
		entry := &models.Neighborhood{}
		err := rows.Scan(
			&entry.ID,
			&entry.Name,
			&entry.TotalReports,
			&entry.VerifiedReports,
			&entry.CurrentPrize,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, e.WrapStore("repository: scan neighborhood row", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapStore("repository: neighborhood rows iteration", err)
	}
	return entries, nil
}

// IncrementTotal bumps a neighborhood's total report counter.
func (r *NeighborhoodRepository) IncrementTotal(ctx context.Context, name string) error {
	query := `UPDATE neighborhoods SET total_reports = total_reports + 1 WHERE name = $1;`
	cmdTag, err := r.db.Exec(ctx, query, name)
	if err != nil {
		return e.WrapStore("repository: increment neighborhood total", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return e.Wrap("repository: unknown neighborhood "+name, e.ErrNotFound)
	}
	return nil
}

// IncrementVerified bumps a neighborhood's verified report counter.
func (r *NeighborhoodRepository) IncrementVerified(ctx context.Context, name string) error {
	query := `UPDATE neighborhoods SET verified_reports = verified_reports + 1 WHERE name = $1;`
	cmdTag, err := r.db.Exec(ctx, query, name)
	if err != nil {
		return e.WrapStore("repository: increment neighborhood verified", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return e.Wrap("repository: unknown neighborhood "+name, e.ErrNotFound)
	}
	return nil
}

// GetLeaderboardFromCache returns the cached leaderboard, or nil on a miss.
func (r *NeighborhoodRepository) GetLeaderboardFromCache(ctx context.Context) ([]*models.Neighborhood, error) {
	val, err := r.redisClient.Get(ctx, leaderboardCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, e.Wrap("repository: get leaderboard from cache", err)
	}

	entries := make([]*models.Neighborhood, 0)
	if err := json.Unmarshal(val, &entries); err != nil {
		return nil, e.Wrap("repository: unmarshal cached leaderboard", err)
	}
	return entries, nil
}

// SetLeaderboardCache stores the leaderboard with the configured TTL.
func (r *NeighborhoodRepository) SetLeaderboardCache(ctx context.Context, entries []*models.Neighborhood) error {
	val, err := json.Marshal(entries)
	if err != nil {
		return e.Wrap("repository: marshal leaderboard for cache", err)
	}
	if err := r.redisClient.Set(ctx, leaderboardCacheKey, val, r.cacheTTL).Err(); err != nil {
		return e.Wrap("repository: set leaderboard cache", err)
	}
	return nil
}

// InvalidateLeaderboardCache drops the cached leaderboard.
func (r *NeighborhoodRepository) InvalidateLeaderboardCache(ctx context.Context) error {
	if err := r.redisClient.Del(ctx, leaderboardCacheKey).Err(); err != nil {
		return e.Wrap("repository: invalidate leaderboard cache", err)
	}
	return nil
}
