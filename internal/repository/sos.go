package repository

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vigia-app/vigia-backend/internal/models"
	"github.com/vigia-app/vigia-backend/pkg/e"
)

// SOSRepository persists SOS events and their packaged audio objects. Audio
// lives in a bytea table and is served back through the API, standing in for
// an external storage bucket.
type SOSRepository struct {
	db *pgxpool.Pool
}

func NewSOSRepository(db *pgxpool.Pool) *SOSRepository {
	return &SOSRepository{db: db}
}

// InsertEvent appends one emission row. Events are never updated or deleted.
func (r *SOSRepository) InsertEvent(ctx context.Context, event *models.SOSEvent) error {
	query := `
		INSERT INTO sos_events (user_id, latitude, longitude, audio_url, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		event.UserID,
		event.Latitude,
		event.Longitude,
		event.AudioURL,
		event.CreatedAt,
	).Scan(&event.ID)
	if err != nil {
		return e.WrapStore("repository: insert sos event", err)
	}
	return nil
}

// UploadBlob stores packaged audio under the given key and returns the API
// path it can be fetched from. Re-uploading a key overwrites it.
func (r *SOSRepository) UploadBlob(ctx context.Context, key string, data []byte) (string, error) {
	query := `
		INSERT INTO sos_audio (key, data)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data;
	`
	if _, err := r.db.Exec(ctx, query, key, data); err != nil {
		return "", e.WrapStore("repository: upload sos audio", err)
	}
	return "/api/v1/sos/audio/" + url.PathEscape(key), nil
}

// GetBlob returns the stored audio object for a key.
func (r *SOSRepository) GetBlob(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	query := `SELECT data FROM sos_audio WHERE key = $1;`
	if err := r.db.QueryRow(ctx, query, key).Scan(&data); err != nil {
		return nil, e.WrapStore("repository: get sos audio", err)
	}
	return data, nil
}

// ListEventsByUser returns a user's emissions newest first.
func (r *SOSRepository) ListEventsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.SOSEvent, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	query := `
		SELECT id, user_id, latitude, longitude, COALESCE(audio_url, ''), created_at
		FROM sos_events
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, e.WrapStore("repository: list sos events", err)
	}
	defer rows.Close()

	events := make([]*models.SOSEvent, 0)
	for rows.Next() {
		event := &models.SOSEvent{}
		err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.Latitude,
			&event.Longitude,
			&event.AudioURL,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, e.WrapStore("repository: scan sos event row", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapStore("repository: sos event rows iteration", err)
	}
	return events, nil
}
