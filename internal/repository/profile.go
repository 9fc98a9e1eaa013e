package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vigia-app/vigia-backend/internal/models"
	"github.com/vigia-app/vigia-backend/internal/service"
	"github.com/vigia-app/vigia-backend/pkg/e"
)

// ProfileRepository reads user identities from the profiles table, which is
// owned by the out-of-scope auth collaborator.
type ProfileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) service.AuthDirectory {
	return &ProfileRepository{db: db}
}

// CurrentUser resolves the minimal identity view the workflows need.
func (r *ProfileRepository) CurrentUser(ctx context.Context, id uuid.UUID) (*models.UserIdentity, error) {
	identity := &models.UserIdentity{}
	query := `
		SELECT id, anon_handle, role, COALESCE(neighborhood, '')
		FROM profiles
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&identity.ID,
		&identity.AnonHandle,
		&identity.Role,
		&identity.Neighborhood,
	)
	if err != nil {
		return nil, e.WrapStore("repository: get profile", err)
	}
	return identity, nil
}
