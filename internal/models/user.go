package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserIdentity is the minimal view of a user the core workflows need.
// It is owned by the auth/profile collaborator; this service only reads it.
type UserIdentity struct {
	ID           uuid.UUID `json:"id"`
	AnonHandle   string    `json:"anon_handle"`
	Role         Role      `json:"role"`
	Neighborhood string    `json:"neighborhood,omitempty"`
}

// IsAdmin reports whether the identity carries the admin role.
func (u *UserIdentity) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Neighborhood is one leaderboard entry: precomputed report counters for a
// neighborhood competing on verification rate.
type Neighborhood struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	TotalReports    int       `json:"total_reports"`
	VerifiedReports int       `json:"verified_reports"`
	CurrentPrize    string    `json:"current_prize,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// VerifiedPercent returns the share of this neighborhood's reports that have
// been verified, as a whole percentage.
func (n *Neighborhood) VerifiedPercent() int {
	if n.TotalReports == 0 {
		return 0
	}
	return int(float64(n.VerifiedReports) / float64(n.TotalReports) * 100)
}
