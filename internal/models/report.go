package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vigia-app/vigia-backend/pkg/geo"
)

// ReportCategory is the fixed set of incident types a report can carry.
type ReportCategory string

const (
	CategoryTheft     ReportCategory = "theft"
	CategoryAssault   ReportCategory = "assault"
	CategoryHomicide  ReportCategory = "homicide"
	CategoryVandalism ReportCategory = "vandalism"
)

// Valid reports whether the category is one of the known incident types.
func (c ReportCategory) Valid() bool {
	switch c {
	case CategoryTheft, CategoryAssault, CategoryHomicide, CategoryVandalism:
		return true
	}
	return false
}

// Report is a single community-submitted incident. The Verified flag
// transitions false -> true exactly once, through the verification workflow
// or an administrative override; reports are never deleted.
type Report struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"user_id"`
	Category    ReportCategory `json:"category"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Description string         `json:"description"`
	PhotoURL    string         `json:"photo_url,omitempty"`
	PoliceFolio string         `json:"police_folio,omitempty"`
	Verified    bool           `json:"verified"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Coordinate returns the report location as a geo coordinate.
func (r *Report) Coordinate() geo.Coordinate {
	return geo.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude}
}
