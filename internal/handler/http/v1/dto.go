package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateReportRequest is the submission DTO for a new incident report.
// @Description Incident report submission
type CreateReportRequest struct {
	Category    string  `json:"category" validate:"required,oneof=theft assault homicide vandalism"`
	Latitude    float64 `json:"latitude" validate:"required,latitude"`
	Longitude   float64 `json:"longitude" validate:"required,longitude"`
	Description string  `json:"description" validate:"required,min=2,max=1000"`
	PhotoURL    string  `json:"photo_url,omitempty" validate:"omitempty,url"`
	PoliceFolio string  `json:"police_folio,omitempty" validate:"omitempty,max=64"`
}

// VerifyReportRequest carries the requester's fresh location for the
// proximity guard. Both fields absent means no location could be obtained.
// @Description Verification attempt with the requester's current location
type VerifyReportRequest struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// SOSStartRequest arms the SOS beacon with the device's initial fix.
// @Description SOS beacon arming request
type SOSStartRequest struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	Audio     bool     `json:"audio"`
}

// SOSLocationRequest pushes one location fix into the armed session.
// @Description SOS location fix
type SOSLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// SOSAudioRequest pushes one base64-encoded audio chunk into the session.
// @Description SOS audio chunk
type SOSAudioRequest struct {
	Chunk string `json:"chunk" validate:"required,base64"`
}

// ReportResponse is the outward view of a report.
// @Description Incident report
type ReportResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Category    string    `json:"category"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	PoliceFolio string    `json:"police_folio,omitempty"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
}

// NeighborhoodResponse is one leaderboard entry.
// @Description Neighborhood leaderboard entry
type NeighborhoodResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	TotalReports    int       `json:"total_reports"`
	VerifiedReports int       `json:"verified_reports"`
	VerifiedPercent int       `json:"verified_percent"`
	CurrentPrize    string    `json:"current_prize,omitempty"`
}

// SOSEventResponse is one persisted SOS emission.
// @Description SOS emission
type SOSEventResponse struct {
	ID        int64     `json:"id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	AudioURL  string    `json:"audio_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SOSStatusResponse reports the beacon state for the requester.
// @Description SOS beacon status
type SOSStatusResponse struct {
	Active    bool       `json:"active"`
	StartedAt *time.Time `json:"started_at,omitempty"`
}
