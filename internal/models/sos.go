package models

import (
	"time"

	"github.com/google/uuid"
)

// SOSEvent is one emergency telemetry snapshot emitted by an active SOS
// beacon. Events are append-only: one row per emission, never mutated.
type SOSEvent struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	AudioURL  string    `json:"audio_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
