package e

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// Verification workflow errors, surfaced to the caller as distinct kinds.
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrReportNotFound      = errors.New("report not found")
	ErrSelfVerification    = errors.New("self verification forbidden")
	ErrAlreadyVerified     = errors.New("report already verified")

	// Generic store and input errors.
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrStore        = errors.New("store error")
)

// TooFarError is returned when a verifier is outside the proximity radius.
// It carries the measured distance so the caller can tell the user how far
// off they are.
type TooFarError struct {
	DistanceMeters float64
}

func (e *TooFarError) Error() string {
	return fmt.Sprintf("too far from incident: %.0f m", e.DistanceMeters)
}

// Wrap annotates err with a message, preserving the chain.
func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

// WrapStore maps low-level database failures onto the store error taxonomy
// so callers can match with errors.Is instead of inspecting pg codes.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503", "23514":
			return fmt.Errorf("%s: %w", op, ErrInvalidInput)
		default:
			return fmt.Errorf("%s: pg error %s: %w", op, pgErr.Code, ErrStore)
		}
	}
	return fmt.Errorf("%s: %w", op, ErrStore)
}
