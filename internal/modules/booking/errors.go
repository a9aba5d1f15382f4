package booking

import (
	"errors"

	"agencydesk/internal/domain"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("booking conflict")
	ErrNotFound     = errors.New("not_found")
	ErrInvalidState = errors.New("invalid_state_transition")
)

// ConflictError carries the occupying bookings that blocked the interval so
// the caller can offer alternatives. errors.Is(err, ErrConflict) holds.
type ConflictError struct {
	Conflicts []domain.Booking
}

func (e *ConflictError) Error() string { return "booking conflict" }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
