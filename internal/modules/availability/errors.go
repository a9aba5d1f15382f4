package availability

import "errors"

var ErrValidation = errors.New("validation error")

// ValidationError pinpoints the offending field so the settings form can
// highlight it. errors.Is(err, ErrValidation) holds.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
