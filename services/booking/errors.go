package booking

import (
	"errors"
	"fmt"
)

// ValidationError reports a local precondition failure. No network or database
// write has happened when one of these is returned; callers surface it inline
// next to the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidationError reports whether err is a local validation failure rather
// than a server-side rejection.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrSlotTaken is returned when the requested instant is already booked with
// the doctor. This is a server-side rejection, not a local validation failure.
var ErrSlotTaken = errors.New("the selected time has just been booked, please pick another slot")
