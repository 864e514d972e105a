package history

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for rejected samples.
var (
	ErrNonFinite        = errors.New("non-finite coordinates")
	ErrDuplicateContact = errors.New("duplicate contact id in frame")
	ErrBadLifecycle     = errors.New("unknown lifecycle")
)

// InputError describes a sample skipped for one frame.
type InputError struct {
	ContactID int
	Err       error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("contact %d: %v", e.ContactID, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Reason returns a short metric label for the rejection.
func (e *InputError) Reason() string {
	switch {
	case errors.Is(e.Err, ErrNonFinite):
		return "non_finite"
	case errors.Is(e.Err, ErrDuplicateContact):
		return "duplicate_contact"
	case errors.Is(e.Err, ErrBadLifecycle):
		return "bad_lifecycle"
	default:
		return "other"
	}
}
