package dispatch

import (
	"errors"
	"fmt"

	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/internal/domain/profile"
)

// ErrActionPanic marks an executor that panicked.
var ErrActionPanic = errors.New("action executor panicked")

// ActionError is an executor failure for one gesture.
type ActionError struct {
	Signature model.Signature
	Action    profile.Action
	EventID   string
	Err       error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %s for %s: %v", e.Action, e.Signature, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }
