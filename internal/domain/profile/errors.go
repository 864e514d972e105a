package profile

import (
	"errors"
	"fmt"
)

// Binding validation errors.
var (
	ErrInvalidFingers = errors.New("finger count must be between 1 and 5")
	ErrUnknownAction  = errors.New("unknown action kind")
	ErrUnknownGesture = errors.New("unknown gesture kind")
	ErrEmptyCommand   = errors.New("empty action command")
	ErrEmptyName      = errors.New("profile name is empty")
)

// BindingError reports a binding skipped while building a profile.
type BindingError struct {
	Index int
	Err   error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("binding %d: %v", e.Index, e.Err)
}

func (e *BindingError) Unwrap() error { return e.Err }
