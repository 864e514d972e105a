package executor

import "errors"

// Sentinel errors.
var (
	ErrUnsupported  = errors.New("unsupported action kind")
	ErrBadChord     = errors.New("malformed key chord")
	ErrUnknownInput = errors.New("unknown command")
	ErrLaunchFailed = errors.New("launch failed")
)
