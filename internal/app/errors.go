package service

import "errors"

// Sentinel errors returned by Service.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrBackpressure = errors.New("frame queue full")
	ErrNilProfile   = errors.New("nil profile")
)
