// Package replay feeds recorded frame scripts either through an in-process
// recognizer or to a running daemon over HTTP.
package replay

import (
	"errors"
	"time"

	"github.com/okian/gestura/pkg/logger"
)

// Default configuration constants.
const (
	DefaultInterval = 16 * time.Millisecond
	DefaultTimeout  = 10 * time.Second
	defaultRetries  = 5
	retryDelay      = 20 * time.Millisecond
)

// Errors returned by replays.
var (
	ErrUnhealthy = errors.New("service health check failed")
	ErrRejected  = errors.New("frames rejected")
)

// RemoteConfig holds configuration for a remote replay.
type RemoteConfig struct {
	BaseURL  string        // Base URL of the daemon
	Timeout  time.Duration // HTTP request timeout
	Interval time.Duration // Spacing for frames without an explicit offset
	Realtime bool          // Post frames one by one at their scripted offsets
	Retries  int           // Attempts per request on backpressure
	Logger   logger.Logger
}

// Stats holds replay statistics.
type Stats struct {
	Frames      int           `json:"frames"`
	Gestures    int           `json:"gestures"`
	Requests    int           `json:"requests"`
	Retries     int           `json:"retries"`
	Duration    time.Duration `json:"duration"`
	RemoteStats any           `json:"remote_stats,omitempty"`
}
