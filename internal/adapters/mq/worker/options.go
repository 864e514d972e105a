// Package worker runs the recognizer and action execution loops.
package worker

import (
	"time"

	"github.com/okian/gestura/pkg/logger"
)

// Option applies a configuration option to a worker.
type Option func(*settings)

type settings struct {
	name          string
	logger        logger.Logger
	sweepInterval time.Duration
}

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSweepInterval sets how often the frame worker looks for stale
// contacts. Zero disables the sweep.
func WithSweepInterval(d time.Duration) Option {
	return func(s *settings) {
		if d >= 0 {
			s.sweepInterval = d
		}
	}
}

func apply(name string, opts []Option) settings {
	s := settings{name: name, logger: logger.Nop(), sweepInterval: defaultSweepInterval}
	for _, opt := range opts {
		opt(&s)
	}
	s.logger = s.logger.Named(s.name)
	return s
}
