package service

import (
	"time"

	"github.com/okian/gestura/internal/domain/classifier"
	"github.com/okian/gestura/internal/domain/dispatch"
	"github.com/okian/gestura/internal/domain/profile"
	"github.com/okian/gestura/internal/domain/recognizer"
	"github.com/okian/gestura/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFrameQueueSize bounds the queue between device backends and the recognizer.
func WithFrameQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.frameQueueSize = size
		}
	}
}

// WithActionQueueSize bounds the queue of resolved actions.
func WithActionQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.actionQueueSize = size
		}
	}
}

// WithActionWorkers sets the number of action workers.
func WithActionWorkers(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.actionWorkers = count
		}
	}
}

// WithSweepInterval sets how often idle contacts are checked. Zero disables it.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.sweepInterval = d
		}
	}
}

// WithClassifier sets the recognition thresholds.
func WithClassifier(cfg classifier.Config) Option {
	return func(s *Service) {
		s.classifier = cfg
	}
}

// WithRecognizerOptions passes options through to the recognizer.
func WithRecognizerOptions(opts ...recognizer.Option) Option {
	return func(s *Service) {
		s.recognizerOpts = append(s.recognizerOpts, opts...)
	}
}

// WithProfile sets the initially active profile.
func WithProfile(p *profile.Profile) Option {
	return func(s *Service) {
		if p != nil {
			s.initial = p
		}
	}
}

// WithExecutor sets the action executor.
func WithExecutor(exec dispatch.Executor) Option {
	return func(s *Service) {
		if exec != nil {
			s.exec = exec
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
