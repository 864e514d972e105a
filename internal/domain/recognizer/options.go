package recognizer

import (
	"time"

	"github.com/okian/gestura/internal/domain/history"
	"github.com/okian/gestura/pkg/logger"
)

// Option applies a configuration option to the Recognizer.
type Option func(r *Recognizer, tracker *[]history.Option)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Recognizer, _ *[]history.Option) {
		if l != nil {
			r.log = l
		}
	}
}

// WithEnabled sets whether frames are classified.
func WithEnabled(v bool) Option {
	return func(r *Recognizer, _ *[]history.Option) {
		r.enabled = v
	}
}

// WithHistoryCapacity sets the per-contact sample cap.
func WithHistoryCapacity(n int) Option {
	return func(_ *Recognizer, t *[]history.Option) {
		*t = append(*t, history.WithCapacity(n))
	}
}

// WithStaleTimeout sets the forced lift timeout.
func WithStaleTimeout(d time.Duration) Option {
	return func(_ *Recognizer, t *[]history.Option) {
		*t = append(*t, history.WithStaleTimeout(d))
	}
}

// WithImplicitLiftFrames sets after how many missing frames a contact lifts.
func WithImplicitLiftFrames(n int) Option {
	return func(_ *Recognizer, t *[]history.Option) {
		*t = append(*t, history.WithImplicitLiftFrames(n))
	}
}
