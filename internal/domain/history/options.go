package history

import "time"

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithCapacity sets the number of samples retained per contact.
func WithCapacity(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.capacity = n
		}
	}
}

// WithStaleTimeout sets how long a contact may go unseen before it is
// force-lifted. Zero disables staleness.
func WithStaleTimeout(d time.Duration) Option {
	return func(t *Tracker) {
		if d >= 0 {
			t.staleAfter = d
		}
	}
}

// WithImplicitLiftFrames sets after how many consecutive frames without a
// sample a contact is treated as lifted. Zero disables implicit lifts.
func WithImplicitLiftFrames(n int) Option {
	return func(t *Tracker) {
		if n >= 0 {
			t.liftFrames = n
		}
	}
}
