package device

import (
	"context"
	"time"

	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/pkg/logger"
)

const defaultInterval = 16 * time.Millisecond

// Sink receives frames from a device backend.
type Sink interface {
	IngestFrame(ctx context.Context, frame model.TouchFrame) error
	Disconnect(ctx context.Context)
}

// Simulator plays a script into a sink in real time.
type Simulator struct {
	script   Script
	interval time.Duration
	loop     bool
	pause    time.Duration
	log      logger.Logger
}

// Option applies a configuration option to the Simulator.
type Option func(*Simulator)

// WithInterval sets the spacing of frames that carry no explicit offset.
func WithInterval(d time.Duration) Option {
	return func(s *Simulator) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLoop replays the script until stopped, pausing between runs.
func WithLoop(pause time.Duration) Option {
	return func(s *Simulator) {
		s.loop = true
		if pause > 0 {
			s.pause = pause
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSimulator creates a simulator for script.
func NewSimulator(script Script, opts ...Option) *Simulator {
	s := &Simulator{script: script, interval: defaultInterval, pause: time.Second, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run plays the script into sink until it ends or ctx is cancelled. The
// sink is disconnected on return so no half-built gesture survives.
func (s *Simulator) Run(ctx context.Context, sink Sink) error {
	defer sink.Disconnect(context.WithoutCancel(ctx))

	s.log.Info(ctx, "simulator started", logger.String("script", s.script.Name), logger.Int("frames", len(s.script.Frames)))
	for {
		if err := s.play(ctx, sink); err != nil {
			return err
		}
		if !s.loop {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.pause):
		}
	}
}

func (s *Simulator) play(ctx context.Context, sink Sink) error {
	base := time.Now()
	frames := s.script.Resolve(base, s.interval)
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for _, f := range frames {
		if wait := time.Until(f.Timestamp); wait > 0 {
			timer.Reset(wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if err := sink.IngestFrame(ctx, f); err != nil {
			s.log.Warn(ctx, "frame refused", logger.Error(err))
		}
	}
	return nil
}
