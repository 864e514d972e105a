// Package dispatch resolves gestures to actions and runs them off the input
// path.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/internal/domain/profile"
	"github.com/okian/gestura/pkg/logger"
	"github.com/okian/gestura/pkg/metrics"
)

// Executor performs an action. Implementations may block.
type Executor interface {
	Execute(ctx context.Context, action profile.Action, ev model.GestureEvent) error
}

// Job is one resolved gesture waiting for execution.
type Job struct {
	Event   model.GestureEvent
	Binding profile.Binding
}

// Submitter accepts jobs without blocking. It reports false when the job
// could not be queued.
type Submitter interface {
	Submit(job Job) bool
}

// Outcome of a dispatch attempt.
type Outcome string

// Dispatch outcomes.
const (
	OutcomeMiss      Outcome = "miss"
	OutcomeSubmitted Outcome = "submitted"
	OutcomeDropped   Outcome = "dropped"
)

// Dispatcher looks up bindings in the active profile and hands each match
// to the submitter exactly once.
type Dispatcher struct {
	store *profile.Store
	sub   Submitter
	log   logger.Logger
}

// Option applies a configuration option to the Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// New creates a dispatcher.
func New(store *profile.Store, sub Submitter, opts ...Option) *Dispatcher {
	d := &Dispatcher{store: store, sub: sub, log: logger.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// OnGesture is the observer entry point.
func (d *Dispatcher) OnGesture(ev model.GestureEvent) {
	d.Dispatch(context.Background(), ev)
}

// Dispatch resolves ev and submits it. It never blocks on the executor.
func (d *Dispatcher) Dispatch(ctx context.Context, ev model.GestureEvent) Outcome {
	sig := ev.Signature()
	p := d.store.Active()
	b, ok := p.Lookup(sig)
	if !ok {
		metrics.RecordProfileMiss()
		metrics.RecordGestureDispatched(string(OutcomeMiss))
		d.log.Debug(ctx, "no binding for gesture", logger.String("signature", sig.String()), logger.String("id", ev.ID))
		return OutcomeMiss
	}
	if !d.sub.Submit(Job{Event: ev, Binding: b}) {
		metrics.RecordGestureDispatched(string(OutcomeDropped))
		d.log.Warn(ctx, "action queue full, gesture dropped",
			logger.String("signature", sig.String()),
			logger.String("action", b.Action.String()))
		return OutcomeDropped
	}
	metrics.RecordGestureDispatched(string(OutcomeSubmitted))
	return OutcomeSubmitted
}

// Invoke runs job on exec, converting errors and panics into *ActionError.
// It is called once per job and never retries.
func Invoke(ctx context.Context, exec Executor, job Job) (err error) {
	start := time.Now()
	action := job.Binding.Action
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrActionPanic, rec)
		}
		metrics.RecordActionLatency(float64(time.Since(start).Microseconds()) / 1000)
		if err != nil {
			metrics.RecordActionError(action.Kind.String())
			err = &ActionError{Signature: job.Event.Signature(), Action: action, EventID: job.Event.ID, Err: err}
			return
		}
		metrics.RecordActionExecuted(action.Kind.String())
	}()
	return exec.Execute(ctx, action, job.Event)
}
