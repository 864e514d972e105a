// Package recognizer composes the contact tracker, the gesture classifier and
// the observer fan-out into the ingest path of one input stream.
package recognizer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gestura/internal/domain/classifier"
	"github.com/okian/gestura/internal/domain/fanout"
	"github.com/okian/gestura/internal/domain/history"
	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/pkg/logger"
	"github.com/okian/gestura/pkg/metrics"
)

// Recognizer turns frames into gesture events and fans them out.
//
// Frames must arrive from a single goroutine in timestamp order. The mutex
// only protects readers such as Stats from a concurrent ingest.
type Recognizer struct {
	mu        sync.Mutex
	tracker   *history.Tracker
	cls       *classifier.Classifier
	observers *fanout.Register

	enabled bool
	log     logger.Logger

	frames   uint64
	gestures uint64
	rejected uint64
}

// New creates a recognizer.
func New(cfg classifier.Config, opts ...Option) *Recognizer {
	r := &Recognizer{
		cls:       classifier.New(cfg),
		observers: fanout.NewRegister(),
		enabled:   true,
		log:       logger.Nop(),
	}
	var trackerOpts []history.Option
	for _, opt := range opts {
		opt(r, &trackerOpts)
	}
	r.tracker = history.New(trackerOpts...)
	r.observers.OnPanic = func(err error) {
		r.log.Error(context.Background(), "observer failed", logger.Error(err))
	}
	return r
}

// IngestFrame processes one frame and returns the events it produced, after
// delivering them to every observer.
func (r *Recognizer) IngestFrame(ctx context.Context, frame model.TouchFrame) []model.GestureEvent {
	start := time.Now()
	r.mu.Lock()
	u := r.tracker.Ingest(frame)
	r.frames++
	r.rejected += uint64(len(u.Rejected))
	var evs []model.GestureEvent
	if r.enabled {
		evs = r.cls.Process(u, r.tracker)
	}
	r.tracker.Purge()
	active := r.tracker.ActiveCount()
	evs = r.stamp(evs)
	r.mu.Unlock()

	metrics.RecordFrameIngested()
	metrics.UpdateActiveContacts(active)
	for _, ie := range u.Rejected {
		metrics.RecordInputRejected(ie.Reason())
		r.log.Warn(ctx, "sample rejected",
			logger.Int("contact_id", ie.ContactID),
			logger.String("reason", ie.Reason()),
			logger.Error(ie))
	}
	for _, l := range u.Lifted {
		if l.Cause != history.LiftExplicit {
			r.log.Debug(ctx, "contact lifted", logger.Int("contact_id", l.ContactID), logger.String("cause", l.Cause.String()))
		}
	}
	r.emit(ctx, evs)
	metrics.RecordFrameLatency(float64(time.Since(start).Microseconds()) / 1000)
	return evs
}

// Sweep force-lifts contacts that have not been seen within the stale
// timeout. It may close a sequence but never emits a tap for it.
func (r *Recognizer) Sweep(ctx context.Context, now time.Time) []model.GestureEvent {
	r.mu.Lock()
	lifts := r.tracker.Sweep(now)
	if len(lifts) == 0 {
		r.mu.Unlock()
		return nil
	}
	var evs []model.GestureEvent
	if r.enabled {
		evs = r.cls.Process(history.Update{Timestamp: now, Lifted: lifts}, r.tracker)
	}
	r.tracker.Purge()
	active := r.tracker.ActiveCount()
	evs = r.stamp(evs)
	r.mu.Unlock()

	metrics.UpdateActiveContacts(active)
	r.log.Debug(ctx, "stale contacts swept", logger.Int("count", len(lifts)))
	r.emit(ctx, evs)
	return evs
}

// Reset returns to Idle and forgets every contact without emitting.
func (r *Recognizer) Reset(ctx context.Context, cause string) {
	r.mu.Lock()
	r.tracker.Reset()
	r.cls.Reset()
	r.mu.Unlock()

	metrics.UpdateActiveContacts(0)
	metrics.RecordSequenceReset(cause)
	r.log.Info(ctx, "recognizer reset", logger.String("cause", cause))
}

// Subscribe registers an observer for every emitted event.
func (r *Recognizer) Subscribe(o fanout.Observer) *Subscription {
	reg := r.observers.Add(o)
	metrics.UpdateObserverCount(r.observers.Len())
	return &Subscription{r: r, reg: reg}
}

// SetEnabled toggles classification. Frames are still tracked while disabled.
func (r *Recognizer) SetEnabled(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = v
	if !v {
		r.cls.Reset()
	}
}

// Stats is a point-in-time view of the recognizer.
type Stats struct {
	State          string `json:"state"`
	ActiveContacts int    `json:"active_contacts"`
	Observers      int    `json:"observers"`
	Enabled        bool   `json:"enabled"`
	Frames         uint64 `json:"frames"`
	Gestures       uint64 `json:"gestures"`
	Rejected       uint64 `json:"rejected_samples"`
}

// Stats returns current counters.
func (r *Recognizer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		State:          r.cls.State().String(),
		ActiveContacts: r.tracker.ActiveCount(),
		Observers:      r.observers.Len(),
		Enabled:        r.enabled,
		Frames:         r.frames,
		Gestures:       r.gestures,
		Rejected:       r.rejected,
	}
}

// stamp assigns event ids. Caller holds mu.
func (r *Recognizer) stamp(evs []model.GestureEvent) []model.GestureEvent {
	for i := range evs {
		evs[i].ID = uuid.NewString()
	}
	r.gestures += uint64(len(evs))
	return evs
}

func (r *Recognizer) emit(ctx context.Context, evs []model.GestureEvent) {
	for _, ev := range evs {
		metrics.RecordGestureDetected(ev.Kind.String(), ev.Direction.String())
		r.log.Debug(ctx, "gesture detected",
			logger.String("id", ev.ID),
			logger.String("signature", ev.Signature().String()),
			logger.Float64("velocity", ev.Velocity))
		r.observers.Emit(ev)
	}
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	r   *Recognizer
	reg *fanout.Regist
}

// Unsubscribe removes the observer.
func (s *Subscription) Unsubscribe() {
	s.reg.Unregister()
	metrics.UpdateObserverCount(s.r.observers.Len())
}
