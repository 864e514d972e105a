// Package service wires the recognizer, the profile store and the action
// workers into the daemon the HTTP API and the device backends talk to.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/gestura/internal/adapters/executor"
	"github.com/okian/gestura/internal/adapters/mq/queue"
	"github.com/okian/gestura/internal/adapters/mq/worker"
	"github.com/okian/gestura/internal/domain/classifier"
	"github.com/okian/gestura/internal/domain/dispatch"
	"github.com/okian/gestura/internal/domain/fanout"
	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/internal/domain/profile"
	"github.com/okian/gestura/internal/domain/recognizer"
	"github.com/okian/gestura/pkg/logger"
	"github.com/okian/gestura/pkg/metrics"
)

// Queue names, used as metrics labels.
const (
	FrameQueueName  = "frames"
	ActionQueueName = "actions"
)

const (
	controlRetryInterval = 5 * time.Millisecond
	stopTimeout          = 5 * time.Second
)

// Service owns one input stream: frames go through a single frame worker
// into the recognizer, recognized gestures are resolved against the active
// profile and executed by a pool of action workers.
type Service struct {
	mu sync.RWMutex

	// Core components
	rec        *recognizer.Recognizer
	store      *profile.Store
	dispatcher *dispatch.Dispatcher
	exec       dispatch.Executor

	// Per-run components, rebuilt by Start
	frames      *queue.InMemoryQueue[worker.Input]
	actions     *queue.InMemoryQueue[dispatch.Job]
	frameWorker *worker.FrameWorker
	pool        atomic.Pointer[worker.Pool]
	cancel      context.CancelFunc

	// Configuration
	frameQueueSize  int
	actionQueueSize int
	actionWorkers   int
	sweepInterval   time.Duration
	classifier      classifier.Config
	recognizerOpts  []recognizer.Option
	initial         *profile.Profile

	started bool
	logger  logger.Logger
}

// New constructs a Service. The recognizer and the profile store exist
// from here on, so observers can subscribe before Start.
func New(opts ...Option) *Service {
	s := &Service{
		frameQueueSize:  1024,
		actionQueueSize: 64,
		actionWorkers:   2,
		sweepInterval:   100 * time.Millisecond,
		classifier:      classifier.DefaultConfig(),
		initial:         profile.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.exec == nil {
		s.exec = executor.New(executor.WithLogger(s.logger.Named("executor")))
	}

	recOpts := append([]recognizer.Option{recognizer.WithLogger(s.logger.Named("recognizer"))}, s.recognizerOpts...)
	s.rec = recognizer.New(s.classifier, recOpts...)
	s.store = profile.NewStore(s.initial)
	s.dispatcher = dispatch.New(s.store, submitterFunc(s.submit), dispatch.WithLogger(s.logger.Named("dispatcher")))
	s.rec.Subscribe(s.dispatcher.OnGesture)
	metrics.RecordProfileLoad()
	return s
}

type submitterFunc func(dispatch.Job) bool

func (f submitterFunc) Submit(j dispatch.Job) bool { return f(j) }

// submit forwards to the running pool. It runs on the frame worker and must
// not take s.mu, which Stop holds while waiting for that worker.
func (s *Service) submit(job dispatch.Job) bool {
	p := s.pool.Load()
	if p == nil {
		return false
	}
	return p.Submit(job)
}

// Start initializes the queues and starts the workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting gesture service...")

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.frames = queue.NewInMemoryQueue[worker.Input](
		queue.WithName(FrameQueueName),
		queue.WithCapacity(s.frameQueueSize),
	)
	s.actions = queue.NewInMemoryQueue[dispatch.Job](
		queue.WithName(ActionQueueName),
		queue.WithCapacity(s.actionQueueSize),
	)

	pool := worker.NewPool(s.actionWorkers, s.actions, s.exec, worker.WithLogger(s.logger.Named("actions")))
	pool.Start(runCtx)
	s.pool.Store(pool)

	s.frameWorker = worker.NewFrameWorker(s.frames, s.rec,
		worker.WithLogger(s.logger.Named("frames")),
		worker.WithSweepInterval(s.sweepInterval),
	)
	go s.frameWorker.Run(runCtx)

	s.started = true
	s.logger.Info(ctx, "gesture service started",
		logger.Int("actionWorkers", pool.Size()),
		logger.Int("frameQueueSize", s.frameQueueSize),
		logger.Int("actionQueueSize", s.actionQueueSize),
		logger.String("profile", s.store.Active().Name()),
	)
	return nil
}

// Stop drains the frame queue, resets the recognizer and waits, bounded by
// ctx, for running actions. Queued actions that have not started are dropped.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	s.logger.Info(ctx, "stopping gesture service...")

	ctx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()

	var errs []error
	_ = s.frames.Close()
	select {
	case <-s.frameWorker.Done():
	case <-ctx.Done():
		errs = append(errs, s.frameWorker.Shutdown(ctx))
	}
	s.rec.Reset(ctx, "shutdown")

	if p := s.pool.Swap(nil); p != nil {
		errs = append(errs, p.Shutdown(ctx))
	}
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "gesture service stopped")
	return errors.Join(errs...)
}

// IngestFrame queues a frame for recognition without blocking. It returns
// ErrBackpressure when the frame queue is full.
func (s *Service) IngestFrame(ctx context.Context, frame model.TouchFrame) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return ErrNotStarted
	}
	if frame.Timestamp.IsZero() {
		frame.Timestamp = time.Now()
	}
	err := s.frames.TryEnqueue(ctx, worker.Input{Frame: frame.Stamp()})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, queue.ErrFull):
		metrics.RecordFrameDropped("queue_full")
		return fmt.Errorf("%w: %d frames pending", ErrBackpressure, s.frames.Len())
	case errors.Is(err, queue.ErrClosed):
		metrics.RecordFrameDropped("closed")
		return ErrNotStarted
	default:
		metrics.RecordFrameDropped("cancelled")
		return err
	}
}

// Disconnect resets recognition after the device went away.
func (s *Service) Disconnect(ctx context.Context) {
	s.Reset(ctx, "disconnect")
}

// Reset forgets every contact and returns the classifier to Idle without
// emitting. While running, the reset is ordered after frames already queued.
func (s *Service) Reset(ctx context.Context, cause string) {
	s.mu.RLock()
	started, frames := s.started, s.frames
	s.mu.RUnlock()

	if !started {
		s.rec.Reset(ctx, cause)
		return
	}

	item := worker.Input{Reset: true, Cause: cause}
	ticker := time.NewTicker(controlRetryInterval)
	defer ticker.Stop()
	for {
		err := frames.TryEnqueue(ctx, item)
		if err == nil {
			return
		}
		if !errors.Is(err, queue.ErrFull) {
			s.rec.Reset(ctx, cause)
			return
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			s.logger.Warn(ctx, "reset not queued, applying directly", logger.String("cause", cause))
			s.rec.Reset(context.WithoutCancel(ctx), cause)
			return
		}
	}
}

// LoadProfile swaps the active profile. Gestures already submitted keep
// the binding they were resolved with.
func (s *Service) LoadProfile(ctx context.Context, p *profile.Profile) error {
	if p == nil {
		return ErrNilProfile
	}
	old := s.store.Swap(p)
	metrics.RecordProfileLoad()
	s.logger.Info(ctx, "profile loaded",
		logger.String("profile", p.Name()),
		logger.String("previous", old.Name()),
		logger.Int("bindings", p.Len()))
	return nil
}

// ActiveProfile returns the profile gestures are currently resolved against.
func (s *Service) ActiveProfile() *profile.Profile {
	return s.store.Active()
}

// Subscribe registers an observer for every recognized gesture.
func (s *Service) Subscribe(o fanout.Observer) *recognizer.Subscription {
	return s.rec.Subscribe(o)
}

// SetEnabled toggles gesture classification.
func (s *Service) SetEnabled(ctx context.Context, v bool) {
	s.rec.SetEnabled(v)
	s.logger.Info(ctx, "gesture recognition toggled", logger.Bool("enabled", v))
}

// QueueStats describes one queue.
type QueueStats struct {
	Length   int `json:"length"`
	Capacity int `json:"capacity"`
}

// Stats is a point-in-time view of the service.
type Stats struct {
	Started       bool             `json:"started"`
	Profile       string           `json:"profile"`
	Bindings      int              `json:"bindings"`
	ActionWorkers int              `json:"action_workers"`
	FrameQueue    QueueStats       `json:"frame_queue"`
	ActionQueue   QueueStats       `json:"action_queue"`
	Recognizer    recognizer.Stats `json:"recognizer"`
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.store.Active()
	st := Stats{
		Started:    s.started,
		Profile:    p.Name(),
		Bindings:   p.Len(),
		Recognizer: s.rec.Stats(),
	}
	if s.started {
		st.FrameQueue = QueueStats{Length: s.frames.Len(), Capacity: s.frames.Cap()}
		st.ActionQueue = QueueStats{Length: s.actions.Len(), Capacity: s.actions.Cap()}
		if pool := s.pool.Load(); pool != nil {
			st.ActionWorkers = pool.Size()
		}
	}
	return st
}
