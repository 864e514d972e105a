package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/pkg/logger"
)

// Default worker configuration constants.
const (
	defaultSweepInterval  = 100 * time.Millisecond
	workerShutdownTimeout = 2 * time.Second
)

// Input is one item of the recognizer queue: a frame, or a reset request
// that must be ordered with the frames around it.
type Input struct {
	Frame model.TouchFrame
	Reset bool
	Cause string
}

// Recognizer is what the frame worker drives.
type Recognizer interface {
	IngestFrame(ctx context.Context, frame model.TouchFrame) []model.GestureEvent
	Sweep(ctx context.Context, now time.Time) []model.GestureEvent
	Reset(ctx context.Context, cause string)
}

// InputQueue is how the frame worker receives input.
type InputQueue interface {
	Dequeue(ctx context.Context) <-chan Input
}

// FrameWorker is the single consumer of the recognizer queue.
type FrameWorker struct {
	queue InputQueue
	rec   Recognizer
	settings

	// frame clock used by the sweep
	lastFrame time.Time
	lastRecv  time.Time

	shutdown chan struct{}
	done     chan struct{}
}

// NewFrameWorker creates the frame worker.
func NewFrameWorker(q InputQueue, rec Recognizer, opts ...Option) *FrameWorker {
	return &FrameWorker{
		queue:    q,
		rec:      rec,
		settings: apply("frame-worker", opts),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run consumes input until ctx is cancelled, Shutdown is called or the
// queue is closed.
func (w *FrameWorker) Run(ctx context.Context) {
	defer close(w.done)

	var tick <-chan time.Time
	if w.sweepInterval > 0 {
		ticker := time.NewTicker(w.sweepInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	in := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case item, ok := <-in:
			if !ok {
				return
			}
			w.process(ctx, item)
		case <-tick:
			if !w.lastFrame.IsZero() {
				w.rec.Sweep(ctx, w.lastFrame.Add(time.Since(w.lastRecv)))
			}
		}
	}
}

func (w *FrameWorker) process(ctx context.Context, item Input) {
	defer func() {
		if rec := recover(); rec != nil {
			w.logger.Error(ctx, "frame processing panicked", logger.Any("panic", rec))
		}
	}()
	if item.Reset {
		w.rec.Reset(ctx, item.Cause)
		w.lastFrame = time.Time{}
		return
	}
	if item.Frame.Timestamp.Before(w.lastFrame) {
		w.logger.Warn(ctx, "frame timestamp went backwards",
			logger.String("last", w.lastFrame.String()),
			logger.String("frame", item.Frame.Timestamp.String()))
	}
	w.rec.IngestFrame(ctx, item.Frame)
	w.lastFrame = item.Frame.Timestamp
	w.lastRecv = time.Now()
}

// Shutdown stops the worker and waits for the current item to finish.
func (w *FrameWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed when Run returns.
func (w *FrameWorker) Done() <-chan struct{} {
	return w.done
}
