package worker

import (
	"context"
	"errors"
	"runtime"
	"strconv"

	"github.com/okian/gestura/internal/domain/dispatch"
	"github.com/okian/gestura/pkg/logger"
)

const defaultActionWorkers = 2

// JobQueue is the action job queue.
type JobQueue interface {
	Enqueue(ctx context.Context, job dispatch.Job) bool
	Dequeue(ctx context.Context) <-chan dispatch.Job
	Close() error
}

// ActionWorker executes jobs one at a time.
type ActionWorker struct {
	jobs <-chan dispatch.Job
	exec dispatch.Executor
	settings

	shutdown <-chan struct{}
	done     chan struct{}
}

// Run executes jobs until the channel closes or the pool shuts down.
func (w *ActionWorker) Run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-w.jobs:
			if !ok {
				return
			}
			w.execute(ctx, job)
		}
	}
}

func (w *ActionWorker) execute(ctx context.Context, job dispatch.Job) {
	err := dispatch.Invoke(ctx, w.exec, job)
	if err == nil {
		return
	}
	var ae *dispatch.ActionError
	if errors.As(err, &ae) {
		w.logger.Error(ctx, "action failed",
			logger.String("id", ae.EventID),
			logger.String("signature", ae.Signature.String()),
			logger.String("action", ae.Action.String()),
			logger.Error(ae.Err))
		return
	}
	w.logger.Error(ctx, "action failed", logger.Error(err))
}

// Pool runs action workers over a shared job queue. It implements
// dispatch.Submitter.
type Pool struct {
	workers []*ActionWorker
	queue   JobQueue
	exec    dispatch.Executor

	started  bool
	shutdown chan struct{}
	logger   logger.Logger
}

// NewPool creates a pool of workerCount action workers.
func NewPool(workerCount int, q JobQueue, exec dispatch.Executor, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = min(runtime.NumCPU(), defaultActionWorkers)
	}
	s := apply("action-pool", opts)
	p := &Pool{
		workers:  make([]*ActionWorker, workerCount),
		queue:    q,
		exec:     exec,
		shutdown: make(chan struct{}),
		logger:   s.logger,
	}
	for i := range p.workers {
		ws := s
		ws.logger = s.logger.Named("worker-" + strconv.Itoa(i))
		p.workers[i] = &ActionWorker{exec: exec, settings: ws, shutdown: p.shutdown, done: make(chan struct{})}
	}
	return p
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	p.started = true
	jobs := p.queue.Dequeue(ctx)
	for _, w := range p.workers {
		w.jobs = jobs
		go w.Run(ctx)
	}
	p.logger.Info(ctx, "action pool started", logger.Int("workers", len(p.workers)))
}

// Submit queues a job without blocking.
func (p *Pool) Submit(job dispatch.Job) bool {
	return p.queue.Enqueue(context.Background(), job)
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Shutdown closes the queue and waits, bounded by ctx and a per-worker
// timeout, for running actions. Queued jobs that were not started are
// dropped.
func (p *Pool) Shutdown(ctx context.Context) error {
	if err := p.queue.Close(); err != nil {
		p.logger.Error(ctx, "error closing queue", logger.Error(err))
	}
	select {
	case <-p.shutdown:
		return nil
	default:
		close(p.shutdown)
	}
	if !p.started {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, workerShutdownTimeout)
	defer cancel()
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return nil
		}
	}
	return nil
}
