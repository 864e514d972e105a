package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/gestura/internal/domain/model"
)

func frameAt(ms int) model.TouchFrame {
	return model.TouchFrame{Timestamp: time.Unix(0, int64(ms)*int64(time.Millisecond))}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue[model.TouchFrame](WithCapacity(2), WithName("frames"))
	ctx := context.Background()

	if l := q.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
	if q.Name() != "frames" || q.Cap() != 2 {
		t.Errorf("unexpected name/cap %s/%d", q.Name(), q.Cap())
	}

	if !q.Enqueue(ctx, frameAt(1)) {
		t.Error("expected enqueue to succeed")
	}
	if l := q.Len(); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue(ctx)
	if !got.Timestamp.Equal(frameAt(1).Timestamp) {
		t.Errorf("expected frame at 1ms, got %v", got.Timestamp)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue[int](WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, 1) || !q.Enqueue(ctx, 2) {
		t.Fatal("expected enqueue to succeed")
	}
	if q.Enqueue(ctx, 3) {
		t.Error("expected enqueue to fail when full")
	}
	if l := q.Len(); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_FIFO(t *testing.T) {
	q := NewInMemoryQueue[int](WithCapacity(100))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for i := 0; i < 100; i++ {
		if !q.Enqueue(ctx, i) {
			t.Fatalf("enqueue %d failed", i)
		}
	}
	_ = q.Close()

	want := 0
	for v := range q.Dequeue(ctx) {
		if v != want {
			t.Fatalf("expected %d, got %d", want, v)
		}
		want++
	}
	if want != 100 {
		t.Errorf("expected 100 items, got %d", want)
	}
}

func TestInMemoryQueue_ConcurrentProducers(t *testing.T) {
	q := NewInMemoryQueue[int](WithCapacity(16))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const producers, perProducer = 8, 50
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				for !q.Enqueue(ctx, p*perProducer+j) {
					time.Sleep(time.Millisecond)
				}
			}
		}(p)
	}

	seen := make(map[int]bool)
	ch := q.Dequeue(ctx)
	for len(seen) < producers*perProducer {
		select {
		case v := <-ch:
			seen[v] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out with %d items", len(seen))
		}
	}
	wg.Wait()
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue[int](WithCapacity(10))
	ctx := context.Background()

	_ = q.Enqueue(ctx, 1)
	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}
	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}
	if q.Enqueue(ctx, 2) {
		t.Error("expected enqueue to fail after closing")
	}

	ch := q.Dequeue(ctx)
	if v := <-ch; v != 1 {
		t.Errorf("expected backlog item 1, got %d", v)
	}
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel to be closed")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("expected dequeue channel to be closed within timeout")
	}

	if err := q.Close(); err != nil {
		t.Errorf("expected second close to succeed, got error: %v", err)
	}
}

func TestInMemoryQueue_CancelledContext(t *testing.T) {
	q := NewInMemoryQueue[int](WithCapacity(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if q.Enqueue(ctx, 1) {
		t.Error("expected enqueue to fail with cancelled context")
	}
}

func TestInMemoryQueue_TryEnqueue(t *testing.T) {
	q := NewInMemoryQueue[int](WithCapacity(1))
	ctx := context.Background()

	if err := q.TryEnqueue(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := q.TryEnqueue(ctx, 2); !errors.Is(err, ErrFull) {
		t.Errorf("expected ErrFull, got %v", err)
	}
	_ = q.Close()
	if err := q.TryEnqueue(ctx, 3); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
