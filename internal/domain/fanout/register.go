// Package fanout delivers gesture events to registered observers.
package fanout

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/okian/gestura/internal/domain/model"
)

// Observer receives gesture events.
type Observer func(model.GestureEvent)

// Register keeps observers in registration order. Emit calls them
// synchronously on the caller's goroutine.
type Register struct {
	mu sync.RWMutex
	l  *list.List

	// OnPanic, when set, is told about a recovered observer panic.
	OnPanic func(err error)
}

// NewRegister creates an empty register.
func NewRegister() *Register {
	return &Register{l: list.New()}
}

// Add appends an observer.
func (r *Register) Add(o Observer) *Regist {
	cb := &callback{f: o}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.l.PushBack(cb)
	return &Regist{reg: r, cb: cb}
}

func (r *Register) remove(cb *callback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for e := r.l.Front(); e != nil; e = e.Next() {
		if e.Value.(*callback) == cb {
			r.l.Remove(e)
			return
		}
	}
}

// Len returns the number of observers.
func (r *Register) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.l.Len()
}

// Emit runs every observer with ev and returns how many ran cleanly.
// A panicking observer does not stop the others.
func (r *Register) Emit(ev model.GestureEvent) int {
	r.mu.RLock()
	cbs := make([]*callback, 0, r.l.Len())
	for e := r.l.Front(); e != nil; e = e.Next() {
		cbs = append(cbs, e.Value.(*callback))
	}
	r.mu.RUnlock()

	n := 0
	for _, cb := range cbs {
		if err := cb.run(ev); err != nil {
			if r.OnPanic != nil {
				r.OnPanic(err)
			}
			continue
		}
		n++
	}
	return n
}

type callback struct {
	f Observer
}

func (cb *callback) run(ev model.GestureEvent) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("observer panic: %v", rec)
		}
	}()
	cb.f(ev)
	return nil
}

// Regist is the handle returned by Add.
type Regist struct {
	reg  *Register
	cb   *callback
	once sync.Once
}

// Unregister removes the observer. Safe to call more than once.
func (rg *Regist) Unregister() {
	rg.once.Do(func() { rg.reg.remove(rg.cb) })
}
