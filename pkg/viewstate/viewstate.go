// Package viewstate implements the view-state contract consumed by the
// presentation layer: a guarded {IsLoading, Error, Data} cell per view with
// fire-and-forget trigger functions. Triggers return nothing; completion
// updates the cell and fires an optional notification callback.
//
// Each trigger invocation is tagged with a monotonic sequence number and a
// completion belonging to a superseded invocation is discarded, so a slow
// earlier request can never overwrite the result of a later one. In-flight
// work is not cancelled when superseded; stale requests simply finish into
// the void.
package viewstate

import (
	"context"
	"sync"
)

// State is a point-in-time snapshot of a view cell. Data is nil until the
// first successful load completes.
type State[T any] struct {
	IsLoading bool
	Error     string
	Data      *T
}

// View is a single view cell. The zero value is ready to use.
type View[T any] struct {
	mu    sync.Mutex
	seq   uint64
	state State[T]

	// Notify, when set, is called after every state change so a consumer
	// can re-render. It runs outside the lock.
	Notify func()
}

// Snapshot returns the current state.
func (v *View[T]) Snapshot() State[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Trigger starts a new loading cycle and returns immediately. load runs in
// its own goroutine; when it completes the cell is updated unless a newer
// Trigger superseded this invocation in the meantime. Re-entrancy is allowed:
// triggering while a load is in flight simply starts another cycle.
func (v *View[T]) Trigger(ctx context.Context, load func(context.Context) (T, error)) {
	v.mu.Lock()
	v.seq++
	mine := v.seq
	v.state.IsLoading = true
	v.state.Error = ""
	notify := v.Notify
	v.mu.Unlock()
	if notify != nil {
		notify()
	}

	go func() {
		data, err := load(ctx)
		v.mu.Lock()
		if mine != v.seq {
			// A newer invocation owns the cell now.
			v.mu.Unlock()
			return
		}
		v.state.IsLoading = false
		if err != nil {
			v.state.Error = err.Error()
		} else {
			v.state.Data = &data
		}
		notify := v.Notify
		v.mu.Unlock()
		if notify != nil {
			notify()
		}
	}()
}
