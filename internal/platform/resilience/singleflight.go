package resilience

import (
	"context"
	"fmt"
	"sync"
)

// Flight collapses concurrent calls for the same key into one execution.
// The zero value is ready to use.
type Flight[V any] struct {
	mu      sync.Mutex
	pending map[string]*landing[V]
}

type landing[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// Do runs fn for key, or waits for the run already in progress. shared is true when the
// result came from another caller's run. A waiter whose ctx ends returns ctx.Err() and leaves
// the run going for the others. A panic in fn reaches every caller as an error.
func (f *Flight[V]) Do(ctx context.Context, key string, fn func() (V, error)) (v V, shared bool, err error) {
	f.mu.Lock()
	if l, ok := f.pending[key]; ok {
		f.mu.Unlock()
		select {
		case <-l.done:
			return l.val, true, l.err
		case <-ctx.Done():
			var zero V
			return zero, true, ctx.Err()
		}
	}
	if f.pending == nil {
		f.pending = make(map[string]*landing[V])
	}
	l := &landing[V]{done: make(chan struct{})}
	f.pending[key] = l
	f.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			l.err = fmt.Errorf("flight %q panicked: %v", key, r)
		}
		f.mu.Lock()
		delete(f.pending, key)
		f.mu.Unlock()
		close(l.done)
		v, err = l.val, l.err
	}()

	l.val, l.err = fn()
	return l.val, false, l.err
}
