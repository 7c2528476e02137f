package syncer

import (
	"context"
	"sync"
)

// View is a single-writer/multiple-reader observable snapshot. The
// reconciliation loop is the only writer; UI subscribers each get their own
// channel carrying the latest list.
type View[T any] struct {
	mu      sync.RWMutex
	current []T
	subs    map[chan []T]struct{}
}

func NewView[T any]() *View[T] {
	return &View[T]{subs: make(map[chan []T]struct{})}
}

// Current returns the latest published snapshot.
func (v *View[T]) Current() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]T(nil), v.current...)
}

// Publish replaces the snapshot and notifies subscribers. A slow subscriber
// only ever misses intermediate snapshots, never the latest one.
func (v *View[T]) Publish(items []T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = append([]T(nil), items...)
	for ch := range v.subs {
		select {
		case ch <- v.current:
		default:
			// drop the stale pending snapshot and queue the fresh one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v.current:
			default:
			}
		}
	}
}

// Subscribe returns a channel that receives the current snapshot and every
// subsequent publish until ctx is cancelled.
func (v *View[T]) Subscribe(ctx context.Context) <-chan []T {
	ch := make(chan []T, 1)

	v.mu.Lock()
	v.subs[ch] = struct{}{}
	if v.current != nil {
		ch <- append([]T(nil), v.current...)
	}
	v.mu.Unlock()

	go func() {
		<-ctx.Done()
		v.mu.Lock()
		delete(v.subs, ch)
		v.mu.Unlock()
	}()
	return ch
}
