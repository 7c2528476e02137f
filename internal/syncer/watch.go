package syncer

import (
	"context"
	"errors"
	"reflect"
	"time"
)

// ErrWatchUnsupported is returned for entity types without a date dimension.
var ErrWatchUnsupported = errors.New("date-range watch not supported for this entity")

// dateRangeStore is satisfied by the entries and expenses repositories.
type dateRangeStore[T any] interface {
	GetByDateRange(ctx context.Context, start, end time.Time) ([]T, error)
}

// WatchByDateRange polls the local cache and emits the slice whenever it
// changes, starting immediately. This is the cold observable the UI layer
// builds its period views from; it never touches the network.
func (c *Coordinator[T]) WatchByDateRange(ctx context.Context, start, end time.Time, every time.Duration) (<-chan []T, error) {
	store, ok := c.local.(dateRangeStore[T])
	if !ok {
		return nil, ErrWatchUnsupported
	}

	out := make(chan []T, 1)
	go func() {
		defer close(out)

		ticker := time.NewTicker(every)
		defer ticker.Stop()

		var last []T
		emit := func() {
			items, err := store.GetByDateRange(ctx, start, end)
			if err != nil {
				c.deps.Reporter.Suppressed(ctx, c.scope("watch.local"), err)
				return
			}
			if last != nil && reflect.DeepEqual(last, items) {
				return
			}
			last = items
			if items == nil {
				items = []T{}
			}
			select {
			case out <- items:
			case <-ctx.Done():
			}
		}

		emit()
		for {
			select {
			case <-ticker.C:
				emit()
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
