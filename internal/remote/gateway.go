// Package remote is the gateway to the authoritative cloud document store.
// Each entity type maps to one collection; the wire schema is isolated to
// this package so the rest of the code only sees the plain models.
package remote

import "context"

// Filter narrows reads to a single owner. The zero value means unfiltered;
// whether a caller may use an unfiltered read is the visibility policy's
// decision, not this package's.
type Filter struct {
	OwnerID string
}

// Collection is the per-collection contract of the remote store.
type Collection[T any] interface {
	// Get returns a single document by id, or common.ErrNotFound.
	Get(ctx context.Context, id string) (*T, error)

	// Query returns the documents visible under f.
	Query(ctx context.Context, f Filter) ([]T, error)

	// Subscribe emits the full filtered snapshot on every remote change,
	// starting with the current state. The channel closes when the stream
	// dies or ctx is cancelled; callers decide whether to resubscribe.
	Subscribe(ctx context.Context, f Filter) (<-chan []T, error)

	// Set writes a document by id, overwriting any previous version.
	Set(ctx context.Context, id string, v T) error

	// Delete removes a document. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
