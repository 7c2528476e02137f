package entries

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fleetsync/internal/models"
)

// Repository describes the local cache operations for daily entries.
// Implementations are backed by the on-device SQLite database.
type Repository interface {
	// GetByID returns an entry by id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Entry, error)

	// GetAll returns every cached entry.
	GetAll(ctx context.Context) ([]models.Entry, error)

	// GetAllUnsynced returns entries whose local mutations have not been
	// confirmed written remotely. This is the sole sync queue.
	GetAllUnsynced(ctx context.Context) ([]models.Entry, error)

	// GetAllSynced returns entries confirmed equal to the last remote write.
	GetAllSynced(ctx context.Context) ([]models.Entry, error)

	// GetByDateRange returns entries with start <= date < end, ordered by date.
	GetByDateRange(ctx context.Context, start, end time.Time) ([]models.Entry, error)

	// Upsert inserts or overwrites an entry by id.
	Upsert(ctx context.Context, e models.Entry) error

	// Delete removes an entry. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// MarkSynced flips the synced flag after a confirmed remote write.
	MarkSynced(ctx context.Context, id string) error
}
