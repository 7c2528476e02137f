package drivers

import (
	"context"

	"github.com/dmitrijs2005/fleetsync/internal/models"
)

// Repository describes the local cache operations for drivers.
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Driver, error)
	GetAll(ctx context.Context) ([]models.Driver, error)
	GetAllUnsynced(ctx context.Context) ([]models.Driver, error)
	GetAllSynced(ctx context.Context) ([]models.Driver, error)
	Upsert(ctx context.Context, d models.Driver) error
	Delete(ctx context.Context, id string) error
	MarkSynced(ctx context.Context, id string) error
}
