package vehicles

import (
	"context"

	"github.com/dmitrijs2005/fleetsync/internal/models"
)

// Repository describes the local cache operations for vehicles.
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	GetAll(ctx context.Context) ([]models.Vehicle, error)
	GetAllUnsynced(ctx context.Context) ([]models.Vehicle, error)
	GetAllSynced(ctx context.Context) ([]models.Vehicle, error)
	Upsert(ctx context.Context, v models.Vehicle) error
	Delete(ctx context.Context, id string) error
	MarkSynced(ctx context.Context, id string) error
}
