package expenses

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fleetsync/internal/models"
)

// Repository describes the local cache operations for expenses.
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Expense, error)
	GetAll(ctx context.Context) ([]models.Expense, error)
	GetAllUnsynced(ctx context.Context) ([]models.Expense, error)
	GetAllSynced(ctx context.Context) ([]models.Expense, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]models.Expense, error)
	Upsert(ctx context.Context, e models.Expense) error
	Delete(ctx context.Context, id string) error
	MarkSynced(ctx context.Context, id string) error
}
