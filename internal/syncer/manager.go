package syncer

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/fleetsync/internal/cache"
	"github.com/dmitrijs2005/fleetsync/internal/models"
	"github.com/dmitrijs2005/fleetsync/internal/remote"
)

// Remotes bundles one remote collection per entity type.
type Remotes struct {
	Entries  remote.Collection[models.Entry]
	Expenses remote.Collection[models.Expense]
	Drivers  remote.Collection[models.Driver]
	Vehicles remote.Collection[models.Vehicle]
}

// Manager holds the four coordinators and runs full sync passes over them.
type Manager struct {
	Entries  *Coordinator[models.Entry]
	Expenses *Coordinator[models.Expense]
	Drivers  *Coordinator[models.Driver]
	Vehicles *Coordinator[models.Vehicle]
}

func NewManager(stores *cache.Stores, remotes Remotes, deps Deps) *Manager {
	return &Manager{
		Entries:  New[models.Entry]("entries", stores.Entries, remotes.Entries, deps),
		Expenses: New[models.Expense]("expenses", stores.Expenses, remotes.Expenses, deps),
		Drivers:  New[models.Driver]("drivers", stores.Drivers, remotes.Drivers, deps),
		Vehicles: New[models.Vehicle]("vehicles", stores.Vehicles, remotes.Vehicles, deps),
	}
}

// SyncAll pushes every pending record and then refreshes the cache from the
// remote, entity by entity. It returns the total pushed count and the joined
// errors; a non-nil error means the scheduler should try again later.
func (m *Manager) SyncAll(ctx context.Context) (int, error) {
	var total int
	var errs []error

	push := func(n int, err error) {
		total += n
		if err != nil {
			errs = append(errs, err)
		}
	}
	push(m.Entries.SyncUnsynced(ctx))
	push(m.Expenses.SyncUnsynced(ctx))
	push(m.Drivers.SyncUnsynced(ctx))
	push(m.Vehicles.SyncUnsynced(ctx))

	pull := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	pull(m.Entries.FetchAndCacheRemote(ctx))
	pull(m.Expenses.FetchAndCacheRemote(ctx))
	pull(m.Drivers.FetchAndCacheRemote(ctx))
	pull(m.Vehicles.FetchAndCacheRemote(ctx))

	return total, errors.Join(errs...)
}
