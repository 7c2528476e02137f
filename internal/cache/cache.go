// Package cache owns the durable on-device store: one SQLite database with
// a repository per entity type, migrated with goose on startup.
package cache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/fleetsync/internal/cache/drivers"
	"github.com/dmitrijs2005/fleetsync/internal/cache/entries"
	"github.com/dmitrijs2005/fleetsync/internal/cache/expenses"
	"github.com/dmitrijs2005/fleetsync/internal/cache/migrations"
	"github.com/dmitrijs2005/fleetsync/internal/cache/vehicles"
	"github.com/dmitrijs2005/fleetsync/internal/dbx"
)

// Stores bundles the per-entity repositories over one database handle.
type Stores struct {
	Entries  entries.Repository
	Expenses expenses.Repository
	Drivers  drivers.Repository
	Vehicles vehicles.Repository
}

// RunMigrations applies the embedded goose migrations. Unsynced rows survive
// every migration; losing them would lose user input.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Wipe deletes every cached row in one transaction. It runs when the
// signed-in identity changes: rows belonging to another user must never
// survive into the new session, and a half-wiped cache is worse than a
// full one.
func Wipe(ctx context.Context, db *sql.DB) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, table := range []string{"entries", "expenses", "drivers", "vehicles"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to wipe %s: %w", table, err)
			}
		}
		return nil
	})
}

// InitDatabase opens (or creates) the cache database at dsn, migrates it and
// returns the repositories.
func InitDatabase(ctx context.Context, dsn string) (*Stores, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	stores := &Stores{
		Entries:  entries.NewSQLiteRepository(db),
		Expenses: expenses.NewSQLiteRepository(db),
		Drivers:  drivers.NewSQLiteRepository(db),
		Vehicles: vehicles.NewSQLiteRepository(db),
	}
	return stores, db, nil
}
