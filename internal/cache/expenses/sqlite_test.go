package expenses

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fleetsync/internal/cache/migrations"
	"github.com/dmitrijs2005/fleetsync/internal/common"
	"github.com/dmitrijs2005/fleetsync/internal/models"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.Up(db, "."))
	return db
}

func testExpense(id string) models.Expense {
	return models.Expense{
		ID:        id,
		UserID:    "u1",
		DriverID:  "d1",
		VehicleID: "v1",
		Type:      models.ExpenseTypeFuel,
		Amount:    45.20,
		Date:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Photos:    []string{},
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestUpsert_RoundTrip(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	e := testExpense("x1")
	require.NoError(t, r.Upsert(ctx, e))

	got, err := r.GetByID(ctx, "x1")
	require.NoError(t, err)
	assert.Equal(t, e, *got)

	// overwrite keeps the same row
	e.Amount = 50
	e.Type = models.ExpenseTypeCarWash
	require.NoError(t, r.Upsert(ctx, e))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.ExpenseTypeCarWash, all[0].Type)
	assert.InDelta(t, 50, all[0].Amount, 1e-9)
}

func TestUnsyncedIsTheQueue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	pending := testExpense("p1")
	done := testExpense("s1")
	done.Synced = true
	require.NoError(t, r.Upsert(ctx, pending))
	require.NoError(t, r.Upsert(ctx, done))

	q, err := r.GetAllUnsynced(ctx)
	require.NoError(t, err)
	require.Len(t, q, 1)
	assert.Equal(t, "p1", q[0].ID)

	require.NoError(t, r.MarkSynced(ctx, "p1"))

	q, err = r.GetAllUnsynced(ctx)
	require.NoError(t, err)
	assert.Empty(t, q)

	s, err := r.GetAllSynced(ctx)
	require.NoError(t, err)
	assert.Len(t, s, 2)
}

func TestGetByDateRange_Bounds(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	in := testExpense("in")
	out := testExpense("out")
	out.Date = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.Upsert(ctx, in))
	require.NoError(t, r.Upsert(ctx, out))

	got, err := r.GetByDateRange(ctx,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "in", got[0].ID)
}

func TestDeleteAndNotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, testExpense("x1")))
	require.NoError(t, r.Delete(ctx, "x1"))
	require.NoError(t, r.Delete(ctx, "x1"))

	_, err := r.GetByID(ctx, "x1")
	require.ErrorIs(t, err, common.ErrNotFound)
	require.ErrorIs(t, r.MarkSynced(ctx, "x1"), common.ErrNotFound)
}
