package entries

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

func testEntry(id string) models.Entry {
	return models.Entry{
		ID:        id,
		UserID:    "u1",
		DriverID:  "d1",
		VehicleID: "v1",
		Date:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Earnings: []models.EarningBreakdown{
			{Provider: "Uber", CardEarnings: 100, Tips: 5, TripCount: 12, HoursOnline: 8},
		},
		Notes:     "long shift",
		Photos:    []string{"https://blobs/p1.jpg"},
		CreatedAt: time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC),
	}
}

func TestUpsert_InsertThenOverwrite(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	e := testEntry("e1")
	require.NoError(t, r.Upsert(ctx, e))

	got, err := r.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, e, *got)

	e.Notes = "edited"
	e.Synced = true
	odo := 123456.7
	e.Odometer = &odo
	require.NoError(t, r.Upsert(ctx, e))

	got, err = r.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Notes)
	assert.True(t, got.Synced)
	require.NotNil(t, got.Odometer)
	assert.InDelta(t, 123456.7, *got.Odometer, 1e-9)
}

func TestGetByID_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	_, err := r.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSyncedQueries(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	a := testEntry("a")
	b := testEntry("b")
	b.Synced = true
	require.NoError(t, r.Upsert(ctx, a))
	require.NoError(t, r.Upsert(ctx, b))

	unsynced, err := r.GetAllUnsynced(ctx)
	require.NoError(t, err)
	require.Len(t, unsynced, 1)
	assert.Equal(t, "a", unsynced[0].ID)

	synced, err := r.GetAllSynced(ctx)
	require.NoError(t, err)
	require.Len(t, synced, 1)
	assert.Equal(t, "b", synced[0].ID)

	require.NoError(t, r.MarkSynced(ctx, "a"))
	unsynced, err = r.GetAllUnsynced(ctx)
	require.NoError(t, err)
	assert.Empty(t, unsynced)
}

func TestMarkSynced_Missing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	require.ErrorIs(t, r.MarkSynced(context.Background(), "missing"), common.ErrNotFound)
}

func TestGetByDateRange(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	for i, day := range []int{1, 2, 3} {
		e := testEntry(string(rune('a' + i)))
		e.Date = time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
		require.NoError(t, r.Upsert(ctx, e))
	}

	got, err := r.GetByDateRange(ctx,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, testEntry("e1")))
	require.NoError(t, r.Delete(ctx, "e1"))
	require.NoError(t, r.Delete(ctx, "e1"))

	_, err := r.GetByID(ctx, "e1")
	require.ErrorIs(t, err, common.ErrNotFound)
}

// Legacy flat single-provider rows must come out of the schema migration as
// one-element breakdown lists, with unsynced rows preserved.
func TestMigration_LegacyFlatEarnings(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpTo(db, ".", 1))

	_, err = db.Exec(`INSERT INTO entries
		(id, user_id, driver_id, date, provider, card_earnings, cash_earnings, tips, synced)
		VALUES ('legacy1', 'u1', 'd1', 1767225600, 'Uber', 100, 0, 5, 0)`)
	require.NoError(t, err)

	require.NoError(t, goose.UpTo(db, ".", 2))

	r := NewSQLiteRepository(db)
	got, err := r.GetByID(context.Background(), "legacy1")
	require.NoError(t, err)
	require.Len(t, got.Earnings, 1)
	assert.Equal(t, "Uber", got.Earnings[0].Provider)
	assert.InDelta(t, 105, got.TotalEarnings(), 1e-9)
	assert.False(t, got.Synced)
}
