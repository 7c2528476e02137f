package drivers

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

func TestDriverRoundTrip(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	d := models.Driver{
		ID:            "d1",
		UserID:        "u1",
		Name:          "Aigerim",
		LicenseNumber: "KZ-123",
		Phone:         "+7700",
		Active:        true,
		CreatedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, r.Upsert(ctx, d))

	got, err := r.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, d, *got)

	q, err := r.GetAllUnsynced(ctx)
	require.NoError(t, err)
	require.Len(t, q, 1)

	require.NoError(t, r.MarkSynced(ctx, "d1"))
	q, err = r.GetAllUnsynced(ctx)
	require.NoError(t, err)
	assert.Empty(t, q)

	require.NoError(t, r.Delete(ctx, "d1"))
	_, err = r.GetByID(ctx, "d1")
	require.ErrorIs(t, err, common.ErrNotFound)
}
