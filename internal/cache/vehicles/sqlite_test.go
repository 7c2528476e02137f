package vehicles

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

func TestVehicleRoundTrip(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	v := models.Vehicle{
		ID:                 "v1",
		UserID:             "u1",
		Make:               "Toyota",
		Model:              "Camry",
		Plate:              "123ABC01",
		Year:               2021,
		Active:             true,
		Price:              15000,
		Deposit:            3000,
		MonthlyInstallment: 350,
		InsuranceCost:      420,
		FuelType:           "petrol",
		TankCapacity:       60,
		CreatedAt:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, r.Upsert(ctx, v))

	got, err := r.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, v, *got)

	v.Active = false
	v.Synced = true
	require.NoError(t, r.Upsert(ctx, v))

	synced, err := r.GetAllSynced(ctx)
	require.NoError(t, err)
	require.Len(t, synced, 1)
	assert.False(t, synced[0].Active)

	require.NoError(t, r.Delete(ctx, "v1"))
	_, err = r.GetByID(ctx, "v1")
	require.ErrorIs(t, err, common.ErrNotFound)
	require.ErrorIs(t, r.MarkSynced(ctx, "v1"), common.ErrNotFound)
}
