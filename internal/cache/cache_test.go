package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fleetsync/internal/models"

	_ "modernc.org/sqlite"
)

func TestInitDatabaseAndWipe(t *testing.T) {
	ctx := context.Background()

	stores, db, err := InitDatabase(ctx, "file:cachetest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	entry := models.Entry{
		ID:     "e1",
		UserID: "u1",
		Date:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, stores.Entries.Upsert(ctx, entry))
	require.NoError(t, stores.Expenses.Upsert(ctx, models.Expense{
		ID: "x1", UserID: "u1", Type: models.ExpenseTypeFuel, Amount: 40,
		Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}))

	require.NoError(t, Wipe(ctx, db))

	all, err := stores.Entries.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	expenses, err := stores.Expenses.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}
