package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fleetsync/internal/models"
	"github.com/dmitrijs2005/fleetsync/internal/policy"
)

func TestWatchByDateRange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rig := newTestRig(t, policy.RoleDriver)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	require.NoError(t, rig.local.Upsert(ctx, testEntry("e1")))

	ch, err := rig.coord.WatchByDateRange(ctx, start, end, 10*time.Millisecond)
	require.NoError(t, err)

	select {
	case got := <-ch:
		require.Len(t, got, 1)
		assert.Equal(t, "e1", got[0].ID)
	case <-time.After(time.Second):
		t.Fatal("no initial emission")
	}

	require.NoError(t, rig.local.Upsert(ctx, testEntry("e2")))

	select {
	case got := <-ch:
		assert.Len(t, got, 2)
	case <-time.After(time.Second):
		t.Fatal("no emission after insert")
	}
}

func TestWatchByDateRange_UnsupportedStore(t *testing.T) {
	c := New[models.Driver]("drivers", emptyStore[models.Driver]{}, newFakeCollection[models.Driver](), Deps{
		Reporter: &noopReporter{},
	})
	_, err := c.WatchByDateRange(context.Background(), time.Now(), time.Now(), time.Second)
	assert.ErrorIs(t, err, ErrWatchUnsupported)
}

type noopReporter struct{}

func (noopReporter) Suppressed(context.Context, string, error) {}
func (noopReporter) Notice(context.Context, string)            {}
