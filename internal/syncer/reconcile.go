package syncer

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/fleetsync/internal/common"
)

var errStreamClosed = errors.New("remote subscription closed")

// reconcileRestartDelay is the linear backoff step between subscription
// restarts.
const reconcileRestartDelay = 5 * time.Second

// RunReconciliation keeps the local synced subset equal to the live remote
// snapshot for the lifetime of ctx. Remote is authoritative for synced data:
// a locally cached synced record absent from the latest snapshot is deleted.
// Unsynced records are pending local writes and are never touched.
//
// When the subscription dies the loop restarts with linear backoff instead
// of ending silently; every restart is visible through the reporter.
func (c *Coordinator[T]) RunReconciliation(ctx context.Context, view *View[T]) {
	for attempt := 1; ; attempt++ {
		err := c.reconcileOnce(ctx, view)
		if ctx.Err() != nil {
			return
		}
		c.deps.Reporter.Suppressed(ctx, c.scope("reconcile.stream"), err)

		delay := time.Duration(attempt) * reconcileRestartDelay
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}
	}
}

func (c *Coordinator[T]) reconcileOnce(ctx context.Context, view *View[T]) error {
	ch, err := c.remote.Subscribe(ctx, c.visibilityFilter())
	if err != nil {
		return err
	}

	for snap := range ch {
		if err := c.applySnapshot(ctx, snap, view); err != nil {
			c.deps.Reporter.Suppressed(ctx, c.scope("reconcile.apply"), err)
		}
	}
	return errStreamClosed
}

// applySnapshot merges one remote snapshot into the cache and publishes the
// merged result (remote state plus still-pending local writes) to the view.
func (c *Coordinator[T]) applySnapshot(ctx context.Context, snap []T, view *View[T]) error {
	remoteIDs := make(map[string]struct{}, len(snap))
	for _, v := range snap {
		remoteIDs[v.RecordID()] = struct{}{}

		local, err := c.local.GetByID(ctx, v.RecordID())
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return err
		}
		if local != nil && !(*local).IsSynced() {
			continue
		}
		if err := c.local.Upsert(ctx, v.WithSynced(true)); err != nil {
			return err
		}
	}

	synced, err := c.local.GetAllSynced(ctx)
	if err != nil {
		return err
	}
	for _, s := range synced {
		if _, ok := remoteIDs[s.RecordID()]; !ok {
			if err := c.local.Delete(ctx, s.RecordID()); err != nil {
				return err
			}
		}
	}

	if view != nil {
		merged, err := c.local.GetAll(ctx)
		if err != nil {
			return err
		}
		view.Publish(merged)
	}
	return nil
}
