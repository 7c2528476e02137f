// Package syncer reconciles the local cache, the remote authoritative store
// and pending local mutations. Writes land locally first and are pushed
// remotely best-effort; the synced flag is the only queue discriminator.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fleetsync/internal/blob"
	"github.com/dmitrijs2005/fleetsync/internal/common"
	"github.com/dmitrijs2005/fleetsync/internal/identity"
	"github.com/dmitrijs2005/fleetsync/internal/logging"
	"github.com/dmitrijs2005/fleetsync/internal/models"
	"github.com/dmitrijs2005/fleetsync/internal/policy"
	"github.com/dmitrijs2005/fleetsync/internal/remote"
	"github.com/dmitrijs2005/fleetsync/internal/report"
)

// LocalStore is the slice of the cache repository the coordinator needs.
// The concrete SQLite repositories satisfy it for their entity type.
type LocalStore[T any] interface {
	GetByID(ctx context.Context, id string) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	GetAllUnsynced(ctx context.Context) ([]T, error)
	GetAllSynced(ctx context.Context) ([]T, error)
	Upsert(ctx context.Context, v T) error
	Delete(ctx context.Context, id string) error
	MarkSynced(ctx context.Context, id string) error
}

// Attachment is a photo to upload alongside a save.
type Attachment struct {
	Data []byte
}

// photoCarrier is implemented by records that hold photo references.
type photoCarrier[T any] interface {
	WithPhotos(urls []string) T
}

// Deps are the collaborators shared by every coordinator.
type Deps struct {
	Identity identity.Provider
	Blobs    blob.Storage
	Reporter report.Reporter
	Log      logging.Logger
	Now      func() time.Time
}

// Coordinator orchestrates push and pull for one entity type.
type Coordinator[T models.Record[T]] struct {
	name   string
	local  LocalStore[T]
	remote remote.Collection[T]
	deps   Deps
}

func New[T models.Record[T]](name string, local LocalStore[T], rc remote.Collection[T], deps Deps) *Coordinator[T] {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = logging.Nop{}
	}
	return &Coordinator[T]{name: name, local: local, remote: rc, deps: deps}
}

func (c *Coordinator[T]) scope(op string) string { return c.name + "." + op }

// visibilityFilter builds the remote read filter the caller's role allows.
func (c *Coordinator[T]) visibilityFilter() remote.Filter {
	if policy.CanViewAll(c.deps.Identity.Role()) {
		return remote.Filter{}
	}
	return remote.Filter{OwnerID: c.deps.Identity.CurrentUserID()}
}

// Save validates, resolves ownership and persists the record locally before
// any network attempt. The remote write is best-effort: its failure is
// reported, never returned. Only a local storage failure or a policy
// rejection fails the call.
func (c *Coordinator[T]) Save(ctx context.Context, v T, attachments ...Attachment) error {
	if err := v.Validate(); err != nil {
		return err
	}

	currentUser := c.deps.Identity.CurrentUserID()
	role := c.deps.Identity.Role()

	existing, err := c.local.GetByID(ctx, v.RecordID())
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}

	if existing != nil {
		// Ownership is fixed once a record has synced, and editing synced
		// records is an admin capability.
		if (*existing).IsSynced() {
			if !policy.CanMutateExisting(role) {
				return common.ErrPermissionDenied
			}
			v = v.WithOwner((*existing).Owner())
		}
	}

	d, u := v.Owner()
	rd, ru := identity.Resolve(d, u, currentUser)
	v = v.WithOwner(rd, ru)

	if !policy.CanCreateFor(role, ru, currentUser) {
		return common.ErrPermissionDenied
	}

	if len(attachments) > 0 {
		urls := make([]string, 0, len(attachments))
		for _, a := range attachments {
			url, err := c.deps.Blobs.Upload(ctx, a.Data, blob.PhotoKey(c.deps.Now()))
			if err != nil {
				// degrade to a local-only save; the next save retries the
				// whole upload
				c.deps.Reporter.Suppressed(ctx, c.scope("save.upload"), err)
				if err := c.local.Upsert(ctx, v.WithSynced(false)); err != nil {
					return err
				}
				c.deps.Reporter.Notice(ctx, "saved locally, sync pending")
				return nil
			}
			urls = append(urls, url)
		}
		if pc, ok := any(v).(photoCarrier[T]); ok {
			v = pc.WithPhotos(urls)
		}
	}

	preSynced := existing != nil && (*existing).IsSynced()
	if err := c.local.Upsert(ctx, v.WithSynced(preSynced)); err != nil {
		return err
	}

	if err := c.remote.Set(ctx, v.RecordID(), v); err != nil {
		c.deps.Reporter.Suppressed(ctx, c.scope("save.remote"), err)
		c.deps.Reporter.Notice(ctx, "saved locally, sync pending")
		return nil
	}

	if err := c.local.MarkSynced(ctx, v.RecordID()); err != nil {
		return err
	}
	return nil
}

// Delete removes the record locally first; the remote delete is best-effort
// with no retry queue. A record that was already synced may only be deleted
// by an admin; an unsynced record never reached the remote and may be
// discarded by its owner.
func (c *Coordinator[T]) Delete(ctx context.Context, id string) error {
	existing, err := c.local.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		existing = nil
	} else if err != nil {
		return err
	}

	if existing != nil && (*existing).IsSynced() && !policy.CanMutateExisting(c.deps.Identity.Role()) {
		return common.ErrPermissionDenied
	}

	if err := c.local.Delete(ctx, id); err != nil {
		return err
	}

	if err := c.remote.Delete(ctx, id); err != nil {
		// accepted gap: the record can reappear on the next pull if the
		// remote delete never took effect
		c.deps.Reporter.Suppressed(ctx, c.scope("delete.remote"), err)
	}
	return nil
}

// SyncUnsynced pushes every record still flagged unsynced. One record's
// failure does not block the rest; the returned count is the number pushed
// and the error, if any, only signals the scheduler that a retry is due.
// When everything is already synced it performs zero remote writes.
func (c *Coordinator[T]) SyncUnsynced(ctx context.Context) (int, error) {
	pending, err := c.local.GetAllUnsynced(ctx)
	if err != nil {
		return 0, err
	}

	var pushed, failed int
	for _, v := range pending {
		if err := c.remote.Set(ctx, v.RecordID(), v); err != nil {
			c.deps.Reporter.Suppressed(ctx, c.scope("sync.remote"), err)
			failed++
			continue
		}
		if err := c.local.MarkSynced(ctx, v.RecordID()); err != nil {
			return pushed, err
		}
		pushed++
	}

	c.deps.Log.Debug(ctx, "sync pass finished", "entity", c.name, "pushed", pushed, "failed", failed)
	if failed > 0 {
		return pushed, fmt.Errorf("%d of %d %s left unsynced", failed, len(pending), c.name)
	}
	return pushed, nil
}

// FetchAndCacheRemote pulls the visible remote set and overwrites the local
// synced copies. A remote read failure leaves the cache untouched — stale
// data beats lost data. Unsynced local records are never overwritten:
// remote wins only once a record is synced.
func (c *Coordinator[T]) FetchAndCacheRemote(ctx context.Context) error {
	rows, err := c.remote.Query(ctx, c.visibilityFilter())
	if err != nil {
		c.deps.Reporter.Suppressed(ctx, c.scope("fetch.remote"), err)
		return err
	}

	for _, v := range rows {
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
	return nil
}

// Get reads from the local cache; the presentation layer never talks to the
// stores directly.
func (c *Coordinator[T]) Get(ctx context.Context, id string) (*T, error) {
	return c.local.GetByID(ctx, id)
}

// List returns everything cached locally.
func (c *Coordinator[T]) List(ctx context.Context) ([]T, error) {
	return c.local.GetAll(ctx)
}
