// Package agent assembles the sync agent: local cache, remote collections,
// photo storage, identity, the per-entity coordinators and the scheduler
// that drives them.
package agent

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dmitrijs2005/fleetsync/internal/blob"
	"github.com/dmitrijs2005/fleetsync/internal/cache"
	"github.com/dmitrijs2005/fleetsync/internal/common"
	"github.com/dmitrijs2005/fleetsync/internal/config"
	"github.com/dmitrijs2005/fleetsync/internal/identity"
	"github.com/dmitrijs2005/fleetsync/internal/logging"
	"github.com/dmitrijs2005/fleetsync/internal/models"
	"github.com/dmitrijs2005/fleetsync/internal/netx"
	"github.com/dmitrijs2005/fleetsync/internal/policy"
	"github.com/dmitrijs2005/fleetsync/internal/remote"
	"github.com/dmitrijs2005/fleetsync/internal/report"
	"github.com/dmitrijs2005/fleetsync/internal/scheduler"
	"github.com/dmitrijs2005/fleetsync/internal/syncer"
)

type App struct {
	cfg    *config.Config
	log    logging.Logger
	db     *sql.DB
	client *mongo.Client

	Manager   *syncer.Manager
	Scheduler *scheduler.Scheduler

	EntriesView  *syncer.View[models.Entry]
	ExpensesView *syncer.View[models.Expense]
}

// NewApp wires every component from the given configuration. It fails fast
// on anything local (cache, identity); the remote side only has to be
// reachable once, at startup, to establish the collections.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	zl, err := logging.NewProductionZap()
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	log := zl.With("component", "agent")

	id, err := resolveIdentity(cfg)
	if err != nil {
		return nil, err
	}
	if !id.SignedIn() {
		return nil, common.ErrSignedOut
	}

	stores, db, err := cache.InitDatabase(ctx, cfg.CacheDSN)
	if err != nil {
		return nil, err
	}

	client, err := remote.Connect(ctx, cfg.MongoURI)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	mdb := client.Database(cfg.MongoDatabase)

	blobs, err := blob.NewS3Storage(ctx, blob.S3Config{
		Region:       cfg.S3Region,
		Bucket:       cfg.S3Bucket,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		BaseEndpoint: cfg.S3BaseEndpoint,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	metrics := report.NewMetrics(prometheus.DefaultRegisterer, report.NewLogReporter(log))

	manager := syncer.NewManager(stores, syncer.Remotes{
		Entries:  remote.NewEntryCollection(mdb),
		Expenses: remote.NewExpenseCollection(mdb),
		Drivers:  remote.NewDriverCollection(mdb),
		Vehicles: remote.NewVehicleCollection(mdb),
	}, syncer.Deps{
		Identity: id,
		Blobs:    blobs,
		Reporter: metrics,
		Log:      log,
	})

	sched := scheduler.New(scheduler.Config{
		Every:      cfg.SyncInterval,
		MaxRetries: uint64(cfg.SyncMaxRetries),
		RetryStep:  cfg.SyncRetryStep,
	}, manager.SyncAll, netx.NewHTTPProbe(cfg.ProbeURL, cfg.ProbeTimeout), metrics, metrics, log)

	return &App{
		cfg:          cfg,
		log:          log,
		db:           db,
		client:       client,
		Manager:      manager,
		Scheduler:    sched,
		EntriesView:  syncer.NewView[models.Entry](),
		ExpensesView: syncer.NewView[models.Expense](),
	}, nil
}

func resolveIdentity(cfg *config.Config) (identity.Provider, error) {
	if cfg.IDToken != "" {
		return identity.FromIDToken(cfg.IDToken)
	}
	return identity.StaticProvider{
		UserID:   cfg.UserID,
		UserRole: policy.ParseRole(cfg.UserRole),
	}, nil
}

func (a *App) initSignalHandler(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancel()
	}()
}

// Run starts the scheduler, the live reconciliation streams and the metrics
// endpoint, then blocks until a signal or ctx cancels everything.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.initSignalHandler(cancel)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.Manager.Entries.RunReconciliation(ctx, a.EntriesView)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.Manager.Expenses.RunReconciliation(ctx, a.ExpensesView)
	}()

	if a.cfg.MetricsAddr != "" {
		a.startMetricsServer(ctx, &wg)
	}

	// first pass immediately instead of waiting out the interval
	a.Scheduler.Trigger()

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.Scheduler.Run(ctx)
	}()

	<-ctx.Done()
	wg.Wait()
	a.shutdown()
}

func (a *App) startMetricsServer(ctx context.Context, wg *sync.WaitGroup) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: a.cfg.MetricsAddr, Handler: mux}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error(ctx, "metrics server failed", "error", err)
		}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

// SyncOnce runs a single sync pass outside the scheduler and returns the
// number of records pushed.
func (a *App) SyncOnce(ctx context.Context) (int, error) {
	return a.Manager.SyncAll(ctx)
}

// WipeCache clears the local cache, unsynced rows included. Meant for an
// identity change, where stale rows are worse than re-downloading.
func (a *App) WipeCache(ctx context.Context) error {
	return cache.Wipe(ctx, a.db)
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.client.Disconnect(ctx); err != nil {
		a.log.Warn(ctx, "remote disconnect failed", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(ctx, "cache close failed", "error", err)
	}
	a.log.Info(ctx, "agent stopped")
}

// Close releases resources for a non-Run lifecycle (one-shot commands).
func (a *App) Close() {
	a.shutdown()
}
