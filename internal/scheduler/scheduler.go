// Package scheduler drives periodic and on-demand sync passes. It owns the
// retry policy; the coordinators themselves never sleep or loop.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/fleetsync/internal/logging"
	"github.com/dmitrijs2005/fleetsync/internal/netx"
	"github.com/dmitrijs2005/fleetsync/internal/report"
)

// State is the scheduler's externally visible run state.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateRetryWait
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateRetryWait:
		return "retry-wait"
	default:
		return "unknown"
	}
}

// SyncFunc runs one full sync pass and returns the number of records pushed.
type SyncFunc func(ctx context.Context) (int, error)

// Config tunes the cadence and the retry policy of the scheduler.
type Config struct {
	// Every is the interval between periodic sync passes.
	Every time.Duration

	// MaxRetries bounds the in-run retries after the first attempt.
	MaxRetries uint64

	// RetryStep is the linear backoff unit: attempt n waits n*RetryStep.
	RetryStep time.Duration
}

// Scheduler runs sync passes on a cron cadence and on demand. Manual
// triggers coalesce: while a pass is pending or running, at most one more
// is queued, however often the user taps refresh.
type Scheduler struct {
	cfg      Config
	sync     SyncFunc
	probe    netx.Probe
	metrics  *report.Metrics
	reporter report.Reporter
	log      logging.Logger

	cron    *cron.Cron
	trigger chan struct{}
	state   atomic.Int32
	now     func() time.Time
}

func New(cfg Config, sync SyncFunc, probe netx.Probe, metrics *report.Metrics, reporter report.Reporter, log logging.Logger) *Scheduler {
	if cfg.Every <= 0 {
		cfg.Every = 15 * time.Minute
	}
	if cfg.RetryStep <= 0 {
		cfg.RetryStep = 30 * time.Second
	}
	if probe == nil {
		probe = netx.Always(true)
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &Scheduler{
		cfg:      cfg,
		sync:     sync,
		probe:    probe,
		metrics:  metrics,
		reporter: reporter,
		log:      log,
		cron:     cron.New(),
		trigger:  make(chan struct{}, 1),
		now:      time.Now,
	}
}

// State returns the current run state.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Trigger requests an immediate sync pass. It never blocks; a trigger
// arriving while one is already queued is absorbed into it.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run starts the periodic schedule and serves triggers until ctx ends.
// Passes never overlap: the loop is the only goroutine that runs them.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Schedule(cron.Every(s.cfg.Every), cron.FuncJob(s.Trigger))
	s.cron.Start()
	defer s.cron.Stop()

	s.log.Info(ctx, "scheduler started", "every", s.cfg.Every)
	for {
		select {
		case <-s.trigger:
			s.runOnce(ctx)
		case <-ctx.Done():
			s.log.Info(ctx, "scheduler stopped")
			return
		}
	}
}

// runOnce performs a single gated, retried sync pass.
func (s *Scheduler) runOnce(ctx context.Context) {
	s.state.Store(int32(StateRunning))
	defer s.state.Store(int32(StateIdle))

	if !s.probe.Online(ctx) {
		s.reporter.Notice(ctx, "offline, sync deferred")
		return
	}

	var pushed int
	backoff := retry.WithMaxRetries(s.cfg.MaxRetries, s.linearBackoff())
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		n, err := s.sync(ctx)
		pushed += n
		if err != nil {
			s.state.Store(int32(StateRetryWait))
			return retry.RetryableError(err)
		}
		s.state.Store(int32(StateRunning))
		return nil
	})
	if err != nil {
		// leftovers stay queued locally until the next scheduled pass
		s.reporter.Suppressed(ctx, "scheduler.sync", err)
		return
	}

	if s.metrics != nil {
		s.metrics.SyncSucceeded(s.now())
	}
	s.log.Info(ctx, "sync pass succeeded", "pushed", pushed)
}

// linearBackoff waits attempt*RetryStep between attempts.
func (s *Scheduler) linearBackoff() retry.Backoff {
	var attempt uint64
	return retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return time.Duration(attempt) * s.cfg.RetryStep, false
	})
}
