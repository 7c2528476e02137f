package report

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts suppressed errors per scope and tracks the last successful
// sync time. It chains to a next Reporter so counting and logging compose.
type Metrics struct {
	next Reporter

	suppressed *prometheus.CounterVec
	notices    prometheus.Counter
	lastSync   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer, next Reporter) *Metrics {
	m := &Metrics{
		next: next,
		suppressed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetsync_suppressed_errors_total",
			Help: "Errors recovered from locally instead of being returned.",
		}, []string{"scope"}),
		notices: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleetsync_notices_total",
			Help: "Transient user-visible notices emitted.",
		}),
		lastSync: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fleetsync_last_sync_timestamp_seconds",
			Help: "Unix time of the last fully successful scheduled sync.",
		}),
	}
	reg.MustRegister(m.suppressed, m.notices, m.lastSync)
	return m
}

func (m *Metrics) Suppressed(ctx context.Context, scope string, err error) {
	m.suppressed.WithLabelValues(scope).Inc()
	if m.next != nil {
		m.next.Suppressed(ctx, scope, err)
	}
}

func (m *Metrics) Notice(ctx context.Context, msg string) {
	m.notices.Inc()
	if m.next != nil {
		m.next.Notice(ctx, msg)
	}
}

// SyncSucceeded advances the last-synced timestamp. It is only called by the
// scheduler after a run with no failures, so a stuck gauge is itself the
// user-visible signal that syncing is not making progress.
func (m *Metrics) SyncSucceeded(at time.Time) {
	m.lastSync.Set(float64(at.Unix()))
}
