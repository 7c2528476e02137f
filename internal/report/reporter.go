// Package report is the single side channel for errors the sync layer
// deliberately swallows. Remote failures must never crash or block the
// caller, but they must stay observable: every suppressed error flows
// through a Reporter so metrics, logs and tests all see it.
package report

import (
	"context"

	"github.com/dmitrijs2005/fleetsync/internal/logging"
)

// Reporter receives errors that were recovered from rather than returned.
type Reporter interface {
	// Suppressed records an error that was swallowed in scope (e.g.
	// "entries.save.remote"). Implementations must not block.
	Suppressed(ctx context.Context, scope string, err error)

	// Notice records a transient, user-visible message (banner/toast class).
	Notice(ctx context.Context, msg string)
}

// LogReporter writes every suppressed error to a structured logger.
type LogReporter struct {
	log logging.Logger
}

func NewLogReporter(log logging.Logger) *LogReporter {
	return &LogReporter{log: log}
}

func (r *LogReporter) Suppressed(ctx context.Context, scope string, err error) {
	r.log.Warn(ctx, "suppressed error", "scope", scope, "error", err)
}

func (r *LogReporter) Notice(ctx context.Context, msg string) {
	r.log.Info(ctx, "notice", "msg", msg)
}
