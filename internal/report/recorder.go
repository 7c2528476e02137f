package report

import (
	"context"
	"sync"
)

// Suppression is one recorded suppressed error.
type Suppression struct {
	Scope string
	Err   error
}

// Recorder is an in-memory Reporter for tests. It lets tests assert that a
// failure path was taken without the error ever being returned.
type Recorder struct {
	mu          sync.Mutex
	suppression []Suppression
	notices     []string
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Suppressed(_ context.Context, scope string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppression = append(r.suppression, Suppression{Scope: scope, Err: err})
}

func (r *Recorder) Notice(_ context.Context, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, msg)
}

// Suppressions returns a copy of everything recorded so far.
func (r *Recorder) Suppressions() []Suppression {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Suppression(nil), r.suppression...)
}

// Notices returns a copy of recorded notices.
func (r *Recorder) Notices() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notices...)
}

// Scopes returns the scopes of recorded suppressions, in order.
func (r *Recorder) Scopes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.suppression))
	for _, s := range r.suppression {
		out = append(out, s.Scope)
	}
	return out
}
