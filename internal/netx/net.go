// Package netx answers one question for the scheduler: does the device
// currently have a usable network path? A cheap HTTP probe is the most
// honest signal available; interface state lies on captive portals.
package netx

import (
	"context"
	"net/http"
	"time"
)

// Probe reports whether the remote side is reachable right now.
type Probe interface {
	Online(ctx context.Context) bool
}

// HTTPProbe issues a HEAD request against a well-known endpoint and treats
// any HTTP response, whatever the status, as proof of connectivity.
type HTTPProbe struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

func NewHTTPProbe(url string, timeout time.Duration) *HTTPProbe {
	return &HTTPProbe{URL: url, Timeout: timeout, Client: &http.Client{}}
}

func (p *HTTPProbe) Online(ctx context.Context) bool {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		return false
	}

	client := p.Client
	if client == nil {
		client = &http.Client{}
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}

// Always is a fixed-answer probe for tests and for deployments that prefer
// to let the sync attempt itself discover the outage.
type Always bool

func (a Always) Online(context.Context) bool { return bool(a) }
