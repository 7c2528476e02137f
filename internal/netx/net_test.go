package netx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHTTPProbe(t *testing.T) {
	t.Run("any response means online", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer ts.Close()

		p := NewHTTPProbe(ts.URL, time.Second)
		assert.True(t, p.Online(context.Background()))
	})

	t.Run("error status still means online", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		p := NewHTTPProbe(ts.URL, time.Second)
		assert.True(t, p.Online(context.Background()))
	})

	t.Run("unreachable endpoint means offline", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		ts.Close()

		p := NewHTTPProbe(ts.URL, 100*time.Millisecond)
		assert.False(t, p.Online(context.Background()))
	})
}

func TestAlways(t *testing.T) {
	assert.True(t, Always(true).Online(context.Background()))
	assert.False(t, Always(false).Online(context.Background()))
}
