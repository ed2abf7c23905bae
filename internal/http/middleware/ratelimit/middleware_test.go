package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"service-parcel/internal/logx"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type fixedLimiter struct {
	allow bool
	keys  []string
}

func (f *fixedLimiter) Allow(key string) bool {
	f.keys = append(f.keys, key)
	return f.allow
}

func TestMiddleware_Allowed_PassesThrough(t *testing.T) {
	t.Parallel()

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})
	lim := &fixedLimiter{allow: true}

	r := httptest.NewRequest(http.MethodGet, "/parcels", nil)
	r.RemoteAddr = "1.2.3.4:5678"
	w := httptest.NewRecorder()
	New(logx.Nop(), nil, lim).Handler()(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, calls)
	require.Equal(t, []string{"1.2.3.4"}, lim.keys)
}

func TestMiddleware_Denied_Returns429(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not run")
	})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_rejected_total", Help: "test"})

	r := httptest.NewRequest(http.MethodGet, "/parcels", nil)
	w := httptest.NewRecorder()
	New(nil, rejected, &fixedLimiter{}).Handler()(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Equal(t, "1", w.Header().Get("Retry-After"))
	require.JSONEq(t, `{"message":"too many requests"}`, w.Body.String())
	require.InDelta(t, 1, testutil.ToFloat64(rejected), 1e-9)
}

func TestMiddleware_NilLimiterAllows(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	w := httptest.NewRecorder()
	New(nil, nil, nil).Handler()(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"10.0.0.1:443":   "10.0.0.1",
		"[::1]:8080":     "::1",
		"not-a-hostport": "not-a-hostport",
		"":               "unknown",
	}
	for addr, want := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = addr
		require.Equal(t, want, clientIP(r), addr)
	}
}
