package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"service-parcel/internal/metrics"
	testlog "service-parcel/internal/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestObservability_UsesRoutePatternForLabels(t *testing.T) {
	t.Parallel()

	m := metrics.NewHTTP()
	rec := testlog.New()

	r := chi.NewRouter()
	r.Use(Observability(rec.Logger(), m))
	r.Get("/parcels/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for range 2 {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/parcels/665f1c2a9d1e8a0012345678", nil))
		require.Equal(t, http.StatusNoContent, rr.Code)
	}

	require.InDelta(t, 2, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "/parcels/{id}", "204")), 1e-9)
	require.EqualValues(t, 2, histogramCount(t, m.Duration, http.MethodGet, "/parcels/{id}", "204"))

	e, ok := rec.Find("info", "http request")
	require.True(t, ok)
	path, _ := e.Field("path")
	require.Equal(t, "/parcels/{id}", path)
}

func TestObservability_UnmatchedRoutesShareOneLabel(t *testing.T) {
	t.Parallel()

	m := metrics.NewHTTP()
	r := chi.NewRouter()
	r.Use(Observability(nil, m))
	r.Get("/ping", func(http.ResponseWriter, *http.Request) {})

	for _, p := range []string{"/a", "/b/c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}
	require.InDelta(t, 2, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "unmatched", "404")), 1e-9)
}

func histogramCount(t *testing.T, hv *prometheus.HistogramVec, method, path, status string) uint64 {
	t.Helper()

	obs, err := hv.GetMetricWithLabelValues(method, path, status)
	require.NoError(t, err)

	metric, ok := obs.(prometheus.Metric)
	require.True(t, ok, "must implement prometheus.Metric")

	var out dto.Metric
	require.NoError(t, metric.Write(&out))
	require.NotNil(t, out.GetHistogram())
	return out.GetHistogram().GetSampleCount()
}
