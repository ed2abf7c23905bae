// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTP holds per-route request metrics.
type HTTP struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewHTTP returns unregistered request counter and latency histogram labelled by method, route pattern and status.
func NewHTTP() *HTTP {
	labels := []string{"method", "path", "status"}
	return &HTTP{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, labels),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, labels),
	}
}

// Collectors lists everything NewHTTP created.
func (h *HTTP) Collectors() []prometheus.Collector {
	return []prometheus.Collector{h.Requests, h.Duration}
}

// NewRateLimitExceededTotal returns a counter of requests rejected by the rate limiter.
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewAuthRejectedTotal returns a counter of requests refused by the bearer token check.
func NewAuthRejectedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_rejected_total",
		Help: "Total number of HTTP requests rejected for a missing or invalid token",
	})
}

// NewAssignmentEventsPublishedTotal counts assignment.recorded events by outcome ("ok", "error").
func NewAssignmentEventsPublishedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_events_published_total",
		Help: "Total number of assignment events sent to Kafka",
	}, []string{"result"})
}

// NewAssignmentEventsConsumedTotal counts consumed assignment events by outcome
// ("handled", "skipped", "failed").
func NewAssignmentEventsConsumedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_events_consumed_total",
		Help: "Total number of assignment events read from Kafka",
	}, []string{"result"})
}

// Register adds cs to reg. A collector that is already registered is not an error.
func Register(reg prometheus.Registerer, cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
