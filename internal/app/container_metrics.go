package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"

	"service-parcel/internal/metrics"
)

type metricsOut struct {
	dig.Out

	HTTP                   *metrics.HTTP
	RateLimitExceededTotal prometheus.Counter     `name:"rate_limit_exceeded_total"`
	AuthRejectedTotal      prometheus.Counter     `name:"auth_rejected_total"`
	EventsPublishedTotal   *prometheus.CounterVec `name:"assignment_events_published_total"`
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, newRegistry, provideMetrics)
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideMetrics(reg *prometheus.Registry) (metricsOut, error) {
	out := metricsOut{
		HTTP:                   metrics.NewHTTP(),
		RateLimitExceededTotal: metrics.NewRateLimitExceededTotal(),
		AuthRejectedTotal:      metrics.NewAuthRejectedTotal(),
		EventsPublishedTotal:   metrics.NewAssignmentEventsPublishedTotal(),
	}
	if err := metrics.Register(reg, out.HTTP.Collectors()...); err != nil {
		return metricsOut{}, fmt.Errorf("register http metrics: %w", err)
	}
	if err := metrics.Register(reg,
		out.RateLimitExceededTotal,
		out.AuthRejectedTotal,
		out.EventsPublishedTotal,
	); err != nil {
		return metricsOut{}, fmt.Errorf("register service metrics: %w", err)
	}
	return out, nil
}
