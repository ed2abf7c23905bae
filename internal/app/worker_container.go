package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"service-parcel/internal/config"
	"service-parcel/internal/http/pprofserver"
	"service-parcel/internal/logx"
	"service-parcel/internal/metrics"
	"service-parcel/internal/repository"
	"service-parcel/internal/service/dispatch"
	"service-parcel/internal/service/parcel"
	"service-parcel/internal/transport/kafka"
)

// MustBuildWorker builds the assignment event worker container
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMongo(container, b.mongoConnect); err != nil {
		return nil, fmt.Errorf("mongo: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildWorkerContainer builds and returns the worker container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

type consumerIn struct {
	dig.In
	Config    *config.Config
	Logger    logx.Logger
	Processor *dispatch.Processor
	Consumed  *prometheus.CounterVec `name:"assignment_events_consumed_total"`
}

type workerMetricsOut struct {
	dig.Out
	Consumed *prometheus.CounterVec `name:"assignment_events_consumed_total"`
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		repository.NewParcelRepo,
		func(repo *repository.ParcelRepo, timeout time.Duration) *parcel.Service {
			return parcel.NewService(repo, timeout)
		},
		func(svc *parcel.Service, logger logx.Logger) *dispatch.Processor {
			return dispatch.NewProcessor(svc, logger)
		},
		newRegistry,
		provideWorkerMetrics,
		newConsumer,
		newWorkerSideServer,
	)
}

func provideWorkerMetrics(reg *prometheus.Registry) (workerMetricsOut, error) {
	consumed := metrics.NewAssignmentEventsConsumedTotal()
	if err := metrics.Register(reg, consumed); err != nil {
		return workerMetricsOut{}, fmt.Errorf("register worker metrics: %w", err)
	}
	return workerMetricsOut{Consumed: consumed}, nil
}

func newConsumer(in consumerIn) (*kafka.Consumer, error) {
	k := in.Config.Kafka
	return kafka.NewConsumer(in.Logger, k.Brokers, k.GroupID, k.Topic, in.Processor.Handle,
		kafka.WithConsumedCounter(in.Consumed),
	)
}

// newWorkerSideServer serves profiles and worker metrics when pprof is enabled.
func newWorkerSideServer(cfg *config.Config, reg *prometheus.Registry) pprofOut {
	if !cfg.Pprof.Enabled {
		return pprofOut{}
	}
	return pprofOut{Server: pprofserver.New(pprofserver.Config{
		Addr:    cfg.Pprof.Addr,
		User:    cfg.Pprof.User,
		Pass:    cfg.Pprof.Pass,
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	})}
}
