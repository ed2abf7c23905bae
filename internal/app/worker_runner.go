package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/dig"

	"service-parcel/internal/logx"
	"service-parcel/internal/transport/kafka"
)

// WorkerRunner runs the assignment event consumer
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes until the container context is canceled
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

type workerIn struct {
	dig.In

	Ctx      context.Context
	Client   *mongo.Client `optional:"true"`
	Logger   logx.Logger
	Consumer *kafka.Consumer
	Side     *http.Server `name:"pprof_server" optional:"true"`
}

func runWorker(container *dig.Container) error {
	var runErr error
	if err := container.Invoke(func(in workerIn) {
		if in.Side != nil {
			startServer(in.Side, in.Logger, "worker-debug", make(chan error, 1))
			defer gracefulShutdown(in.Side, in.Logger, shutdownTimeout)
		}
		runErr = workerRun(in.Ctx, in.Client, in.Logger, in.Consumer)
	}); err != nil {
		return err
	}
	return runErr
}

func workerRun(
	ctx context.Context,
	client *mongo.Client,
	logger logx.Logger,
	consumer *kafka.Consumer,
) error {
	if consumer == nil {
		return fmt.Errorf("kafka consumer is nil: set KAFKA_BROKERS and KAFKA_ASSIGNMENTS_TOPIC")
	}
	defer closeWorker(client, logger, consumer)

	logger.Info("service-parcel-worker started")
	return consumer.Run(ctx)
}

func closeWorker(client *mongo.Client, logger logx.Logger, consumer *kafka.Consumer) {
	if err := consumer.Close(); err != nil {
		logger.Error("kafka close error", logx.Err(err))
	}
	disconnect(client, logger)
}
