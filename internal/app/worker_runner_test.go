package app

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/dig"

	"service-parcel/internal/logx"
	"service-parcel/internal/service/dispatch"
	"service-parcel/internal/transport/kafka"
)

func TestWorkerRunner_MustRun_NoPanicOnNil(t *testing.T) {
	t.Parallel()

	r := &WorkerRunner{runFn: func(*dig.Container) error { return nil }}
	require.NotPanics(t, func() { r.MustRun(dig.New()) })
}

func TestWorkerRunner_MustRun_NoPanicOnCanceled(t *testing.T) {
	t.Parallel()

	r := &WorkerRunner{runFn: func(*dig.Container) error { return context.Canceled }}
	require.NotPanics(t, func() { r.MustRun(dig.New()) })
}

func TestWorkerRunner_MustRun_PanicsOnOtherError(t *testing.T) {
	t.Parallel()

	r := &WorkerRunner{runFn: func(*dig.Container) error { return errors.New("boom") }}
	require.Panics(t, func() { r.MustRun(dig.New()) })
}

func TestWorkerRun_ReturnsError_WhenConsumerNil(t *testing.T) {
	t.Parallel()

	err := workerRun(context.Background(), nil, logx.Nop(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "kafka consumer is nil")
}

type workerDepsIn struct {
	dig.In

	Processor *dispatch.Processor
	Consumer  *kafka.Consumer
	Side      *http.Server `name:"pprof_server" optional:"true"`
}

func TestBuildWorker_WithoutKafkaHasNoConsumer(t *testing.T) {
	stubEnsureIndexes(t, func(context.Context, *mongo.Database) error { return nil })

	cfg := testConfig()
	cfg.Pprof.Enabled = true
	c := testBuilder(t, cfg).MustBuildWorker(context.Background())

	err := c.Invoke(func(in workerDepsIn) {
		require.NotNil(t, in.Processor)
		require.Nil(t, in.Consumer)
		require.NotNil(t, in.Side)
	})
	require.NoError(t, err)

	require.Error(t, runWorker(c), "worker refuses to start without kafka")
}
