package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-parcel/internal/config"
	"service-parcel/internal/logx"
	"service-parcel/internal/transport/kafka"
)

type producerIn struct {
	dig.In
	Config    *config.Config
	Logger    logx.Logger
	Published *prometheus.CounterVec `name:"assignment_events_published_total"`
}

// newProducer returns nil when Kafka is not configured; assignments are then only stored.
func newProducer(in producerIn) (*kafka.Producer, error) {
	if !in.Config.Kafka.Enabled() {
		in.Logger.Info("kafka disabled, assignment events will not be published")
		return nil, nil
	}
	return kafka.NewProducer(in.Config.Kafka.Brokers, in.Config.Kafka.Topic, in.Published)
}
