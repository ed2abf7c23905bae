package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"service-parcel/internal/domain"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"
)

var newSyncProducer = sarama.NewSyncProducer

// Producer publishes assignment events keyed by parcel id, so events for one
// parcel stay ordered within a partition.
type Producer struct {
	sp        sarama.SyncProducer
	topic     string
	published *prometheus.CounterVec
}

// NewProducer creates a synchronous producer. It returns (nil, nil) when Kafka is not configured.
func NewProducer(brokers []string, topic string, published *prometheus.CounterVec) (*Producer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	sp, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return &Producer{sp: sp, topic: topic, published: published}, nil
}

// PublishAssignment sends an assignment.recorded event. A nil Producer publishes nothing.
func (p *Producer) PublishAssignment(ctx context.Context, e domain.AssignmentRecorded) error {
	if p == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(FromDomain(e))
	if err != nil {
		return fmt.Errorf("encode assignment event: %w", err)
	}

	_, _, err = p.sp.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.ParcelID),
		Value: sarama.ByteEncoder(body),
	})
	p.count(err)
	if err != nil {
		return fmt.Errorf("send assignment event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying producer.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.sp.Close()
}

func (p *Producer) count(err error) {
	if p.published == nil {
		return
	}
	if err != nil {
		p.published.WithLabelValues("error").Inc()
		return
	}
	p.published.WithLabelValues("ok").Inc()
}
