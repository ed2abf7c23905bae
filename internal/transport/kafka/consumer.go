package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"service-parcel/internal/logx"
	"service-parcel/internal/service/dispatch"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"
)

// HandleFunc processes a single dispatch.Event from Kafka.
type HandleFunc func(context.Context, dispatch.Event) error

var newConsumerGroup = sarama.NewConsumerGroup

// Consumer wraps a Sarama consumer group and dispatches events to a handler.
type Consumer struct {
	group    sarama.ConsumerGroup
	topic    string
	handler  HandleFunc
	logger   logx.Logger
	consumed *prometheus.CounterVec
	backoff  time.Duration
}

// ConsumerOption customizes a Consumer.
type ConsumerOption func(*Consumer)

// WithConsumedCounter counts every message by outcome.
func WithConsumedCounter(c *prometheus.CounterVec) ConsumerOption {
	return func(cn *Consumer) { cn.consumed = c }
}

// NewConsumer creates a consumer group reader. It returns (nil, nil) when Kafka is not configured.
func NewConsumer(logger logx.Logger, brokers []string, groupID, topic string, h HandleFunc, opts ...ConsumerOption) (*Consumer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logx.Nop()
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer group: %w", err)
	}

	c := &Consumer{
		group:   group,
		topic:   topic,
		handler: h,
		logger:  logger.With(logx.String("topic", topic), logx.String("group", groupID)),
		backoff: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Run consumes until ctx is done. Consume errors are logged and retried after a pause.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error", logx.Err(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff):
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close leaves the consumer group.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

func (c *Consumer) count(result string) {
	if c.consumed != nil {
		c.consumed.WithLabelValues(result).Inc()
	}
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim marks a message once it is handled or known to be unprocessable.
// A transient failure ends the claim without marking, so the message is redelivered.
func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		err := h.process(sess.Context(), msg)
		switch {
		case err == nil:
			h.c.count("handled")
			sess.MarkMessage(msg, "")
		case IsPermanent(err):
			h.c.count("skipped")
			h.c.logger.Warn("kafka message skipped",
				logx.Int64("offset", msg.Offset),
				logx.Err(err),
			)
			sess.MarkMessage(msg, "")
		default:
			h.c.count("failed")
			h.c.logger.Error("kafka handle failed, will retry",
				logx.Int64("offset", msg.Offset),
				logx.Err(err),
			)
			return err
		}
	}
	return nil
}

func (h *groupHandler) process(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var dto AssignmentEventDTO
	if err := json.Unmarshal(msg.Value, &dto); err != nil {
		return Permanent(fmt.Errorf("decode: %w", err))
	}
	if err := dto.Validate(); err != nil {
		return Permanent(fmt.Errorf("invalid event: %w", err))
	}
	return h.c.handler(ctx, ToDomain(dto))
}
