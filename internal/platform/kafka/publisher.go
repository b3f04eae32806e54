// Package kafka publishes catalog events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/food-delivery-api/internal/config"
	"github.com/phrazzld/food-delivery-api/internal/events"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher is an events.EventHandler that writes each catalog event as a
// JSON message keyed by restaurant ID, so all changes to one restaurant land
// on the same partition in order.
type Publisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

var _ events.EventHandler = (*Publisher)(nil)

// NewWriter builds a kafka.Writer for cfg.
func NewWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
	}
}

// NewPublisher creates a Publisher writing to cfg.Topic on cfg.Brokers.
func NewPublisher(cfg config.KafkaConfig, logger *slog.Logger) *Publisher {
	return newPublisher(NewWriter(cfg), cfg.Topic, logger)
}

func newPublisher(w messageWriter, topic string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		writer: w,
		topic:  topic,
		logger: logger.With("component", "kafka_publisher", "topic", topic),
	}
}

// HandleEvent implements events.EventHandler.
func (p *Publisher) HandleEvent(ctx context.Context, event *events.CatalogEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.RestaurantID),
		Value: value,
		Time:  event.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID.String())},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish event",
			"error", err,
			"event_id", event.ID,
			"event_type", event.Type)
		return fmt.Errorf("failed to publish event %s: %w", event.ID, err)
	}

	p.logger.Debug("event published", "event_id", event.ID, "event_type", event.Type)
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
