// Package broker publishes domain events to interested services.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Set of event types published by the service.
const (
	StatisticsChanged = "statistics.changed"
	MiningCompleted   = "mining.completed"
	MarketPurchased   = "market.purchased"
	WalletSent        = "wallet.sent"
)

// Event is the envelope of every published message.
type Event struct {
	Type string    `json:"type"`
	Key  string    `json:"key"`
	Date time.Time `json:"date"`
	Data any       `json:"data"`
}

// Publisher defines the behavior required to publish events.
type Publisher interface {
	Publish(ctx context.Context, eventType string, key string, data any) error
	Close() error
}

// =============================================================================

// Kafka publishes events to a kafka topic.
type Kafka struct {
	log    *zap.SugaredLogger
	writer *kafka.Writer
}

// NewKafka constructs a publisher writing to the topic on the brokers.
func NewKafka(log *zap.SugaredLogger, brokers []string, topic string) *Kafka {
	writer := kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		MaxAttempts:            3,
	}

	return &Kafka{
		log:    log,
		writer: &writer,
	}
}

// Publish writes the event keyed by the key, usually a user id.
func (k *Kafka) Publish(ctx context.Context, eventType string, key string, data any) error {
	evt := Event{
		Type: eventType,
		Key:  key,
		Date: time.Now().UTC(),
		Data: data,
	}

	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(eventType)},
		},
	}

	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		k.log.Errorw("broker", "status", "publish failed", "type", eventType, "ERROR", err)
		return fmt.Errorf("write message: %w", err)
	}

	return nil
}

// Close flushes pending messages and closes the writer.
func (k *Kafka) Close() error {
	return k.writer.Close()
}

// =============================================================================

// Nop drops every event. It is used when no brokers are configured.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(ctx context.Context, eventType string, key string, data any) error {
	return nil
}

// Close implements Publisher.
func (Nop) Close() error {
	return nil
}
