// Package kafka implements the outbound Notifier port on top of a Kafka
// topic. Each notification becomes one JSON message keyed by the order ID, so
// all events of an order land in the same partition in order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/IBM/sarama"
)

// notification is the wire envelope published for every order event.
type notification struct {
	Event       string         `json:"event"`
	OrderID     string         `json:"order_id"`
	RecipientID string         `json:"recipient_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// Notifier publishes order event notifications to a Kafka topic.
type Notifier struct {
	producer sarama.SyncProducer
	topic    string
}

// NewNotifier connects a synchronous producer to the given brokers.
func NewNotifier(brokers []string, topic string) (*Notifier, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return &Notifier{producer: producer, topic: topic}, nil
}

// Notify publishes one event. The send is synchronous; the caller decides
// whether a failure matters.
func (n *Notifier) Notify(
	_ context.Context,
	event ports.EventType,
	orderID, recipientID kernel.UUID,
	payload map[string]any,
) error {
	value, err := json.Marshal(notification{
		Event:       string(event),
		OrderID:     orderID.String(),
		RecipientID: recipientID.String(),
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(orderID.String()),
		Value: sarama.ByteEncoder(value),
	}
	if _, _, err := n.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("send notification to topic %s: %w", n.topic, err)
	}
	return nil
}

// Close shuts the underlying producer down.
func (n *Notifier) Close() error {
	return n.producer.Close()
}
