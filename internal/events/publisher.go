package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TypeCartUpdated  = "cart.updated"
	TypeOrderCreated = "order.created"
)

// Envelope is the wire shape of every storefront event.
type Envelope struct {
	Type       string      `json:"type"`
	Key        string      `json:"key"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Publisher broadcasts storefront events. All publishes are best-effort:
// a failed broadcast is logged and dropped, it never blocks the caller.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload interface{})
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "storefront-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType, key string, payload interface{}) {
	env := Envelope{
		Type:       eventType,
		Key:        key,
		Payload:    payload,
		OccurredAt: time.Now(),
	}

	value, err := json.Marshal(env)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Printf("failed to publish %s event for key = %v: %v", eventType, key, err)
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, interface{}) {}

func (NopPublisher) Close() error { return nil }
