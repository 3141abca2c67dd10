// README: Picker action events published to Kafka for analytics.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Action names the visitor action that produced an event.
type Action string

const (
	ActionSelect          Action = "select"
	ActionSetProvider     Action = "set_provider"
	ActionNearest         Action = "nearest"
	ActionNearestProvider Action = "nearest_provider"
	ActionReset           Action = "reset"
	ActionResetSelection  Action = "reset_selection"
)

// Event is the state after an action. Nothing reads these back into a
// session.
type Event struct {
	Action   Action    `json:"action"`
	Provider string    `json:"provider,omitempty"`
	Selected []string  `json:"selected,omitempty"`
	At       time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// MessageWriter is the part of *kafka.Writer we use, so tests can stub it.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		// WriteMessages returns immediately; delivery errors are dropped
		Async: true,
	}}
}

// NewKafkaPublisherWithWriter wraps an existing writer.
func NewKafkaPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	msg := kafka.Message{Key: []byte(e.Action), Value: data, Time: e.At}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publishing %s event: %w", e.Action, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	log.Println("closing kafka event writer")
	return p.writer.Close()
}
