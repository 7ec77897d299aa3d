package ticketing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

// TicketEvent is published to the sale audit stream after a purchase or
// cancellation commits. Consumers (analytics, reconciliation) are external.
type TicketEvent struct {
	Type         string    `json:"type"` // "ticket.purchased" or "ticket.refunded"
	TicketID     string    `json:"ticket_id"`
	TicketTypeID string    `json:"ticket_type_id"`
	UserID       string    `json:"user_id"`
	PriceCents   int       `json:"price_cents,omitempty"`
	Currency     string    `json:"currency,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

const (
	EventTicketPurchased = "ticket.purchased"
	EventTicketRefunded  = "ticket.refunded"
)

// EventPublisher publishes ticket lifecycle events. Implementations must be
// safe for concurrent use.
type EventPublisher interface {
	PublishTicketEvent(ctx context.Context, event *TicketEvent) error
	Close() error
}

// KafkaEventPublisher publishes ticket events to a Kafka topic, keyed by
// user so one user's events stay ordered within a partition.
type KafkaEventPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaEventPublisher(brokers []string, topic string) (*KafkaEventPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1
	cfg.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaEventPublisher{
		producer: producer,
		topic:    topic,
	}, nil
}

func (p *KafkaEventPublisher) PublishTicketEvent(ctx context.Context, event *TicketEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.UserID),
		Value: sarama.ByteEncoder(payload),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to publish ticket event: %w", err)
	}
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}
