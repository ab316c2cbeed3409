package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/algolend/loan-engine/internal/domain/event"
	pkgkafka "github.com/algolend/loan-engine/pkg/kafka"
)

// DefaultTopic is the topic scoring events are published to.
const DefaultTopic = "loanengine.events"

// EventPublisher implements port.EventPublisher by writing events to Kafka.
type EventPublisher struct {
	producer *pkgkafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewEventPublisher creates a publisher targeting the given producer and topic.
func NewEventPublisher(producer *pkgkafka.Producer, topic string, logger *slog.Logger) *EventPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &EventPublisher{producer: producer, topic: topic, logger: logger}
}

// Publish serialises and sends domain events to Kafka.
func (p *EventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"tenant_id", evt.TenantID(),
			"topic", p.topic,
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
				"event_id":   evt.EventID(),
				"tenant_id":  evt.TenantID(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish events to topic %s: %w", p.topic, err)
	}
	return nil
}
