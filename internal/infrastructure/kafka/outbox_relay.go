package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/algolend/loan-engine/pkg/events"
	pkgkafka "github.com/algolend/loan-engine/pkg/kafka"
)

const (
	relayInterval  = 10 * time.Second
	relayBatchSize = 100
)

// messageSender is the slice of pkg/kafka.Producer the relay needs.
type messageSender interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// OutboxRelay periodically drains unpublished outbox entries to Kafka. Use
// cases publish inline on the happy path; the relay re-sends whatever a
// crash or broker outage left behind. Delivery is at-least-once, with the
// event_id header available for consumer-side deduplication.
type OutboxRelay struct {
	outbox   events.OutboxRepository
	sender   messageSender
	topic    string
	interval time.Duration
	logger   *slog.Logger
}

// NewOutboxRelay creates a relay draining the outbox to the given topic.
func NewOutboxRelay(outbox events.OutboxRepository, sender messageSender, topic string, logger *slog.Logger) *OutboxRelay {
	if topic == "" {
		topic = DefaultTopic
	}
	return &OutboxRelay{
		outbox:   outbox,
		sender:   sender,
		topic:    topic,
		interval: relayInterval,
		logger:   logger,
	}
}

// Run drains the outbox on a fixed interval until ctx is cancelled.
func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Flush(ctx); err != nil {
				r.logger.Warn("outbox flush failed", "error", err)
			}
		}
	}
}

// Flush publishes one batch of unpublished entries and marks them delivered.
// Entries stay unpublished when the broker write fails, so the next flush
// picks them up again.
func (r *OutboxRelay) Flush(ctx context.Context) error {
	entries, err := r.outbox.FetchUnpublished(ctx, relayBatchSize)
	if err != nil {
		return fmt.Errorf("fetch unpublished: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, len(entries))
	ids := make([]string, len(entries))
	for i, entry := range entries {
		messages[i] = pkgkafka.Message{
			Key:   []byte(entry.AggregateID),
			Value: entry.Payload,
			Headers: map[string]string{
				"event_type": entry.EventType,
				"event_id":   entry.ID,
			},
		}
		ids[i] = entry.ID
	}

	if err := r.sender.Publish(ctx, r.topic, messages...); err != nil {
		return fmt.Errorf("publish outbox batch: %w", err)
	}
	if err := r.outbox.MarkPublished(ctx, ids); err != nil {
		return fmt.Errorf("mark published: %w", err)
	}

	r.logger.Debug("outbox batch relayed", "count", len(entries))
	return nil
}
