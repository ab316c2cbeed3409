package usecase

import (
	"context"
	"log/slog"

	"github.com/algolend/loan-engine/internal/domain/event"
	"github.com/algolend/loan-engine/internal/domain/port"
)

// publishAndMark sends freshly committed events to the broker and marks
// their outbox rows as delivered. Failures are logged, not returned: the
// rows stay unpublished and the outbox relay re-sends them.
func publishAndMark(
	ctx context.Context,
	publisher port.EventPublisher,
	outbox port.EventOutbox,
	logger *slog.Logger,
	evts []event.DomainEvent,
) {
	if len(evts) == 0 {
		return
	}
	if err := publisher.Publish(ctx, evts...); err != nil {
		logger.Warn("event publish failed, outbox relay will retry", "error", err)
		return
	}

	ids := make([]string, len(evts))
	for i, evt := range evts {
		ids[i] = evt.EventID()
	}
	if err := outbox.MarkPublished(ctx, ids); err != nil {
		logger.Warn("failed to mark outbox entries published", "error", err)
	}
}
