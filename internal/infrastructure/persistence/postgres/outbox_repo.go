package postgres

import (
	"context"
	"fmt"

	"github.com/algolend/loan-engine/internal/domain/event"
	"github.com/algolend/loan-engine/pkg/events"
	pkgpostgres "github.com/algolend/loan-engine/pkg/postgres"
)

// OutboxRepo implements events.OutboxRepository. Entries are written in the
// same transaction as the aggregate that raised them; the Kafka relay marks
// them published once delivered.
type OutboxRepo struct {
	db pkgpostgres.Querier
}

var _ events.OutboxRepository = (*OutboxRepo)(nil)

// NewOutboxRepo creates a new repository backed by PostgreSQL.
func NewOutboxRepo(db pkgpostgres.Querier) *OutboxRepo {
	return &OutboxRepo{db: db}
}

// Store inserts the entries using the repository's querier. When that querier
// is a transaction, the entries commit or roll back with it.
func (r *OutboxRepo) Store(ctx context.Context, entries []events.OutboxEntry) error {
	query := `
		INSERT INTO outbox (id, aggregate_id, aggregate_type, event_type, payload, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	for _, entry := range entries {
		if _, err := r.db.Exec(ctx, query,
			entry.ID, entry.AggregateID, entry.AggregateType,
			entry.EventType, entry.Payload, entry.CreatedAt,
		); err != nil {
			return fmt.Errorf("store outbox entry: %w", err)
		}
	}
	return nil
}

// FetchUnpublished returns the oldest undelivered entries, up to batchSize.
func (r *OutboxRepo) FetchUnpublished(ctx context.Context, batchSize int) ([]events.OutboxEntry, error) {
	query := `
		SELECT id, aggregate_id, aggregate_type, event_type, payload, created_at, published_at
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, batchSize)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var entries []events.OutboxEntry
	for rows.Next() {
		var entry events.OutboxEntry
		if err := rows.Scan(
			&entry.ID, &entry.AggregateID, &entry.AggregateType,
			&entry.EventType, &entry.Payload, &entry.CreatedAt, &entry.PublishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// MarkPublished stamps the entries as delivered.
func (r *OutboxRepo) MarkPublished(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `UPDATE outbox SET published_at = now() WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}

// storeOutboxEntries converts freshly raised domain events into outbox rows
// on the caller's querier, so they share the aggregate's transaction.
func storeOutboxEntries(ctx context.Context, q pkgpostgres.Querier, evts []event.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}
	entries := make([]events.OutboxEntry, len(evts))
	for i, evt := range evts {
		entries[i] = events.NewOutboxEntry(evt)
	}
	return NewOutboxRepo(q).Store(ctx, entries)
}
