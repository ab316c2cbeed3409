package port

import (
	"context"
	"errors"

	"github.com/algolend/loan-engine/internal/domain/event"
	"github.com/algolend/loan-engine/internal/domain/model"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ScoreRunRepository persists and retrieves scoring runs. Runs are
// append-only; there is no update operation.
type ScoreRunRepository interface {
	Save(ctx context.Context, run model.ScoreRun) error
	FindByID(ctx context.Context, tenantID, id string) (model.ScoreRun, error)
	FindByUserID(ctx context.Context, tenantID, userID string, limit int) ([]model.ScoreRun, error)
}

// SnapshotRepository persists and retrieves immutable bank snapshots.
type SnapshotRepository interface {
	Save(ctx context.Context, tenantID string, snapshot model.BankSnapshot) error
	FindByID(ctx context.Context, tenantID, id string) (model.BankSnapshot, error)
	FindLatestByUserID(ctx context.Context, tenantID, userID string) (model.BankSnapshot, error)
}

// LoanApplicationRepository persists and retrieves loan applications.
type LoanApplicationRepository interface {
	Save(ctx context.Context, app model.LoanApplication) error
	FindByID(ctx context.Context, tenantID, id string) (model.LoanApplication, error)
	FindByUserID(ctx context.Context, tenantID, userID string) ([]model.LoanApplication, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// EventOutbox marks stored outbox rows as delivered. The repositories write
// the rows in the same transaction as the aggregate; anything left unmarked
// is re-sent by the outbox relay.
type EventOutbox interface {
	MarkPublished(ctx context.Context, eventIDs []string) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// CreditBureauClient pulls a borrower's credit report from an external
// bureau. Implementations own retry and timeout policy; the scoring core
// only ever sees the fetched report or an error.
type CreditBureauClient interface {
	PullCreditReport(ctx context.Context, identityNumber, surname, forename string) (model.CreditReport, error)
}

// BankDataClient talks to the external bank-data aggregator. Collections are
// asynchronous on the aggregator side: callers initiate one, poll its status,
// and retrieve the statement once it is ready.
type BankDataClient interface {
	InitiateCollection(ctx context.Context, userID string) (collectionID string, err error)
	CollectionStatus(ctx context.Context, collectionID string) (status string, err error)
	RetrieveStatement(ctx context.Context, collectionID string) (model.BankSnapshot, error)
}
