package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/algolend/loan-engine/internal/domain/model"
	"github.com/algolend/loan-engine/internal/domain/port"
	pkgpostgres "github.com/algolend/loan-engine/pkg/postgres"
)

// SnapshotRepo implements port.SnapshotRepository. Snapshots are immutable:
// Save only ever inserts, a re-capture produces a new row.
type SnapshotRepo struct {
	db pkgpostgres.Querier
}

// NewSnapshotRepo creates a new repository backed by PostgreSQL.
func NewSnapshotRepo(db pkgpostgres.Querier) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Save inserts a new snapshot row.
func (r *SnapshotRepo) Save(ctx context.Context, tenantID string, snapshot model.BankSnapshot) error {
	summary, err := json.Marshal(snapshot.SummaryData)
	if err != nil {
		return fmt.Errorf("marshal summary data: %w", err)
	}
	accounts, err := json.Marshal(snapshot.Accounts)
	if err != nil {
		return fmt.Errorf("marshal accounts: %w", err)
	}

	query := `
		INSERT INTO bank_snapshots (
			id, tenant_id, user_id, collection_id,
			summary_data, accounts, salary_total, captured_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	_, err = r.db.Exec(ctx, query,
		snapshot.ID, tenantID, snapshot.UserID, snapshot.CollectionID,
		summary, accounts, snapshot.SalaryTotal, snapshot.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// FindByID retrieves a single snapshot.
func (r *SnapshotRepo) FindByID(ctx context.Context, tenantID, id string) (model.BankSnapshot, error) {
	query := snapshotSelect + ` WHERE tenant_id = $1 AND id = $2`
	snap, err := scanSnapshot(r.db.QueryRow(ctx, query, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.BankSnapshot{}, port.ErrNotFound
	}
	return snap, err
}

// FindLatestByUserID retrieves the user's most recent snapshot.
func (r *SnapshotRepo) FindLatestByUserID(ctx context.Context, tenantID, userID string) (model.BankSnapshot, error) {
	query := snapshotSelect + `
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY captured_at DESC
		LIMIT 1
	`
	snap, err := scanSnapshot(r.db.QueryRow(ctx, query, tenantID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.BankSnapshot{}, port.ErrNotFound
	}
	return snap, err
}

const snapshotSelect = `
	SELECT id, user_id, collection_id, summary_data, accounts, salary_total, captured_at
	FROM bank_snapshots`

func scanSnapshot(s scannable) (model.BankSnapshot, error) {
	var (
		id, userID, collectionID  string
		summaryJSON, accountsJSON []byte
		salaryTotal               float64
		capturedAt                time.Time
	)

	err := s.Scan(&id, &userID, &collectionID, &summaryJSON, &accountsJSON, &salaryTotal, &capturedAt)
	if err != nil {
		return model.BankSnapshot{}, fmt.Errorf("scan snapshot: %w", err)
	}

	var summary []model.MonthlySummary
	if len(summaryJSON) > 0 {
		if err := json.Unmarshal(summaryJSON, &summary); err != nil {
			return model.BankSnapshot{}, fmt.Errorf("unmarshal summary data: %w", err)
		}
	}
	var accounts []model.BankAccountData
	if len(accountsJSON) > 0 {
		if err := json.Unmarshal(accountsJSON, &accounts); err != nil {
			return model.BankSnapshot{}, fmt.Errorf("unmarshal accounts: %w", err)
		}
	}

	return model.BankSnapshot{
		ID:           id,
		UserID:       userID,
		CollectionID: collectionID,
		SummaryData:  summary,
		Accounts:     accounts,
		SalaryTotal:  salaryTotal,
		CapturedAt:   capturedAt,
	}, nil
}
