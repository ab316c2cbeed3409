package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/algolend/loan-engine/internal/domain/model"
	"github.com/algolend/loan-engine/internal/domain/port"
	"github.com/algolend/loan-engine/internal/domain/valueobject"
	pkgpostgres "github.com/algolend/loan-engine/pkg/postgres"
)

// ScoreRunRepo implements port.ScoreRunRepository. Score runs are
// append-only: Save only ever inserts.
type ScoreRunRepo struct {
	pool *pgxpool.Pool
}

// NewScoreRunRepo creates a new repository backed by PostgreSQL.
func NewScoreRunRepo(pool *pgxpool.Pool) *ScoreRunRepo {
	return &ScoreRunRepo{pool: pool}
}

// Save inserts a new score-run row together with outbox entries for the
// run's domain events, in one transaction.
func (r *ScoreRunRepo) Save(ctx context.Context, run model.ScoreRun) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := insertScoreRun(ctx, tx, run); err != nil {
			return err
		}
		return storeOutboxEntries(ctx, tx, run.DomainEvents())
	})
}

func insertScoreRun(ctx context.Context, q pkgpostgres.Querier, run model.ScoreRun) error {
	breakdown, err := json.Marshal(run.Breakdown())
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}
	reasons, err := json.Marshal(run.Reasons())
	if err != nil {
		return fmt.Errorf("marshal reasons: %w", err)
	}

	query := `
		INSERT INTO score_runs (
			id, tenant_id, user_id, loan_application_id, snapshot_id,
			bureau_score, main_salary, engine_score, normalized_score,
			score_band, breakdown, score_reasons, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`
	_, err = q.Exec(ctx, query,
		run.ID(), run.TenantID(), run.UserID(),
		nullable(run.LoanApplicationID()), nullable(run.SnapshotID()),
		run.BureauScore(), run.MainSalary(),
		run.EngineScore(), run.NormalizedScore(),
		run.Band().String(), breakdown, reasons, run.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save score run: %w", err)
	}
	return nil
}

// FindByID retrieves a single score run.
func (r *ScoreRunRepo) FindByID(ctx context.Context, tenantID, id string) (model.ScoreRun, error) {
	query := scoreRunSelect + ` WHERE tenant_id = $1 AND id = $2`
	run, err := scanScoreRun(r.pool.QueryRow(ctx, query, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ScoreRun{}, port.ErrNotFound
	}
	return run, err
}

// FindByUserID retrieves a user's runs, newest first.
func (r *ScoreRunRepo) FindByUserID(ctx context.Context, tenantID, userID string, limit int) ([]model.ScoreRun, error) {
	query := scoreRunSelect + `
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, tenantID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query score runs: %w", err)
	}
	defer rows.Close()

	var result []model.ScoreRun
	for rows.Next() {
		run, err := scanScoreRun(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, run)
	}
	return result, rows.Err()
}

const scoreRunSelect = `
	SELECT id, tenant_id, user_id, loan_application_id, snapshot_id,
	       bureau_score, main_salary, engine_score, normalized_score,
	       score_band, breakdown, score_reasons, created_at
	FROM score_runs`

func scanScoreRun(s scannable) (model.ScoreRun, error) {
	var (
		id, tenantID, userID          string
		loanApplicationID, snapshotID *string
		bureauScore, mainSalary       float64
		engineScore, normalized       float64
		band                          string
		breakdownJSON, reasonsJSON    []byte
		createdAt                     time.Time
	)

	err := s.Scan(
		&id, &tenantID, &userID, &loanApplicationID, &snapshotID,
		&bureauScore, &mainSalary, &engineScore, &normalized,
		&band, &breakdownJSON, &reasonsJSON, &createdAt,
	)
	if err != nil {
		return model.ScoreRun{}, fmt.Errorf("scan score run: %w", err)
	}

	var breakdown map[string]float64
	if len(breakdownJSON) > 0 {
		if err := json.Unmarshal(breakdownJSON, &breakdown); err != nil {
			return model.ScoreRun{}, fmt.Errorf("unmarshal breakdown: %w", err)
		}
	}
	var reasons []string
	if len(reasonsJSON) > 0 {
		if err := json.Unmarshal(reasonsJSON, &reasons); err != nil {
			return model.ScoreRun{}, fmt.Errorf("unmarshal reasons: %w", err)
		}
	}

	return model.ReconstructScoreRun(
		id, tenantID, userID, deref(loanApplicationID), deref(snapshotID),
		bureauScore, mainSalary, engineScore, normalized,
		valueobject.ScoreBand(band), breakdown, reasons, createdAt,
	), nil
}
