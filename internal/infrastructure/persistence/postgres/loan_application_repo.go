package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/algolend/loan-engine/internal/domain/model"
	"github.com/algolend/loan-engine/internal/domain/port"
	"github.com/algolend/loan-engine/internal/domain/valueobject"
	pkgpostgres "github.com/algolend/loan-engine/pkg/postgres"
)

// LoanApplicationRepo implements port.LoanApplicationRepository.
type LoanApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewLoanApplicationRepo creates a new repository backed by PostgreSQL.
func NewLoanApplicationRepo(pool *pgxpool.Pool) *LoanApplicationRepo {
	return &LoanApplicationRepo{pool: pool}
}

// Save persists a loan application and outbox entries for its domain events
// in one transaction.
func (r *LoanApplicationRepo) Save(ctx context.Context, app model.LoanApplication) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := upsertApplication(ctx, tx, app); err != nil {
			return err
		}
		return storeOutboxEntries(ctx, tx, app.DomainEvents())
	})
}

// upsertApplication writes the application row (upsert by ID with optimistic
// locking on the version column).
func upsertApplication(ctx context.Context, q pkgpostgres.Querier, app model.LoanApplication) error {
	query := `
		INSERT INTO loan_applications (
			id, tenant_id, user_id, requested_amount, currency,
			term_months, purpose, status, decision_reason, score_run_id,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET
			status          = EXCLUDED.status,
			decision_reason = EXCLUDED.decision_reason,
			score_run_id    = EXCLUDED.score_run_id,
			version         = loan_applications.version + 1,
			updated_at      = EXCLUDED.updated_at
		WHERE loan_applications.version = $11
	`
	tag, err := q.Exec(ctx, query,
		app.ID(), app.TenantID(), app.UserID(),
		app.RequestedAmount(), app.Currency(),
		app.TermMonths(), app.Purpose(),
		app.Status().String(), app.DecisionReason(), nullable(app.ScoreRunID()),
		app.Version(), app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on loan application")
	}
	return nil
}

// FindByID retrieves a single loan application.
func (r *LoanApplicationRepo) FindByID(ctx context.Context, tenantID, id string) (model.LoanApplication, error) {
	query := applicationSelect + ` WHERE tenant_id = $1 AND id = $2`
	app, err := scanApplication(r.pool.QueryRow(ctx, query, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.LoanApplication{}, port.ErrNotFound
	}
	return app, err
}

// FindByUserID retrieves all applications for a given user.
func (r *LoanApplicationRepo) FindByUserID(ctx context.Context, tenantID, userID string) ([]model.LoanApplication, error) {
	query := applicationSelect + `
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("query loan applications: %w", err)
	}
	defer rows.Close()

	var result []model.LoanApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

const applicationSelect = `
	SELECT id, tenant_id, user_id, requested_amount, currency,
	       term_months, purpose, status, decision_reason, score_run_id,
	       version, created_at, updated_at
	FROM loan_applications`

func scanApplication(s scannable) (model.LoanApplication, error) {
	var (
		id, tenantID, userID string
		requestedAmount      decimal.Decimal
		currency             string
		termMonths           int
		purpose, statusStr   string
		decisionReason       string
		scoreRunID           *string
		version              int
		createdAt, updatedAt time.Time
	)

	err := s.Scan(
		&id, &tenantID, &userID,
		&requestedAmount, &currency,
		&termMonths, &purpose,
		&statusStr, &decisionReason, &scoreRunID,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("scan loan application: %w", err)
	}

	status, err := valueobject.NewLoanApplicationStatus(statusStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("parse status: %w", err)
	}

	return model.ReconstructLoanApplication(
		id, tenantID, userID,
		requestedAmount, currency,
		termMonths, purpose,
		status, decisionReason, deref(scoreRunID),
		version, createdAt, updatedAt,
	), nil
}
