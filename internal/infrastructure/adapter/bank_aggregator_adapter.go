package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/algolend/loan-engine/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Bank-data aggregator adapter
// ---------------------------------------------------------------------------

// AggregatorConfig holds configuration for the bank-data aggregator adapter.
type AggregatorConfig struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

// AggregatorHTTPClient defines the transport used to reach the aggregator
// API. Collections are asynchronous on the aggregator side.
type AggregatorHTTPClient interface {
	CreateCollection(ctx context.Context, userID string) (string, error)
	GetCollectionStatus(ctx context.Context, collectionID string) (string, error)
	GetStatement(ctx context.Context, collectionID string) (model.BankSnapshot, error)
}

// BankAggregatorAdapter implements port.BankDataClient. With a real transport
// it proxies the aggregator API; without one it serves deterministic
// simulated statements keyed off the collection ID.
type BankAggregatorAdapter struct {
	config AggregatorConfig
	client AggregatorHTTPClient // nil = simulated responses
}

// NewBankAggregatorAdapter creates a new adapter with the given configuration.
func NewBankAggregatorAdapter(config AggregatorConfig, client AggregatorHTTPClient) *BankAggregatorAdapter {
	return &BankAggregatorAdapter{config: config, client: client}
}

// InitiateCollection starts a new collection for the user.
func (a *BankAggregatorAdapter) InitiateCollection(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user ID is required")
	}
	if a.client != nil {
		return a.client.CreateCollection(ctx, userID)
	}
	return uuid.New().String(), nil
}

// CollectionStatus reports the collection's aggregator-side state.
func (a *BankAggregatorAdapter) CollectionStatus(ctx context.Context, collectionID string) (string, error) {
	if collectionID == "" {
		return "", fmt.Errorf("collection ID is required")
	}
	if a.client != nil {
		return a.client.GetCollectionStatus(ctx, collectionID)
	}
	return "completed", nil
}

// RetrieveStatement fetches the statement for a completed collection.
func (a *BankAggregatorAdapter) RetrieveStatement(ctx context.Context, collectionID string) (model.BankSnapshot, error) {
	if collectionID == "" {
		return model.BankSnapshot{}, fmt.Errorf("collection ID is required")
	}
	if a.client != nil {
		return a.client.GetStatement(ctx, collectionID)
	}
	return a.simulateStatement(collectionID), nil
}

// simulateStatement builds a reproducible three-to-six-month statement from
// the collection ID hash.
func (a *BankAggregatorAdapter) simulateStatement(collectionID string) model.BankSnapshot {
	h := sha256.Sum256([]byte(collectionID))

	months := 3 + int(h[0]%4)
	salary := 8000 + float64(binary.BigEndian.Uint32(h[1:5])%52000)

	now := time.Now().UTC()
	summaries := make([]model.MonthlySummary, 0, months)
	txns := make([]model.BankTransaction, 0, months*2)
	for i := months; i > 0; i-- {
		month := now.AddDate(0, -i, 0)
		summaries = append(summaries, model.MonthlySummary{
			Month:         month.Format("2006-01"),
			MainIncome:    salary,
			TotalIncome:   salary * 1.1,
			TotalExpenses: salary * 0.8,
		})
		txns = append(txns,
			model.BankTransaction{
				Description: "EMPLOYER SALARY",
				CategoryTwo: "Income", CategoryThree: "Salary",
				Type: "credit", Amount: salary,
				Date: month.Format("2006-01-02"),
			},
			model.BankTransaction{
				Description: "DEBIT ORDER",
				Type:        "debit", Amount: salary * 0.3,
				Date: month.Format("2006-01-02"),
			},
		)
	}

	return model.BankSnapshot{
		SummaryData: summaries,
		Accounts:    []model.BankAccountData{{AccountID: "sim-account", Transactions: txns}},
		SalaryTotal: salary * float64(months),
	}
}
