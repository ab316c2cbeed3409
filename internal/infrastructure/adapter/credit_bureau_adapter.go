package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"

	"github.com/algolend/loan-engine/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Credit bureau adapter – structured for real integration
// ---------------------------------------------------------------------------

// CreditBureauConfig holds configuration for the credit bureau adapter.
type CreditBureauConfig struct {
	// BaseURL is the base URL for the bureau API.
	BaseURL string
	// APIKey is the authentication credential for the bureau API.
	APIKey string
	// TimeoutSeconds is the HTTP client timeout.
	TimeoutSeconds int
	// MaxRetries is the maximum number of retry attempts on transient failures.
	MaxRetries int
	// RetryBackoffMs is the base backoff duration in milliseconds between retries.
	RetryBackoffMs int
}

// DefaultCreditBureauConfig returns sensible defaults for development.
func DefaultCreditBureauConfig() CreditBureauConfig {
	return CreditBureauConfig{
		TimeoutSeconds: 10,
		MaxRetries:     3,
		RetryBackoffMs: 200,
	}
}

// BureauHTTPClient defines the transport used to reach the bureau API.
// Testing swaps in a mock implementation.
type BureauHTTPClient interface {
	FetchCreditReport(ctx context.Context, identityNumber, surname, forename string) (model.CreditReport, error)
}

// CreditBureauAdapter implements port.CreditBureauClient. With a real
// transport it calls the bureau API with exponential-backoff retries;
// without one it returns deterministic simulated reports, suitable for
// development and testing.
type CreditBureauAdapter struct {
	config CreditBureauConfig
	client BureauHTTPClient // nil = simulated responses
}

// NewCreditBureauAdapter creates a new adapter with the given configuration.
func NewCreditBureauAdapter(config CreditBureauConfig, client BureauHTTPClient) *CreditBureauAdapter {
	return &CreditBureauAdapter{config: config, client: client}
}

// PullCreditReport retrieves the borrower's credit report.
func (a *CreditBureauAdapter) PullCreditReport(ctx context.Context, identityNumber, surname, forename string) (model.CreditReport, error) {
	if identityNumber == "" {
		return model.CreditReport{}, fmt.Errorf("identity number is required")
	}

	if a.client != nil {
		report, err := a.fetchWithRetry(ctx, identityNumber, surname, forename)
		if err != nil {
			return model.CreditReport{}, fmt.Errorf("credit bureau request failed: %w", err)
		}
		return report, nil
	}

	return a.simulateReport(identityNumber), nil
}

// fetchWithRetry calls the bureau API with exponential backoff and jitter.
func (a *CreditBureauAdapter) fetchWithRetry(ctx context.Context, identityNumber, surname, forename string) (model.CreditReport, error) {
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(a.config.RetryBackoffMs) * time.Millisecond * (1 << uint(attempt-1))
			jitter := time.Duration(rand.Int63n(int64(backoff)/2 + 1))
			select {
			case <-ctx.Done():
				return model.CreditReport{}, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		report, err := a.client.FetchCreditReport(ctx, identityNumber, surname, forename)
		if err == nil {
			return report, nil
		}
		lastErr = err
	}

	return model.CreditReport{}, fmt.Errorf("exhausted %d retries: %w", a.config.MaxRetries, lastErr)
}

// simulateReport derives a reproducible report from the identity number hash,
// so test scenarios are repeatable.
func (a *CreditBureauAdapter) simulateReport(identityNumber string) model.CreditReport {
	h := sha256.Sum256([]byte(identityNumber))

	score := 300 + float64(binary.BigEndian.Uint32(h[:4])%551)
	accountCount := 1 + int(binary.BigEndian.Uint16(h[4:6])%20)
	adverse := 0
	if score < 550 {
		adverse = int(binary.BigEndian.Uint16(h[6:8]) % 3)
	}

	limit := 20000 + float64(binary.BigEndian.Uint32(h[8:12])%480000)
	balance := limit * float64(binary.BigEndian.Uint16(h[12:14])%90) / 100

	return model.CreditReport{
		Score:                score,
		RevolvingUtilization: balance / limit,
		AccountSummary: model.AccountSummary{
			TotalBalance:            balance,
			TotalCreditLimit:        limit,
			TotalMonthlyInstalments: balance / 36,
			RevolvingBalance:        balance,
			RevolvingLimit:          limit,
			AdverseAccounts:         adverse,
			AccountsInBadStanding:   adverse,
		},
		EmploymentHistory: []model.EmployerRecord{
			{EmployerName: fmt.Sprintf("Employer %d", accountCount), ReportedAt: time.Now().AddDate(-1, 0, 0)},
		},
		RetrievedAt: time.Now().UTC(),
	}
}
