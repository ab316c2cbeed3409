package adapter

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algolend/loan-engine/internal/domain/model"
)

type fakeBureauTransport struct {
	failures int
	calls    int
	report   model.CreditReport
}

func (f *fakeBureauTransport) FetchCreditReport(_ context.Context, _, _, _ string) (model.CreditReport, error) {
	f.calls++
	if f.calls <= f.failures {
		return model.CreditReport{}, fmt.Errorf("502 bad gateway")
	}
	return f.report, nil
}

func TestPullCreditReportSimulated(t *testing.T) {
	a := NewCreditBureauAdapter(DefaultCreditBureauConfig(), nil)

	first, err := a.PullCreditReport(context.Background(), "9001015009087", "Dlamini", "Thandi")
	require.NoError(t, err)
	second, err := a.PullCreditReport(context.Background(), "9001015009087", "Dlamini", "Thandi")
	require.NoError(t, err)

	// simulated reports are deterministic per identity number
	assert.Equal(t, first.Score, second.Score)
	assert.GreaterOrEqual(t, first.Score, 300.0)
	assert.LessOrEqual(t, first.Score, 850.0)
	assert.GreaterOrEqual(t, first.RevolvingUtilization, 0.0)
	assert.Less(t, first.RevolvingUtilization, 1.0)

	other, err := a.PullCreditReport(context.Background(), "8505055009086", "Naidoo", "Pravin")
	require.NoError(t, err)
	assert.NotEqual(t, first.Score, other.Score)
}

func TestPullCreditReportRequiresIdentity(t *testing.T) {
	a := NewCreditBureauAdapter(DefaultCreditBureauConfig(), nil)
	_, err := a.PullCreditReport(context.Background(), "", "Dlamini", "Thandi")
	assert.Error(t, err)
}

func TestPullCreditReportRetriesTransientFailures(t *testing.T) {
	transport := &fakeBureauTransport{
		failures: 2,
		report:   model.CreditReport{Score: 712},
	}
	cfg := DefaultCreditBureauConfig()
	cfg.RetryBackoffMs = 1
	a := NewCreditBureauAdapter(cfg, transport)

	report, err := a.PullCreditReport(context.Background(), "9001015009087", "Dlamini", "Thandi")
	require.NoError(t, err)
	assert.Equal(t, 712.0, report.Score)
	assert.Equal(t, 3, transport.calls)
}

func TestPullCreditReportExhaustsRetries(t *testing.T) {
	transport := &fakeBureauTransport{failures: 10}
	cfg := DefaultCreditBureauConfig()
	cfg.MaxRetries = 2
	cfg.RetryBackoffMs = 1
	a := NewCreditBureauAdapter(cfg, transport)

	_, err := a.PullCreditReport(context.Background(), "9001015009087", "Dlamini", "Thandi")
	assert.ErrorContains(t, err, "exhausted 2 retries")
	assert.Equal(t, 3, transport.calls)
}
