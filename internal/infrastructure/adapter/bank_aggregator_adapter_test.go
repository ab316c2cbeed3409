package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algolend/loan-engine/internal/domain/service"
)

func TestBankAggregatorSimulatedFlow(t *testing.T) {
	a := NewBankAggregatorAdapter(AggregatorConfig{}, nil)
	ctx := context.Background()

	collectionID, err := a.InitiateCollection(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, collectionID)

	status, err := a.CollectionStatus(ctx, collectionID)
	require.NoError(t, err)
	assert.Equal(t, "completed", status)

	snap, err := a.RetrieveStatement(ctx, collectionID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, snap.MonthsCaptured(), 3)
	assert.NotEmpty(t, snap.Transactions())

	// a simulated statement must satisfy the salary extractor
	salary := service.NewSalaryExtractor().ExtractMainSalary(&snap)
	assert.Greater(t, salary, 0.0)

	// deterministic per collection ID
	again, err := a.RetrieveStatement(ctx, collectionID)
	require.NoError(t, err)
	assert.Equal(t, snap.SummaryData, again.SummaryData)
}

func TestBankAggregatorValidation(t *testing.T) {
	a := NewBankAggregatorAdapter(AggregatorConfig{}, nil)
	ctx := context.Background()

	_, err := a.InitiateCollection(ctx, "")
	assert.Error(t, err)
	_, err = a.CollectionStatus(ctx, "")
	assert.Error(t, err)
	_, err = a.RetrieveStatement(ctx, "")
	assert.Error(t, err)
}
