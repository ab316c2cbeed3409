package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algolend/loan-engine/internal/application/dto"
	"github.com/algolend/loan-engine/internal/application/usecase"
	"github.com/algolend/loan-engine/internal/domain/model"
	"github.com/algolend/loan-engine/internal/domain/valueobject"
)

func savedRun(t *testing.T, userID string) model.ScoreRun {
	t.Helper()
	run, err := model.NewScoreRun(
		"tenant-1", userID, "", "snap-1",
		700, 42000, 72, 80, valueobject.BandAutoApprove,
		map[string]float64{"creditScore": 18.18}, nil,
		time.Now(),
	)
	require.NoError(t, err)
	return run
}

func TestGetScoreRun(t *testing.T) {
	runRepo := &mockScoreRunRepository{}
	run := savedRun(t, "user-1")
	require.NoError(t, runRepo.Save(context.Background(), run))

	uc := usecase.NewGetScoreRunUseCase(runRepo)

	resp, err := uc.Execute(context.Background(), dto.GetScoreRunRequest{
		TenantID: "tenant-1", RunID: run.ID(),
	})
	require.NoError(t, err)
	assert.Equal(t, run.ID(), resp.ID)
	assert.Equal(t, 80.0, resp.NormalizedScore)
	assert.Equal(t, "AUTO_APPROVE", resp.ScoreBand)

	_, err = uc.Execute(context.Background(), dto.GetScoreRunRequest{
		TenantID: "tenant-1", RunID: "missing",
	})
	assert.Error(t, err)
}

func TestListScoreRuns(t *testing.T) {
	runRepo := &mockScoreRunRepository{}
	for i := 0; i < 3; i++ {
		require.NoError(t, runRepo.Save(context.Background(), savedRun(t, "user-1")))
	}
	require.NoError(t, runRepo.Save(context.Background(), savedRun(t, "user-2")))

	uc := usecase.NewListScoreRunsUseCase(runRepo)

	runs, err := uc.Execute(context.Background(), dto.ListScoreRunsRequest{
		TenantID: "tenant-1", UserID: "user-1",
	})
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	limited, err := uc.Execute(context.Background(), dto.ListScoreRunsRequest{
		TenantID: "tenant-1", UserID: "user-1", Limit: 2,
	})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
