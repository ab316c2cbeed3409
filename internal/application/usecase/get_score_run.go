package usecase

import (
	"context"
	"fmt"

	"github.com/algolend/loan-engine/internal/application/dto"
	"github.com/algolend/loan-engine/internal/domain/port"
)

// GetScoreRunUseCase retrieves one scoring run by ID.
type GetScoreRunUseCase struct {
	runRepo port.ScoreRunRepository
}

// NewGetScoreRunUseCase wires dependencies.
func NewGetScoreRunUseCase(runRepo port.ScoreRunRepository) *GetScoreRunUseCase {
	return &GetScoreRunUseCase{runRepo: runRepo}
}

// Execute returns the run response for the given ID.
func (uc *GetScoreRunUseCase) Execute(
	ctx context.Context,
	req dto.GetScoreRunRequest,
) (dto.ScoreRunResponse, error) {
	run, err := uc.runRepo.FindByID(ctx, req.TenantID, req.RunID)
	if err != nil {
		return dto.ScoreRunResponse{}, fmt.Errorf("find score run: %w", err)
	}
	return toScoreRunResponse(run), nil
}

// ListScoreRunsUseCase lists a user's scoring runs, newest first.
type ListScoreRunsUseCase struct {
	runRepo port.ScoreRunRepository
}

// NewListScoreRunsUseCase wires dependencies.
func NewListScoreRunsUseCase(runRepo port.ScoreRunRepository) *ListScoreRunsUseCase {
	return &ListScoreRunsUseCase{runRepo: runRepo}
}

// defaultListLimit bounds unpaginated listing requests.
const defaultListLimit = 20

// Execute returns the user's runs, newest first.
func (uc *ListScoreRunsUseCase) Execute(
	ctx context.Context,
	req dto.ListScoreRunsRequest,
) ([]dto.ScoreRunResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	runs, err := uc.runRepo.FindByUserID(ctx, req.TenantID, req.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("list score runs: %w", err)
	}
	out := make([]dto.ScoreRunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, toScoreRunResponse(run))
	}
	return out, nil
}
