package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/algolend/loan-engine/internal/application/dto"
	"github.com/algolend/loan-engine/internal/domain/event"
	"github.com/algolend/loan-engine/internal/domain/port"
	"github.com/algolend/loan-engine/internal/domain/service"
)

// ErrCollectionNotReady is returned while the aggregator is still assembling
// a collection; callers poll and retry.
var ErrCollectionNotReady = errors.New("bank data collection not ready")

// CaptureBankSnapshotUseCase retrieves a completed aggregator collection and
// stores it as an immutable snapshot.
type CaptureBankSnapshotUseCase struct {
	snapshotRepo port.SnapshotRepository
	bankData     port.BankDataClient
	publisher    port.EventPublisher
	extractor    *service.SalaryExtractor
}

// NewCaptureBankSnapshotUseCase wires dependencies.
func NewCaptureBankSnapshotUseCase(
	snapshotRepo port.SnapshotRepository,
	bankData port.BankDataClient,
	publisher port.EventPublisher,
) *CaptureBankSnapshotUseCase {
	return &CaptureBankSnapshotUseCase{
		snapshotRepo: snapshotRepo,
		bankData:     bankData,
		publisher:    publisher,
		extractor:    service.NewSalaryExtractor(),
	}
}

// Execute checks the collection's status, retrieves the statement once ready,
// and persists it as a new snapshot row. A re-capture of the same collection
// produces a new snapshot; existing rows are never mutated.
func (uc *CaptureBankSnapshotUseCase) Execute(
	ctx context.Context,
	req dto.CaptureBankSnapshotRequest,
) (dto.BankSnapshotResponse, error) {
	if req.CollectionID == "" {
		return dto.BankSnapshotResponse{}, fmt.Errorf("collection ID is required")
	}

	status, err := uc.bankData.CollectionStatus(ctx, req.CollectionID)
	if err != nil {
		return dto.BankSnapshotResponse{}, fmt.Errorf("collection status: %w", err)
	}
	if status != "completed" {
		return dto.BankSnapshotResponse{}, fmt.Errorf("%w: status %q", ErrCollectionNotReady, status)
	}

	snapshot, err := uc.bankData.RetrieveStatement(ctx, req.CollectionID)
	if err != nil {
		return dto.BankSnapshotResponse{}, fmt.Errorf("retrieve statement: %w", err)
	}

	snapshot.ID = uuid.New().String()
	snapshot.UserID = req.UserID
	snapshot.CollectionID = req.CollectionID
	snapshot.CapturedAt = time.Now().UTC()

	if err := uc.snapshotRepo.Save(ctx, req.TenantID, snapshot); err != nil {
		return dto.BankSnapshotResponse{}, fmt.Errorf("save snapshot: %w", err)
	}

	captured := event.NewBankSnapshotCaptured(
		snapshot.ID, req.TenantID, req.UserID, req.CollectionID, snapshot.MonthsCaptured(),
	)
	if err := uc.publisher.Publish(ctx, captured); err != nil {
		return dto.BankSnapshotResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.BankSnapshotResponse{
		ID:             snapshot.ID,
		UserID:         snapshot.UserID,
		CollectionID:   snapshot.CollectionID,
		MonthsCaptured: snapshot.MonthsCaptured(),
		MainSalary:     uc.extractor.ExtractMainSalary(&snapshot),
		CapturedAt:     snapshot.CapturedAt,
	}, nil
}
