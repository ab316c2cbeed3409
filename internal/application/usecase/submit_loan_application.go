package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/algolend/loan-engine/internal/application/dto"
	"github.com/algolend/loan-engine/internal/domain/model"
	"github.com/algolend/loan-engine/internal/domain/port"
)

// SubmitLoanApplicationUseCase opens a loan application. Scoring happens
// separately: a later credit-check run applies its advisory band to the
// application.
type SubmitLoanApplicationUseCase struct {
	appRepo   port.LoanApplicationRepository
	publisher port.EventPublisher
	outbox    port.EventOutbox
	logger    *slog.Logger
}

// NewSubmitLoanApplicationUseCase wires dependencies.
func NewSubmitLoanApplicationUseCase(
	appRepo port.LoanApplicationRepository,
	publisher port.EventPublisher,
	outbox port.EventOutbox,
	logger *slog.Logger,
) *SubmitLoanApplicationUseCase {
	return &SubmitLoanApplicationUseCase{
		appRepo:   appRepo,
		publisher: publisher,
		outbox:    outbox,
		logger:    logger,
	}
}

// Execute creates and persists a new application in SUBMITTED status.
func (uc *SubmitLoanApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitApplicationRequest,
) (dto.LoanApplicationResponse, error) {
	now := time.Now().UTC()

	app, err := model.NewLoanApplication(
		req.TenantID, req.UserID, req.RequestedAmount,
		req.Currency, req.TermMonths, req.Purpose, now,
	)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("create application: %w", err)
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	publishAndMark(ctx, uc.publisher, uc.outbox, uc.logger, app.DomainEvents())

	return toApplicationResponse(app), nil
}

// GetApplicationUseCase retrieves a loan application by ID.
type GetApplicationUseCase struct {
	appRepo port.LoanApplicationRepository
}

// NewGetApplicationUseCase wires dependencies.
func NewGetApplicationUseCase(appRepo port.LoanApplicationRepository) *GetApplicationUseCase {
	return &GetApplicationUseCase{appRepo: appRepo}
}

// Execute returns an application response for the given ID.
func (uc *GetApplicationUseCase) Execute(
	ctx context.Context,
	req dto.GetApplicationRequest,
) (dto.LoanApplicationResponse, error) {
	app, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	return toApplicationResponse(app), nil
}

func toApplicationResponse(app model.LoanApplication) dto.LoanApplicationResponse {
	return dto.LoanApplicationResponse{
		ID:              app.ID(),
		TenantID:        app.TenantID(),
		UserID:          app.UserID(),
		RequestedAmount: app.RequestedAmount(),
		Currency:        app.Currency(),
		TermMonths:      app.TermMonths(),
		Purpose:         app.Purpose(),
		Status:          app.Status().String(),
		DecisionReason:  app.DecisionReason(),
		ScoreRunID:      app.ScoreRunID(),
		CreatedAt:       app.CreatedAt(),
		UpdatedAt:       app.UpdatedAt(),
	}
}
