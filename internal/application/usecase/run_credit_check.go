package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/algolend/loan-engine/internal/application/dto"
	"github.com/algolend/loan-engine/internal/domain/model"
	"github.com/algolend/loan-engine/internal/domain/port"
	"github.com/algolend/loan-engine/internal/domain/service"
	"github.com/algolend/loan-engine/internal/domain/valueobject"
)

// RunCreditCheckUseCase orchestrates one scoring run: bureau pull, snapshot
// lookup, engine evaluation, run persistence, and (optionally) applying the
// advisory band to a loan application.
type RunCreditCheckUseCase struct {
	runRepo      port.ScoreRunRepository
	snapshotRepo port.SnapshotRepository
	appRepo      port.LoanApplicationRepository
	bureau       port.CreditBureauClient
	publisher    port.EventPublisher
	outbox       port.EventOutbox
	engine       *service.Engine
	extractor    *service.SalaryExtractor
	logger       *slog.Logger
}

// NewRunCreditCheckUseCase wires dependencies.
func NewRunCreditCheckUseCase(
	runRepo port.ScoreRunRepository,
	snapshotRepo port.SnapshotRepository,
	appRepo port.LoanApplicationRepository,
	bureau port.CreditBureauClient,
	publisher port.EventPublisher,
	outbox port.EventOutbox,
	logger *slog.Logger,
) *RunCreditCheckUseCase {
	return &RunCreditCheckUseCase{
		runRepo:      runRepo,
		snapshotRepo: snapshotRepo,
		appRepo:      appRepo,
		bureau:       bureau,
		publisher:    publisher,
		outbox:       outbox,
		engine:       service.NewEngine(),
		extractor:    service.NewSalaryExtractor(),
		logger:       logger,
	}
}

// Execute runs the engine for one borrower and persists the result as an
// append-only score run. Collaborator failures degrade the affected input to
// its neutral value instead of aborting: a missing snapshot or an unreachable
// bureau produces a best-effort partial score, never an error.
func (uc *RunCreditCheckUseCase) Execute(
	ctx context.Context,
	req dto.RunCreditCheckRequest,
) (dto.CreditCheckResponse, error) {
	now := time.Now().UTC()

	// 1. Build the normalized borrower profile.
	profile := uc.buildProfile(req)
	if err := profile.Validate(); err != nil {
		return dto.CreditCheckResponse{}, fmt.Errorf("validate profile: %w", err)
	}

	// 2. Pull the credit report. A bureau failure scores as a zero-value
	// report rather than blocking the borrower.
	report, err := uc.bureau.PullCreditReport(ctx, req.IdentityNumber, req.Surname, req.Forename)
	if err != nil {
		uc.logger.Warn("credit bureau pull failed, scoring without report",
			"user_id", req.UserID, "error", err)
		report = model.CreditReport{}
	}

	// 3. Load the latest bank snapshot. Absence is a valid state.
	var snapshot *model.BankSnapshot
	snapshotID := ""
	snap, err := uc.snapshotRepo.FindLatestByUserID(ctx, req.TenantID, req.UserID)
	switch {
	case err == nil:
		snapshot = &snap
		snapshotID = snap.ID
	case errors.Is(err, port.ErrNotFound):
		// snapshot-dependent factors score their neutral bucket
	default:
		return dto.CreditCheckResponse{}, fmt.Errorf("find snapshot: %w", err)
	}

	mainSalary := uc.extractor.ExtractMainSalary(snapshot)
	profile.GrossMonthlyIncome = mainSalary

	// 4. Evaluate.
	result := uc.engine.Evaluate(service.EngineInput{
		Profile:  profile,
		Report:   report,
		Snapshot: snapshot,
		Fingerprint: model.FingerprintFromRequestMeta(
			req.RemoteAddr, req.ForwardedFor, req.UserAgent, req.AcceptLanguage, now,
		),
	})

	// 5. Persist the run.
	run, err := model.NewScoreRun(
		req.TenantID, req.UserID, req.LoanApplicationID, snapshotID,
		report.Score, result.MainSalary,
		result.LoanEngineScore, result.LoanEngineScoreNormalized,
		result.Band, result.Breakdown.ContributionsByKey(), result.ScoreReasons,
		now,
	)
	if err != nil {
		return dto.CreditCheckResponse{}, fmt.Errorf("create score run: %w", err)
	}
	if err := uc.runRepo.Save(ctx, run); err != nil {
		return dto.CreditCheckResponse{}, fmt.Errorf("save score run: %w", err)
	}

	// 6. When tied to an application, apply the advisory band. The run is
	// already persisted at this point, so a decision failure (an application
	// that is already finalized, for instance) is reported on the response
	// instead of discarding the stored result.
	resp := dto.CreditCheckResponse{Run: toScoreRunResponse(run), Result: result}
	if req.LoanApplicationID != "" {
		if err := uc.decideApplication(ctx, req.TenantID, req.LoanApplicationID, run, result, now); err != nil {
			uc.logger.Warn("score band not applied to application",
				"application_id", req.LoanApplicationID,
				"run_id", run.ID(),
				"error", err,
			)
			resp.DecisionError = err.Error()
		}
	}

	// 7. Publish domain events and mark their outbox rows delivered.
	publishAndMark(ctx, uc.publisher, uc.outbox, uc.logger, run.DomainEvents())

	uc.logger.Info("credit check completed",
		"user_id", req.UserID,
		"run_id", run.ID(),
		"normalized_score", result.LoanEngineScoreNormalized,
		"band", result.Band.String(),
	)
	return resp, nil
}

func (uc *RunCreditCheckUseCase) decideApplication(
	ctx context.Context,
	tenantID, applicationID string,
	run model.ScoreRun,
	result service.EngineResult,
	now time.Time,
) error {
	app, err := uc.appRepo.FindByID(ctx, tenantID, applicationID)
	if err != nil {
		return fmt.Errorf("find application: %w", err)
	}
	if app.Status().Equal(valueobject.LoanApplicationStatusSubmitted) {
		if app, err = app.SubmitForReview(now); err != nil {
			return fmt.Errorf("submit for review: %w", err)
		}
	}
	app, err = app.ApplyScoreBand(result.Band, run.ID(), result.ScoreReasons, now)
	if err != nil {
		return fmt.Errorf("apply score band: %w", err)
	}
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	publishAndMark(ctx, uc.publisher, uc.outbox, uc.logger, app.DomainEvents())
	return nil
}

func (uc *RunCreditCheckUseCase) buildProfile(req dto.RunCreditCheckRequest) model.BorrowerProfile {
	var dob time.Time
	if req.DateOfBirth != "" {
		if parsed, err := time.Parse("2006-01-02", req.DateOfBirth); err == nil {
			dob = parsed
		}
	}

	var tenure *int
	if months, ok := valueobject.NormalizeYearsAtEmployer(req.YearsAtEmployer); ok {
		tenure = &months
	}

	return model.BorrowerProfile{
		IdentityNumber:     req.IdentityNumber,
		Surname:            req.Surname,
		Forename:           req.Forename,
		DateOfBirth:        dob,
		Address:            req.Address,
		MonthsInCurrentJob: tenure,
		ContractType:       valueobject.NormalizeContractType(req.ContractType),
		EmploymentSector:   valueobject.NormalizeEmploymentSector(req.EmploymentSector),
		EmployerName:       req.EmployerName,
		EmployerMatch:      valueobject.NormalizeEmployerMatch(req.EmployerMatch),
		IsNewBorrower:      model.ParseNewBorrowerFlag(req.NewBorrower),
	}
}

func toScoreRunResponse(run model.ScoreRun) dto.ScoreRunResponse {
	return dto.ScoreRunResponse{
		ID:                run.ID(),
		TenantID:          run.TenantID(),
		UserID:            run.UserID(),
		LoanApplicationID: run.LoanApplicationID(),
		SnapshotID:        run.SnapshotID(),
		CreditScore:       run.BureauScore(),
		MainSalary:        run.MainSalary(),
		EngineScore:       run.EngineScore(),
		EngineScoreMax:    service.TotalLoanEngineWeight,
		NormalizedScore:   run.NormalizedScore(),
		ScoreBand:         run.Band().String(),
		Breakdown:         run.Breakdown(),
		ScoreReasons:      run.Reasons(),
		CreatedAt:         run.CreatedAt(),
	}
}
