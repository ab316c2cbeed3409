package grpc

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/algolend/loan-engine/internal/application/usecase"
	"github.com/algolend/loan-engine/internal/domain/port"
	"github.com/algolend/loan-engine/internal/domain/valueobject"
	"github.com/algolend/loan-engine/pkg/auth"
)

// ScoringHandler exposes the scoring operations over gRPC.
type ScoringHandler struct {
	UnimplementedScoringServiceServer

	runCheck  *usecase.RunCreditCheckUseCase
	capture   *usecase.CaptureBankSnapshotUseCase
	getRun    *usecase.GetScoreRunUseCase
	listRuns  *usecase.ListScoreRunsUseCase
	submitApp *usecase.SubmitLoanApplicationUseCase
	getApp    *usecase.GetApplicationUseCase
}

// NewScoringHandler creates a new handler with all use-case dependencies.
func NewScoringHandler(
	runCheck *usecase.RunCreditCheckUseCase,
	capture *usecase.CaptureBankSnapshotUseCase,
	getRun *usecase.GetScoreRunUseCase,
	listRuns *usecase.ListScoreRunsUseCase,
	submitApp *usecase.SubmitLoanApplicationUseCase,
	getApp *usecase.GetApplicationUseCase,
) *ScoringHandler {
	return &ScoringHandler{
		runCheck:  runCheck,
		capture:   capture,
		getRun:    getRun,
		listRuns:  listRuns,
		submitApp: submitApp,
		getApp:    getApp,
	}
}

// RunCreditCheck pulls a bureau report, evaluates the latest bank snapshot and
// records a new scoring run.
func (h *ScoringHandler) RunCreditCheck(ctx context.Context, req *RunCreditCheckRequest) (*RunCreditCheckResponse, error) {
	in := *req
	fillIdentity(ctx, &in.TenantID, &in.UserID)
	fillTransportMeta(ctx, &in)

	resp, err := h.runCheck.Execute(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

// CaptureBankSnapshot retrieves a completed aggregator collection and stores
// it as an immutable snapshot.
func (h *ScoringHandler) CaptureBankSnapshot(ctx context.Context, req *CaptureBankSnapshotRequest) (*CaptureBankSnapshotResponse, error) {
	in := *req
	fillIdentity(ctx, &in.TenantID, &in.UserID)

	resp, err := h.capture.Execute(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

// GetScoreRun retrieves a scoring run by ID.
func (h *ScoringHandler) GetScoreRun(ctx context.Context, req *GetScoreRunRequest) (*GetScoreRunResponse, error) {
	in := *req
	fillIdentity(ctx, &in.TenantID, nil)

	resp, err := h.getRun.Execute(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

// ListScoreRuns lists a user's scoring runs, newest first.
func (h *ScoringHandler) ListScoreRuns(ctx context.Context, req *ListScoreRunsRequest) (*ListScoreRunsResponse, error) {
	in := *req
	fillIdentity(ctx, &in.TenantID, &in.UserID)

	runs, err := h.listRuns.Execute(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &ListScoreRunsResponse{Runs: runs}, nil
}

// SubmitApplication opens a new loan application.
func (h *ScoringHandler) SubmitApplication(ctx context.Context, req *SubmitApplicationRequest) (*SubmitApplicationResponse, error) {
	in := *req
	fillIdentity(ctx, &in.TenantID, &in.UserID)

	resp, err := h.submitApp.Execute(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

// GetApplication retrieves a loan application by ID.
func (h *ScoringHandler) GetApplication(ctx context.Context, req *GetApplicationRequest) (*GetApplicationResponse, error) {
	in := *req
	fillIdentity(ctx, &in.TenantID, nil)

	resp, err := h.getApp.Execute(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return &resp, nil
}

// fillIdentity backfills tenant and user from the authenticated claims.
// Claims always win for the tenant so a caller cannot read across tenants;
// the user is only filled when the request leaves it empty. userID may be
// nil for operations keyed by tenant alone.
func fillIdentity(ctx context.Context, tenantID, userID *string) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return
	}
	*tenantID = claims.TenantID.String()
	if userID != nil && *userID == "" {
		*userID = claims.UserID.String()
	}
}

// fillTransportMeta captures the caller's network address and client headers
// for the device fingerprint when the request body does not carry them.
func fillTransportMeta(ctx context.Context, in *RunCreditCheckRequest) {
	if in.RemoteAddr == "" {
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			in.RemoteAddr = p.Addr.String()
		}
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return
	}
	if in.ForwardedFor == "" {
		in.ForwardedFor = firstValue(md, "x-forwarded-for")
	}
	if in.UserAgent == "" {
		in.UserAgent = firstValue(md, "user-agent")
	}
	if in.AcceptLanguage == "" {
		in.AcceptLanguage = firstValue(md, "accept-language")
	}
}

func firstValue(md metadata.MD, key string) string {
	if vals := md.Get(key); len(vals) > 0 {
		return strings.TrimSpace(vals[0])
	}
	return ""
}

func toStatusError(err error) error {
	switch {
	case errors.Is(err, port.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, usecase.ErrCollectionNotReady),
		errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.InvalidArgument, err.Error())
	}
}
