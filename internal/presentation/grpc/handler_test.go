package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/algolend/loan-engine/internal/application/usecase"
	"github.com/algolend/loan-engine/internal/domain/model"
	"github.com/algolend/loan-engine/internal/domain/port"
	"github.com/algolend/loan-engine/internal/domain/valueobject"
	"github.com/algolend/loan-engine/pkg/auth"
)

type stubRunRepository struct {
	runs []model.ScoreRun
}

func (s *stubRunRepository) Save(_ context.Context, run model.ScoreRun) error {
	s.runs = append(s.runs, run)
	return nil
}

func (s *stubRunRepository) FindByID(_ context.Context, _, id string) (model.ScoreRun, error) {
	for _, run := range s.runs {
		if run.ID() == id {
			return run, nil
		}
	}
	return model.ScoreRun{}, port.ErrNotFound
}

func (s *stubRunRepository) FindByUserID(_ context.Context, _, userID string, limit int) ([]model.ScoreRun, error) {
	var out []model.ScoreRun
	for _, run := range s.runs {
		if run.UserID() == userID && len(out) < limit {
			out = append(out, run)
		}
	}
	return out, nil
}

func contextWithClaims(tenantID, userID uuid.UUID) context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.Claims{
		UserID:   userID,
		TenantID: tenantID,
	})
}

func TestGetScoreRunNotFoundMapsToStatus(t *testing.T) {
	handler := NewScoringHandler(nil, nil,
		usecase.NewGetScoreRunUseCase(&stubRunRepository{}),
		usecase.NewListScoreRunsUseCase(&stubRunRepository{}),
		nil, nil)

	_, err := handler.GetScoreRun(context.Background(), &GetScoreRunRequest{
		TenantID: "tenant-1",
		RunID:    "missing",
	})
	require.Error(t, err)

	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
}

func TestListScoreRunsUsesClaimsIdentity(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()

	repo := &stubRunRepository{}
	run, err := model.NewScoreRun(
		tenantID.String(), userID.String(), "", "",
		700, 42000, 80, 88.9,
		valueobject.BandAutoApprove,
		map[string]float64{"creditScore": 20},
		nil,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), run))

	handler := NewScoringHandler(nil, nil,
		usecase.NewGetScoreRunUseCase(repo),
		usecase.NewListScoreRunsUseCase(repo),
		nil, nil)

	// Tenant and user omitted from the request: both come from the claims.
	resp, err := handler.ListScoreRuns(contextWithClaims(tenantID, userID), &ListScoreRunsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Runs, 1)
	assert.Equal(t, run.ID(), resp.Runs[0].ID)
	assert.Equal(t, tenantID.String(), resp.Runs[0].TenantID)
}

func TestFillIdentityClaimsOverrideTenant(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	ctx := contextWithClaims(tenantID, userID)

	tenant := "spoofed-tenant"
	user := "caller-supplied-user"
	fillIdentity(ctx, &tenant, &user)

	assert.Equal(t, tenantID.String(), tenant)
	assert.Equal(t, "caller-supplied-user", user, "explicit user is kept")

	user = ""
	fillIdentity(ctx, &tenant, &user)
	assert.Equal(t, userID.String(), user, "empty user falls back to claims")
}

func TestFillTransportMetaFromIncomingMetadata(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		"x-forwarded-for", "203.0.113.9",
		"user-agent", "grpc-go/1.60",
		"accept-language", "en-ZA",
	))

	var in RunCreditCheckRequest
	fillTransportMeta(ctx, &in)

	assert.Equal(t, "203.0.113.9", in.ForwardedFor)
	assert.Equal(t, "grpc-go/1.60", in.UserAgent)
	assert.Equal(t, "en-ZA", in.AcceptLanguage)

	// Values already on the request are not overwritten.
	in.UserAgent = "browser"
	fillTransportMeta(ctx, &in)
	assert.Equal(t, "browser", in.UserAgent)
}

func TestToStatusError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"not found", port.ErrNotFound, codes.NotFound},
		{"collection not ready", usecase.ErrCollectionNotReady, codes.FailedPrecondition},
		{"invalid transition", valueobject.ErrInvalidStatusTransition, codes.FailedPrecondition},
		{"validation", errors.New("identity fields are required"), codes.InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok := status.FromError(toStatusError(tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.want, st.Code())
		})
	}
}
