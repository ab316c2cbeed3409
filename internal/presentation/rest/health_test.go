package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }

func newTestMux(t *testing.T, db Pinger) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	NewHealthHandler(db, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(mux)
	return mux
}

func TestLiveness(t *testing.T) {
	mux := newTestMux(t, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"service":"loan-engine"`)
}

func TestReadinessWithHealthyDatabase(t *testing.T) {
	mux := newTestMux(t, stubPinger{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)
}

func TestReadinessWithUnreachableDatabase(t *testing.T) {
	mux := newTestMux(t, stubPinger{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"not ready"`)
}
