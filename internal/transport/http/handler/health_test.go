package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lms-api/internal/domain"
)

type stubPinger struct{ err error }

func (s *stubPinger) Ping(context.Context) error { return s.err }

func TestHealthPing_Pong(t *testing.T) {
	r := chi.NewRouter()
	h := NewHealthHandler(nil)
	r.Get("/v1/health-check/{action}", h.Ping)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health-check/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")
}

func TestHealthPing_UnknownActionIs400(t *testing.T) {
	r := chi.NewRouter()
	h := NewHealthHandler(nil)
	r.Get("/v1/health-check/{action}", h.Ping)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health-check/teapot", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthTest_ReportsStoreRoundTrip(t *testing.T) {
	h := NewHealthHandler(&stubPinger{})
	rec := httptest.NewRecorder()

	h.Test(rec, httptest.NewRequest(http.MethodGet, "/v1/test", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"store":"ok"`)
}

func TestHealthTest_StoreOutageIs503(t *testing.T) {
	h := NewHealthHandler(&stubPinger{
		err: fmt.Errorf("describe users table: %w", domain.ErrUnavailable),
	})
	rec := httptest.NewRecorder()

	h.Test(rec, httptest.NewRequest(http.MethodGet, "/v1/test", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"store":"error"`)
}

func TestHealthTest_NoStoreConfiguredStillLive(t *testing.T) {
	h := NewHealthHandler(nil)
	rec := httptest.NewRecorder()

	h.Test(rec, httptest.NewRequest(http.MethodGet, "/v1/test", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"store":"skipped"`)
}
