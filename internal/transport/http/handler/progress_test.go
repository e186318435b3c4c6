package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lms-api/internal/domain"
	"github.com/lms-api/internal/transport/http/middleware"
)

func ctxWithUser(ctx context.Context, u *domain.User) context.Context {
	return middleware.ContextWithSession(ctx, &domain.Session{
		SessionID: "s1", Email: u.Email, Token: "tok", User: u,
	})
}

type stubProgressService struct {
	upsertEmail string
	upsertReq   domain.UpsertProgressRequest
	upsertErr   error
	records     []domain.ProgressRecord
	board       []domain.LeaderboardEntry
	boardLimit  int
	boardErr    error
}

func (s *stubProgressService) Upsert(_ context.Context, email string, req domain.UpsertProgressRequest) error {
	s.upsertEmail = email
	s.upsertReq = req
	return s.upsertErr
}

func (s *stubProgressService) ListByUser(context.Context, string, string) ([]domain.ProgressRecord, error) {
	return s.records, nil
}

func (s *stubProgressService) Leaderboard(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	s.boardLimit = limit
	if s.boardErr != nil {
		return nil, s.boardErr
	}
	return s.board, nil
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(ctxWithUser(req.Context(), &domain.User{Email: "me@x.io", Role: domain.RoleStudent}))
}

func TestUpsertProgress_ForwardsCallerEmail(t *testing.T) {
	svc := &stubProgressService{}
	h := NewProgressHandler(svc)
	rec := httptest.NewRecorder()

	h.Upsert(rec, authedRequest(http.MethodPost, "/v1/progress",
		`{"course_id":"crs-1","lesson_id":"les-1","completed":true,"score":80}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "me@x.io", svc.upsertEmail)
	assert.Equal(t, "crs-1", svc.upsertReq.CourseID)
	require.NotNil(t, svc.upsertReq.Score)
	assert.Equal(t, 80.0, *svc.upsertReq.Score)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestUpsertProgress_MissingCourseIs400(t *testing.T) {
	h := NewProgressHandler(&stubProgressService{})
	rec := httptest.NewRecorder()

	h.Upsert(rec, authedRequest(http.MethodPost, "/v1/progress", `{"score":10}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertProgress_NoSessionIs401(t *testing.T) {
	h := NewProgressHandler(&stubProgressService{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/progress",
		strings.NewReader(`{"course_id":"crs-1"}`))

	h.Upsert(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLeaderboard_DefaultsLimit(t *testing.T) {
	svc := &stubProgressService{board: []domain.LeaderboardEntry{{Email: "b@x.io", Score: 30}}}
	h := NewProgressHandler(svc)
	rec := httptest.NewRecorder()

	h.Leaderboard(rec, authedRequest(http.MethodGet, "/v1/leaderboard", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, svc.boardLimit)

	var entries []domain.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "b@x.io", entries[0].Email)
}

func TestLeaderboard_NonIntegerLimitIs400(t *testing.T) {
	h := NewProgressHandler(&stubProgressService{})
	rec := httptest.NewRecorder()

	h.Leaderboard(rec, authedRequest(http.MethodGet, "/v1/leaderboard?limit=abc", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaderboard_NonPositiveLimitIs400(t *testing.T) {
	h := NewProgressHandler(&stubProgressService{
		boardErr: fmt.Errorf("leaderboard limit: %w", domain.ErrBadRequest),
	})
	rec := httptest.NewRecorder()

	h.Leaderboard(rec, authedRequest(http.MethodGet, "/v1/leaderboard?limit=0", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
