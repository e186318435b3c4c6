package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lms-api/internal/domain"
)

// --- mocks ---

type mockProgressStore struct{ mock.Mock }

func (m *mockProgressStore) Upsert(ctx context.Context, email, courseID string, lessonID *string, updates map[string]interface{}, now time.Time) error {
	return m.Called(ctx, email, courseID, lessonID, updates, now).Error(0)
}
func (m *mockProgressStore) ListByUser(ctx context.Context, email, courseID string) ([]domain.ProgressRecord, error) {
	args := m.Called(ctx, email, courseID)
	if recs, _ := args.Get(0).([]domain.ProgressRecord); recs != nil {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProgressStore) ScanAll(ctx context.Context) ([]domain.ProgressRecord, error) {
	args := m.Called(ctx)
	if recs, _ := args.Get(0).([]domain.ProgressRecord); recs != nil {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context) ([]domain.LeaderboardEntry, bool) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]domain.LeaderboardEntry)
	return entries, args.Bool(1)
}
func (m *mockCache) Set(ctx context.Context, entries []domain.LeaderboardEntry) {
	m.Called(ctx, entries)
}

func newService(ps *mockProgressStore, cache LeaderboardCache) Service {
	return NewService(ServiceDeps{ProgressRepo: ps, Cache: cache})
}

func scorePtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }
func strPtr(s string) *string     { return &s }

// --- Upsert ---

func TestUpsert_OnlySuppliedFieldsAreSet(t *testing.T) {
	ps := &mockProgressStore{}
	ps.On("Upsert", mock.Anything, "a@x.com", "c1", strPtr("l1"),
		map[string]interface{}{"completed": true}, mock.Anything).Return(nil)

	svc := newService(ps, nil)
	err := svc.Upsert(context.Background(), "a@x.com", domain.UpsertProgressRequest{
		CourseID:  "c1",
		LessonID:  strPtr("l1"),
		Completed: boolPtr(true),
	})

	require.NoError(t, err)
	ps.AssertExpectations(t)
}

func TestUpsert_ScoreOnly_DoesNotTouchCompleted(t *testing.T) {
	ps := &mockProgressStore{}
	ps.On("Upsert", mock.Anything, "a@x.com", "c1", strPtr("l1"),
		map[string]interface{}{"score": 80.0}, mock.Anything).Return(nil)

	svc := newService(ps, nil)
	err := svc.Upsert(context.Background(), "a@x.com", domain.UpsertProgressRequest{
		CourseID: "c1",
		LessonID: strPtr("l1"),
		Score:    scorePtr(80),
	})

	require.NoError(t, err)
	ps.AssertExpectations(t)
}

func TestUpsert_NilLesson_IsCourseLevelProgress(t *testing.T) {
	ps := &mockProgressStore{}
	ps.On("Upsert", mock.Anything, "a@x.com", "c1", (*string)(nil),
		mock.Anything, mock.Anything).Return(nil)

	svc := newService(ps, nil)
	err := svc.Upsert(context.Background(), "a@x.com", domain.UpsertProgressRequest{
		CourseID:  "c1",
		Completed: boolPtr(true),
	})

	require.NoError(t, err)
	ps.AssertExpectations(t)
}

// --- Leaderboard ---

func TestLeaderboard_SumsPerIdentity_NilScoresAsZero(t *testing.T) {
	ps := &mockProgressStore{}
	ps.On("ScanAll", mock.Anything).Return([]domain.ProgressRecord{
		{UserEmail: "a@x.com", Score: scorePtr(10)},
		{UserEmail: "b@x.com", Score: scorePtr(30)},
		{UserEmail: "a@x.com", Score: scorePtr(5)},
		{UserEmail: "c@x.com", Score: nil},
	}, nil)

	svc := newService(ps, nil)
	entries, err := svc.Leaderboard(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.LeaderboardEntry{Email: "b@x.com", Score: 30}, entries[0])
	assert.Equal(t, domain.LeaderboardEntry{Email: "a@x.com", Score: 15}, entries[1])
}

func TestLeaderboard_TiesBreakByEmailAscending(t *testing.T) {
	ps := &mockProgressStore{}
	ps.On("ScanAll", mock.Anything).Return([]domain.ProgressRecord{
		{UserEmail: "z@x.com", Score: scorePtr(20)},
		{UserEmail: "a@x.com", Score: scorePtr(20)},
	}, nil)

	svc := newService(ps, nil)
	entries, err := svc.Leaderboard(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a@x.com", entries[0].Email)
	assert.Equal(t, "z@x.com", entries[1].Email)
}

func TestLeaderboard_NonPositiveLimit_BadRequest(t *testing.T) {
	svc := newService(&mockProgressStore{}, nil)

	_, err := svc.Leaderboard(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	_, err = svc.Leaderboard(context.Background(), -3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestLeaderboard_ReturnsAtMostLimit(t *testing.T) {
	ps := &mockProgressStore{}
	ps.On("ScanAll", mock.Anything).Return([]domain.ProgressRecord{
		{UserEmail: "a@x.com", Score: scorePtr(1)},
	}, nil)

	svc := newService(ps, nil)
	entries, err := svc.Leaderboard(context.Background(), 10)

	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLeaderboard_CacheHit_SkipsScan(t *testing.T) {
	ps := &mockProgressStore{}
	cache := &mockCache{}
	cache.On("Get", mock.Anything).Return([]domain.LeaderboardEntry{
		{Email: "b@x.com", Score: 30},
		{Email: "a@x.com", Score: 15},
	}, true)

	svc := newService(ps, cache)
	entries, err := svc.Leaderboard(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b@x.com", entries[0].Email)
	ps.AssertNotCalled(t, "ScanAll", mock.Anything)
}

func TestLeaderboard_CacheMiss_ComputesAndStoresFullBoard(t *testing.T) {
	ps := &mockProgressStore{}
	cache := &mockCache{}
	ps.On("ScanAll", mock.Anything).Return([]domain.ProgressRecord{
		{UserEmail: "a@x.com", Score: scorePtr(10)},
		{UserEmail: "b@x.com", Score: scorePtr(30)},
	}, nil)
	cache.On("Get", mock.Anything).Return(nil, false)
	cache.On("Set", mock.Anything, []domain.LeaderboardEntry{
		{Email: "b@x.com", Score: 30},
		{Email: "a@x.com", Score: 10},
	}).Return()

	svc := newService(ps, cache)
	entries, err := svc.Leaderboard(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	cache.AssertExpectations(t)
}

func TestLeaderboard_ScanFailurePropagates(t *testing.T) {
	ps := &mockProgressStore{}
	ps.On("ScanAll", mock.Anything).Return(nil, domain.ErrUnavailable)

	svc := newService(ps, nil)
	_, err := svc.Leaderboard(context.Background(), 10)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}
