package submission

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lms-api/internal/domain"
	"github.com/lms-api/internal/infrastructure/ai"
)

// --- mocks ---

type mockSubmissionStore struct{ mock.Mock }

func (m *mockSubmissionStore) Put(ctx context.Context, s *domain.Submission) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockSubmissionStore) ListByUser(ctx context.Context, email string, limit int32) ([]domain.Submission, error) {
	args := m.Called(ctx, email, limit)
	if subs, _ := args.Get(0).([]domain.Submission); subs != nil {
		return subs, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTutor struct {
	mock.Mock
	configured bool
}

func (m *mockTutor) TutorConfigured() bool { return m.configured }
func (m *mockTutor) Chat(ctx context.Context, message, language string, history []ai.ChatMessage) (map[string]interface{}, error) {
	args := m.Called(ctx, message, language, history)
	if resp, _ := args.Get(0).(map[string]interface{}); resp != nil {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- tests ---

func TestSubmit_StoresFeedbackAndPlaceholderGrade(t *testing.T) {
	t0 := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	tutor := &mockTutor{configured: true}
	tutor.On("Chat", mock.Anything, mock.Anything, "en", mock.Anything).
		Return(map[string]interface{}{"response": "solid work"}, nil)

	store := &mockSubmissionStore{}
	var stored *domain.Submission
	store.On("Put", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.Submission)
	}).Return(nil)

	svc := NewService(ServiceDeps{
		SubmissionRepo: store, Tutor: tutor,
		Now: func() time.Time { return t0 },
	})
	sub, err := svc.Submit(context.Background(), "a@x.io", domain.CreateSubmissionRequest{
		AssignmentID: "hw-1", Content: "my essay",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, "a@x.io", sub.UserEmail)
	assert.Equal(t, "hw-1", sub.AssignmentID)
	require.NotNil(t, sub.Grade)
	assert.Equal(t, 90.0, *sub.Grade)
	require.NotNil(t, sub.Feedback)
	assert.Equal(t, "solid work", *sub.Feedback)
	assert.Equal(t, t0, sub.CreatedAt)
}

func TestSubmit_TutorFailureStillPersists(t *testing.T) {
	tutor := &mockTutor{configured: true}
	tutor.On("Chat", mock.Anything, mock.Anything, "en", mock.Anything).
		Return(nil, fmt.Errorf("tutor: %w", domain.ErrUpstream))

	store := &mockSubmissionStore{}
	store.On("Put", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(ServiceDeps{SubmissionRepo: store, Tutor: tutor})
	sub, err := svc.Submit(context.Background(), "a@x.io", domain.CreateSubmissionRequest{
		AssignmentID: "hw-1", Content: "essay",
	})
	require.NoError(t, err)
	assert.Nil(t, sub.Feedback)
	require.NotNil(t, sub.Grade)
	store.AssertExpectations(t)
}

func TestSubmit_UnconfiguredTutorSkipsChat(t *testing.T) {
	tutor := &mockTutor{configured: false}

	store := &mockSubmissionStore{}
	store.On("Put", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(ServiceDeps{SubmissionRepo: store, Tutor: tutor})
	sub, err := svc.Submit(context.Background(), "a@x.io", domain.CreateSubmissionRequest{
		AssignmentID: "hw-1", Content: "essay",
	})
	require.NoError(t, err)
	assert.Nil(t, sub.Feedback)
	tutor.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_StoreFailurePropagates(t *testing.T) {
	store := &mockSubmissionStore{}
	store.On("Put", mock.Anything, mock.Anything).Return(fmt.Errorf("put submission: %w", domain.ErrUnavailable))

	svc := NewService(ServiceDeps{SubmissionRepo: store})
	_, err := svc.Submit(context.Background(), "a@x.io", domain.CreateSubmissionRequest{
		AssignmentID: "hw-1", Content: "essay",
	})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
