package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lms-api/internal/domain"
)

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSessionStore) Delete(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestResolve_AttachesAccount(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	ss := &mockSessionStore{}
	ss.On("GetByToken", mock.Anything, "tok").Return(&domain.Session{
		SessionID: "s1", Email: "a@x.io", Token: "tok",
		ExpiresAt: t0.Add(time.Hour).Unix(),
	}, nil)
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "a@x.io").Return(&domain.User{Email: "a@x.io", Role: domain.RoleStudent}, nil)

	svc := NewService(ServiceDeps{SessionRepo: ss, UserRepo: us, Now: func() time.Time { return t0 }})
	sess, err := svc.Resolve(context.Background(), "tok")
	require.NoError(t, err)
	require.NotNil(t, sess.User)
	assert.Equal(t, "a@x.io", sess.User.Email)
}

func TestResolve_EmptyTokenIsUnauthorized(t *testing.T) {
	svc := NewService(ServiceDeps{SessionRepo: &mockSessionStore{}, UserRepo: &mockUserStore{}})
	_, err := svc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolve_UnknownTokenIsUnauthorized(t *testing.T) {
	ss := &mockSessionStore{}
	ss.On("GetByToken", mock.Anything, "nope").Return(nil, fmt.Errorf("session: %w", domain.ErrUnauthorized))

	svc := NewService(ServiceDeps{SessionRepo: ss, UserRepo: &mockUserStore{}})
	_, err := svc.Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolve_ExpiredSessionIsUnauthorized(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	ss := &mockSessionStore{}
	ss.On("GetByToken", mock.Anything, "tok").Return(&domain.Session{
		SessionID: "s1", Email: "a@x.io", Token: "tok",
		ExpiresAt: t0.Add(-time.Minute).Unix(),
	}, nil)
	us := &mockUserStore{}

	svc := NewService(ServiceDeps{SessionRepo: ss, UserRepo: us, Now: func() time.Time { return t0 }})
	_, err := svc.Resolve(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	us.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestLogout_DeletesSession(t *testing.T) {
	ss := &mockSessionStore{}
	ss.On("GetByToken", mock.Anything, "tok").Return(&domain.Session{SessionID: "s1", Token: "tok"}, nil)
	ss.On("Delete", mock.Anything, "s1").Return(nil)

	svc := NewService(ServiceDeps{SessionRepo: ss, UserRepo: &mockUserStore{}})
	require.NoError(t, svc.Logout(context.Background(), "tok"))
	ss.AssertExpectations(t)
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	ss := &mockSessionStore{}
	ss.On("GetByToken", mock.Anything, "gone").Return(nil, fmt.Errorf("session: %w", domain.ErrUnauthorized))

	svc := NewService(ServiceDeps{SessionRepo: ss, UserRepo: &mockUserStore{}})
	assert.NoError(t, svc.Logout(context.Background(), "gone"))
	ss.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
