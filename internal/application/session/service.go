package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lms-api/internal/domain"
)

type SessionStore interface {
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

type UserStore interface {
	Get(ctx context.Context, email string) (*domain.User, error)
}

type Service interface {
	// Resolve looks up the session behind an opaque bearer token, rejects
	// expired ones and attaches the account. Used both by the auth
	// middleware and the GET /sessions endpoint.
	Resolve(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
}

type ServiceDeps struct {
	SessionRepo SessionStore
	UserRepo    UserStore
	Now         func() time.Time // nil means time.Now
}

type service struct {
	sessionRepo SessionStore
	userRepo    UserStore
	now         func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		sessionRepo: deps.SessionRepo,
		userRepo:    deps.UserRepo,
		now:         now,
	}
}

func (s *service) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("resolve session: %w", domain.ErrUnauthorized)
	}
	sess, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess.Expired(s.now()) {
		return nil, fmt.Errorf("session expired: %w", domain.ErrUnauthorized)
	}
	u, err := s.userRepo.Get(ctx, sess.Email)
	if err != nil {
		return nil, err
	}
	sess.User = u
	return sess, nil
}

// Logout deletes the session behind the token. An unknown or already
// expired token is not an error: the end state is the same.
func (s *service) Logout(ctx context.Context, token string) error {
	sess, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil
		}
		return err
	}
	return s.sessionRepo.Delete(ctx, sess.SessionID)
}
