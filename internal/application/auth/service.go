package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lms-api/internal/domain"
	"github.com/lms-api/internal/pkg/code"
	"github.com/lms-api/internal/pkg/id"
	pkgtoken "github.com/lms-api/internal/pkg/token"
)

const codeWidth = 6

type RequestOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RequestOTPResult struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// OTPStore is the one-time-code persistence the service depends on.
type OTPStore interface {
	Put(ctx context.Context, c *domain.OneTimeCode) error
	ListByEmail(ctx context.Context, email string) ([]domain.OneTimeCode, error)
	Consume(ctx context.Context, otpID string) error
}

// SessionStore persists issued sessions.
type SessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
}

// UserStore covers the lazy account creation and delivery-channel lookup.
type UserStore interface {
	Get(ctx context.Context, email string) (*domain.User, error)
	EnsureExists(ctx context.Context, u *domain.User) error
}

// Mailer delivers the code by email.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// SMSSender delivers the code by SMS when the account has a phone on file.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type Service interface {
	RequestOTP(ctx context.Context, req RequestOTPRequest) (*RequestOTPResult, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (string, error)
}

// ServiceDeps wires the auth service. Mailer and SMSSender may be nil;
// delivery is best-effort and the code is always returned to the caller.
type ServiceDeps struct {
	OTPRepo     OTPStore
	SessionRepo SessionStore
	UserRepo    UserStore
	Mailer      Mailer
	SMSSender   SMSSender
	OTPValidity time.Duration
	SessionTTL  time.Duration
	Now         func() time.Time // nil means time.Now
}

type service struct {
	otpRepo     OTPStore
	sessionRepo SessionStore
	userRepo    UserStore
	mailer      Mailer
	smsSender   SMSSender
	otpValidity time.Duration
	sessionTTL  time.Duration
	now         func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		otpRepo:     deps.OTPRepo,
		sessionRepo: deps.SessionRepo,
		userRepo:    deps.UserRepo,
		mailer:      deps.Mailer,
		smsSender:   deps.SMSSender,
		otpValidity: deps.OTPValidity,
		sessionTTL:  deps.SessionTTL,
		now:         now,
	}
}

// RequestOTP issues a fresh one-time code for the email. Earlier unexpired
// codes stay valid — issuance never invalidates them. Delivery is a side
// channel: failures are logged, never surfaced, and the code is returned in
// the result either way.
func (s *service) RequestOTP(ctx context.Context, req RequestOTPRequest) (*RequestOTPResult, error) {
	c, err := code.Numeric(codeWidth)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	expiresAt := now.Add(s.otpValidity)
	otp := &domain.OneTimeCode{
		OTPID:     id.New(),
		Email:     req.Email,
		Code:      c,
		ExpiresAt: expiresAt.Unix(),
		Consumed:  false,
		CreatedAt: now,
	}
	if err := s.otpRepo.Put(ctx, otp); err != nil {
		return nil, err
	}

	s.deliver(ctx, req.Email, c)

	return &RequestOTPResult{Email: req.Email, Code: c, ExpiresAt: expiresAt}, nil
}

func (s *service) deliver(ctx context.Context, email, c string) {
	if s.mailer != nil {
		if err := s.mailer.SendEmail(email, "Your login code", "Your one-time code: "+c); err != nil {
			slog.Warn("failed to email one-time code", "email", email, "err", err)
		}
	}
	if s.smsSender == nil {
		return
	}
	u, err := s.userRepo.Get(ctx, email)
	if err != nil || u.Phone == nil {
		return
	}
	if err := s.smsSender.SendSMS(ctx, *u.Phone, "Your one-time code: "+c); err != nil {
		slog.Warn("failed to SMS one-time code", "email", email, "err", err)
	}
}

// VerifyOTP validates the presented code against stored, unexpired,
// unconsumed codes for the email. The match is exact string equality on the
// presented value, so verification racing a newer issuance is harmless. On
// success the matched code is consumed atomically, a session is created and
// the account is lazily ensured. Failure leaves no partial state: no
// session, no account.
func (s *service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (string, error) {
	candidates, err := s.otpRepo.ListByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	matched := false
	consumed := false
	var expiredMatch bool
	for i := range candidates {
		c := &candidates[i]
		if c.Code != req.Code {
			continue
		}
		matched = true
		if c.ExpiresAt < now.Unix() {
			expiredMatch = true
			continue
		}
		// Match-and-invalidate: a concurrent verification of the same code
		// loses the conditional update and falls through.
		if err := s.otpRepo.Consume(ctx, c.OTPID); err != nil {
			if errors.Is(err, domain.ErrInvalidCode) {
				continue
			}
			return "", err
		}
		consumed = true
		break
	}
	if !matched {
		return "", fmt.Errorf("no code matches: %w", domain.ErrInvalidCode)
	}
	if !consumed {
		if expiredMatch {
			return "", fmt.Errorf("code expired at verification: %w", domain.ErrCodeExpired)
		}
		return "", fmt.Errorf("code already used: %w", domain.ErrInvalidCode)
	}

	tok, err := pkgtoken.NewSessionToken()
	if err != nil {
		return "", err
	}
	sess := &domain.Session{
		SessionID: id.New(),
		Email:     req.Email,
		Token:     tok,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL).Unix(),
	}
	if err := s.sessionRepo.Put(ctx, sess); err != nil {
		return "", err
	}

	// Lazy account creation; an account already existing is not an error and
	// is never overwritten.
	if err := s.userRepo.EnsureExists(ctx, domain.NewDefaultUser(req.Email, now)); err != nil {
		return "", err
	}

	return tok, nil
}
