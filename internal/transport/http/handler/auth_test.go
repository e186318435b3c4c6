package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lms-api/internal/application/auth"
	"github.com/lms-api/internal/domain"
)

type stubAuthService struct {
	requestResult *auth.RequestOTPResult
	requestErr    error
	verifyToken   string
	verifyErr     error
}

func (s *stubAuthService) RequestOTP(context.Context, auth.RequestOTPRequest) (*auth.RequestOTPResult, error) {
	return s.requestResult, s.requestErr
}

func (s *stubAuthService) VerifyOTP(context.Context, auth.VerifyOTPRequest) (string, error) {
	return s.verifyToken, s.verifyErr
}

func TestRequestOTP_ReturnsCodeEnvelope(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{requestResult: &auth.RequestOTPResult{
		Email:     "a@x.io",
		Code:      "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/request-otp",
		strings.NewReader(`{"email":"a@x.io"}`))

	h.RequestOTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env OTPEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Sent)
	assert.Equal(t, "a@x.io", env.Email)
	assert.Equal(t, "123456", env.Code)
}

func TestRequestOTP_RejectsMalformedBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/request-otp", strings.NewReader("{"))

	h.RequestOTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestOTP_RejectsInvalidEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/request-otp",
		strings.NewReader(`{"email":"not-an-email"}`))

	h.RequestOTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestOTP_StoreOutageIs503(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		requestErr: fmt.Errorf("put otp: %w", domain.ErrUnavailable),
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/request-otp",
		strings.NewReader(`{"email":"a@x.io"}`))

	h.RequestOTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestVerifyOTP_ReturnsToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{verifyToken: "deadbeefdeadbeefdeadbeefdeadbeef"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-otp",
		strings.NewReader(`{"email":"a@x.io","code":"123456"}`))

	h.VerifyOTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env TokenEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "deadbeefdeadbeefdeadbeefdeadbeef", env.Token)
}

func TestVerifyOTP_WrongCodeIs400(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		verifyErr: fmt.Errorf("verify otp: %w", domain.ErrInvalidCode),
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-otp",
		strings.NewReader(`{"email":"a@x.io","code":"000000"}`))

	h.VerifyOTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid code")
}

func TestVerifyOTP_ExpiredCodeIs400(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		verifyErr: fmt.Errorf("verify otp: %w", domain.ErrCodeExpired),
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-otp",
		strings.NewReader(`{"email":"a@x.io","code":"123456"}`))

	h.VerifyOTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestVerifyOTP_MissingCodeIs400(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-otp",
		strings.NewReader(`{"email":"a@x.io"}`))

	h.VerifyOTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
