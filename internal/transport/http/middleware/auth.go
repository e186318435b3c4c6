package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lms-api/internal/application/session"
	"github.com/lms-api/internal/domain"
)

type contextKey string

const sessionKey contextKey = "session"

// Auth returns middleware that resolves the opaque Bearer token against the
// session store and injects the session (with its account) into context.
// Missing, unknown and expired tokens all end the request with 401.
func Auth(svc session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")
			sess, err := svc.Resolve(r.Context(), token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithSession returns ctx carrying sess, exactly as the Auth
// middleware would have stored it.
func ContextWithSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext extracts the authenticated session from the request context.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*domain.Session)
	return s, ok
}

// UserFromContext extracts the authenticated account from the request context.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	s, ok := ctx.Value(sessionKey).(*domain.Session)
	if !ok || s.User == nil {
		return nil, false
	}
	return s.User, true
}
