package domain

import "time"

// Session is issued after a successful OTP verification.
// PK: session_id, GSI: token-index. The token is opaque random — it is
// never derived from the code and is validated by store lookup only.
type Session struct {
	SessionID string    `json:"id" dynamodbav:"session_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Token     string    `json:"token" dynamodbav:"token"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"` // Unix seconds, also DynamoDB TTL
	User      *User     `json:"user,omitempty" dynamodbav:"-"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt < now.Unix()
}
