package domain

import "time"

// OneTimeCode is a short-lived numeric credential proving control of an email.
// PK: otp_id, GSI: email-index. Several live codes may exist for the same
// email at once; issuing a new code never invalidates earlier ones.
// ExpiresAt doubles as the DynamoDB TTL attribute.
type OneTimeCode struct {
	OTPID     string    `json:"id" dynamodbav:"otp_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Code      string    `json:"code" dynamodbav:"code"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"` // Unix seconds
	Consumed  bool      `json:"consumed" dynamodbav:"consumed"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}
