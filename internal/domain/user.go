package domain

import "time"

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// User is keyed by email; no surrogate ID exists.
// Accounts are created lazily on first successful OTP verification.
type User struct {
	Email     string    `json:"email" dynamodbav:"email"`
	Name      *string   `json:"name,omitempty" dynamodbav:"name"`
	Role      string    `json:"role" dynamodbav:"role"` // "student" | "teacher" | "admin"
	AvatarURL *string   `json:"avatar_url,omitempty" dynamodbav:"avatar_url"`
	Phone     *string   `json:"phone,omitempty" dynamodbav:"phone"`
	Locale    string    `json:"locale" dynamodbav:"locale"` // "en" | "ar"
	Points    int       `json:"points" dynamodbav:"points"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

// NewDefaultUser returns the account shape used for lazy creation.
func NewDefaultUser(email string, now time.Time) *User {
	return &User{
		Email:     email,
		Role:      RoleStudent,
		Locale:    "en",
		Points:    0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Role      *string `json:"role" validate:"omitempty,oneof=student teacher admin"`
	AvatarURL *string `json:"avatar_url"`
	Phone     *string `json:"phone"`
	Locale    *string `json:"locale" validate:"omitempty,oneof=en ar"`
	Points    *int    `json:"points"`
}
