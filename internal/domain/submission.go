package domain

import "time"

type Submission struct {
	SubmissionID string    `json:"id" dynamodbav:"submission_id"`
	UserEmail    string    `json:"user_email" dynamodbav:"user_email"`
	AssignmentID string    `json:"assignment_id" dynamodbav:"assignment_id"`
	Content      string    `json:"content" dynamodbav:"content"`
	Grade        *float64  `json:"grade,omitempty" dynamodbav:"grade"`
	Feedback     *string   `json:"feedback,omitempty" dynamodbav:"feedback"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateSubmissionRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required"`
	Content      string `json:"content" validate:"required"`
}
