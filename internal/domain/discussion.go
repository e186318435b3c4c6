package domain

import "time"

type Discussion struct {
	DiscussionID string    `json:"id" dynamodbav:"discussion_id"`
	CourseID     string    `json:"course_id" dynamodbav:"course_id"`
	UserEmail    string    `json:"user_email" dynamodbav:"user_email"`
	Message      string    `json:"message" dynamodbav:"message"`
	ParentID     *string   `json:"parent_id,omitempty" dynamodbav:"parent_id"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
}

type CreateDiscussionRequest struct {
	CourseID string  `json:"course_id" validate:"required"`
	Message  string  `json:"message" validate:"required"`
	ParentID *string `json:"parent_id"`
}
