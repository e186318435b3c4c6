package domain

import "time"

type Course struct {
	CourseID     string    `json:"id" dynamodbav:"course_id"`
	Title        string    `json:"title" dynamodbav:"title"`
	Description  *string   `json:"description,omitempty" dynamodbav:"description"`
	Language     string    `json:"language" dynamodbav:"language"`
	Published    bool      `json:"published" dynamodbav:"published"`
	TeacherEmail *string   `json:"teacher_email,omitempty" dynamodbav:"teacher_email"`
	Tags         []string  `json:"tags" dynamodbav:"tags"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateCourseRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  *string  `json:"description"`
	Language     string   `json:"language"`
	Published    bool     `json:"published"`
	TeacherEmail *string  `json:"teacher_email" validate:"omitempty,email"`
	Tags         []string `json:"tags"`
}
