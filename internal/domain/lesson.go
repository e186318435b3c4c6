package domain

import "time"

type Lesson struct {
	LessonID  string    `json:"id" dynamodbav:"lesson_id"`
	CourseID  string    `json:"course_id" dynamodbav:"course_id"`
	Title     string    `json:"title" dynamodbav:"title"`
	Content   string    `json:"content" dynamodbav:"content"` // HTML or Markdown
	Order     int       `json:"order" dynamodbav:"order"`
	Language  string    `json:"language" dynamodbav:"language"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateLessonRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
	Order    int    `json:"order"`
	Language string `json:"language"`
}
