package domain

import "time"

type QuizQuestion struct {
	Question    string   `json:"question" dynamodbav:"question"`
	Options     []string `json:"options" dynamodbav:"options"`
	Answer      *string  `json:"answer,omitempty" dynamodbav:"answer"`
	Explanation *string  `json:"explanation,omitempty" dynamodbav:"explanation"`
}

type Quiz struct {
	QuizID    string         `json:"id" dynamodbav:"quiz_id"`
	LessonID  string         `json:"lesson_id" dynamodbav:"lesson_id"`
	Title     string         `json:"title" dynamodbav:"title"`
	Questions []QuizQuestion `json:"questions" dynamodbav:"questions"`
	CreatedAt time.Time      `json:"created" dynamodbav:"created_at"`
}

type GenerateQuizRequest struct {
	LessonID     string `json:"lesson_id" validate:"required"`
	NumQuestions int    `json:"num_questions"`
}
