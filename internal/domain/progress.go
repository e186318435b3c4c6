package domain

import "time"

// ProgressRecord tracks a learner's state per (email, course, lesson).
// PK: user_email, SK: entry_key = course_id + "#" + lesson_id (lesson may be
// empty for course-level progress). At most one record per composite key —
// writes are merge-upserts through a single UpdateItem, never appends.
type ProgressRecord struct {
	UserEmail string    `json:"user_email" dynamodbav:"user_email"`
	EntryKey  string    `json:"-" dynamodbav:"entry_key"`
	CourseID  string    `json:"course_id" dynamodbav:"course_id"`
	LessonID  *string   `json:"lesson_id,omitempty" dynamodbav:"lesson_id"`
	Completed bool      `json:"completed" dynamodbav:"completed"`
	Score     *float64  `json:"score,omitempty" dynamodbav:"score"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// ProgressEntryKey derives the record sort key. A missing lesson maps to a
// trailing "#" so course-level and lesson-level records never collide.
func ProgressEntryKey(courseID string, lessonID *string) string {
	if lessonID == nil {
		return courseID + "#"
	}
	return courseID + "#" + *lessonID
}

type UpsertProgressRequest struct {
	CourseID  string   `json:"course_id" validate:"required"`
	LessonID  *string  `json:"lesson_id"`
	Completed *bool    `json:"completed"`
	Score     *float64 `json:"score"`
}

// LeaderboardEntry is derived, never persisted: the sum of scores across all
// of a learner's progress records, missing scores counting as zero.
type LeaderboardEntry struct {
	Email string  `json:"email"`
	Score float64 `json:"score"`
}
