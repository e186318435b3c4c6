package dynamo

// DynamoDB attribute names used in update expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldConsumed  = "consumed"
	fieldUpdatedAt = "updated_at"
	fieldCourseID  = "course_id"
	fieldLessonID  = "lesson_id"
	fieldCompleted = "completed"
	fieldScore     = "score"
)
