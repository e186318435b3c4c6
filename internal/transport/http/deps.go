package http

import (
	"github.com/lms-api/internal/infrastructure/ai"
	"github.com/lms-api/internal/infrastructure/dynamo"
	redisinfra "github.com/lms-api/internal/infrastructure/redis"
	s3infra "github.com/lms-api/internal/infrastructure/s3"
	"github.com/lms-api/internal/infrastructure/smtp"
	"github.com/lms-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router. Mailer,
// SMSSender and LeaderboardCache may be nil; the features backed by them
// degrade rather than fail.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	OTPRepo          *dynamo.OTPRepo
	SessionRepo      *dynamo.SessionRepo
	ProgressRepo     *dynamo.ProgressRepo
	CourseRepo       *dynamo.CourseRepo
	LessonRepo       *dynamo.LessonRepo
	QuizRepo         *dynamo.QuizRepo
	DiscussionRepo   *dynamo.DiscussionRepo
	SubmissionRepo   *dynamo.SubmissionRepo
	AudioStore       *s3infra.Store
	AIClient         *ai.Client
	LeaderboardCache *redisinfra.LeaderboardCache
	Mailer           smtp.Mailer
	SMSSender        sns.SMSSender
}
