package submission

import (
	"context"
	"log/slog"
	"time"

	"github.com/lms-api/internal/domain"
	"github.com/lms-api/internal/infrastructure/ai"
	"github.com/lms-api/internal/pkg/id"
)

// placeholderGrade is assigned until a real grading pipeline exists.
const placeholderGrade = 90.0

type SubmissionStore interface {
	Put(ctx context.Context, s *domain.Submission) error
	ListByUser(ctx context.Context, email string, limit int32) ([]domain.Submission, error)
}

// Tutor produces free-form feedback on submitted work.
type Tutor interface {
	Chat(ctx context.Context, message, language string, history []ai.ChatMessage) (map[string]interface{}, error)
	TutorConfigured() bool
}

type Service interface {
	Submit(ctx context.Context, authorEmail string, req domain.CreateSubmissionRequest) (*domain.Submission, error)
	ListByUser(ctx context.Context, email string) ([]domain.Submission, error)
}

type ServiceDeps struct {
	SubmissionRepo SubmissionStore
	Tutor          Tutor // nil disables AI feedback
	Now            func() time.Time
}

type service struct {
	submissionRepo SubmissionStore
	tutor          Tutor
	now            func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		submissionRepo: deps.SubmissionRepo,
		tutor:          deps.Tutor,
		now:            now,
	}
}

const listLimit = 100

// Submit persists the submission with a placeholder grade and, when the
// tutor is configured, asks it for feedback first. Feedback is best-effort:
// a tutor failure is logged and the submission is stored without it.
func (s *service) Submit(ctx context.Context, authorEmail string, req domain.CreateSubmissionRequest) (*domain.Submission, error) {
	sub := &domain.Submission{
		SubmissionID: id.New(),
		UserEmail:    authorEmail,
		AssignmentID: req.AssignmentID,
		Content:      req.Content,
		CreatedAt:    s.now().UTC(),
	}
	grade := placeholderGrade
	sub.Grade = &grade

	if s.tutor != nil && s.tutor.TutorConfigured() {
		prompt := "Provide brief constructive feedback on this student submission:\n\n" + req.Content
		resp, err := s.tutor.Chat(ctx, prompt, "en", nil)
		if err != nil {
			slog.Warn("submission feedback unavailable", "assignment_id", req.AssignmentID, "error", err)
		} else if fb := extractFeedback(resp); fb != "" {
			sub.Feedback = &fb
		}
	}

	if err := s.submissionRepo.Put(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *service) ListByUser(ctx context.Context, email string) ([]domain.Submission, error) {
	return s.submissionRepo.ListByUser(ctx, email, listLimit)
}

// extractFeedback pulls the tutor's text out of its loose response shape.
func extractFeedback(resp map[string]interface{}) string {
	for _, key := range []string{"response", "reply", "message", "feedback"} {
		if v, ok := resp[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
