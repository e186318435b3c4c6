package discussion

import (
	"context"
	"time"

	"github.com/lms-api/internal/domain"
	"github.com/lms-api/internal/pkg/id"
)

type DiscussionStore interface {
	Put(ctx context.Context, d *domain.Discussion) error
	ListByCourse(ctx context.Context, courseID string, limit int32) ([]domain.Discussion, error)
}

type CourseStore interface {
	Get(ctx context.Context, courseID string) (*domain.Course, error)
}

type Service interface {
	Post(ctx context.Context, authorEmail string, req domain.CreateDiscussionRequest) (*domain.Discussion, error)
	ListByCourse(ctx context.Context, courseID string) ([]domain.Discussion, error)
}

type ServiceDeps struct {
	DiscussionRepo DiscussionStore
	CourseRepo     CourseStore
	Now            func() time.Time // nil means time.Now
}

type service struct {
	discussionRepo DiscussionStore
	courseRepo     CourseStore
	now            func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		discussionRepo: deps.DiscussionRepo,
		courseRepo:     deps.CourseRepo,
		now:            now,
	}
}

const listLimit = 200

func (s *service) Post(ctx context.Context, authorEmail string, req domain.CreateDiscussionRequest) (*domain.Discussion, error) {
	if _, err := s.courseRepo.Get(ctx, req.CourseID); err != nil {
		return nil, err
	}
	d := &domain.Discussion{
		DiscussionID: id.New(),
		CourseID:     req.CourseID,
		UserEmail:    authorEmail,
		Message:      req.Message,
		ParentID:     req.ParentID,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.discussionRepo.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// ListByCourse returns a course's messages newest first.
func (s *service) ListByCourse(ctx context.Context, courseID string) ([]domain.Discussion, error) {
	return s.discussionRepo.ListByCourse(ctx, courseID, listLimit)
}
