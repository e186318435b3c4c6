package catalog

import (
	"context"
	"time"

	"github.com/lms-api/internal/domain"
	"github.com/lms-api/internal/pkg/id"
)

type CourseStore interface {
	Put(ctx context.Context, c *domain.Course) error
	Get(ctx context.Context, courseID string) (*domain.Course, error)
	List(ctx context.Context, teacherEmail string, limit int32) ([]domain.Course, error)
}

type LessonStore interface {
	Put(ctx context.Context, l *domain.Lesson) error
	Get(ctx context.Context, lessonID string) (*domain.Lesson, error)
	ListByCourse(ctx context.Context, courseID string, limit int32) ([]domain.Lesson, error)
}

type Service interface {
	CreateCourse(ctx context.Context, caller *domain.User, req domain.CreateCourseRequest) (*domain.Course, error)
	GetCourse(ctx context.Context, courseID string) (*domain.Course, error)
	ListCourses(ctx context.Context, teacherEmail string) ([]domain.Course, error)

	CreateLesson(ctx context.Context, req domain.CreateLessonRequest) (*domain.Lesson, error)
	GetLesson(ctx context.Context, lessonID string) (*domain.Lesson, error)
	ListLessons(ctx context.Context, courseID string) ([]domain.Lesson, error)
}

type ServiceDeps struct {
	CourseRepo CourseStore
	LessonRepo LessonStore
	Now        func() time.Time // nil means time.Now
}

type service struct {
	courseRepo CourseStore
	lessonRepo LessonStore
	now        func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		courseRepo: deps.CourseRepo,
		lessonRepo: deps.LessonRepo,
		now:        now,
	}
}

const listLimit = 200

// CreateCourse persists a new course. teacher_email defaults to the caller
// when unset, so a teacher's own courses show up under their index without
// requiring the field on the wire.
func (s *service) CreateCourse(ctx context.Context, caller *domain.User, req domain.CreateCourseRequest) (*domain.Course, error) {
	teacherEmail := req.TeacherEmail
	if teacherEmail == nil && caller != nil {
		e := caller.Email
		teacherEmail = &e
	}
	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	c := &domain.Course{
		CourseID:     id.New(),
		Title:        req.Title,
		Description:  req.Description,
		Language:     lang,
		Published:    req.Published,
		TeacherEmail: teacherEmail,
		Tags:         req.Tags,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.courseRepo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	return s.courseRepo.Get(ctx, courseID)
}

func (s *service) ListCourses(ctx context.Context, teacherEmail string) ([]domain.Course, error) {
	return s.courseRepo.List(ctx, teacherEmail, listLimit)
}

// CreateLesson persists a lesson under an existing course. The parent
// course is checked first so a dangling course_id fails with not-found
// instead of a silently orphaned lesson.
func (s *service) CreateLesson(ctx context.Context, req domain.CreateLessonRequest) (*domain.Lesson, error) {
	if _, err := s.courseRepo.Get(ctx, req.CourseID); err != nil {
		return nil, err
	}
	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	l := &domain.Lesson{
		LessonID:  id.New(),
		CourseID:  req.CourseID,
		Title:     req.Title,
		Content:   req.Content,
		Order:     req.Order,
		Language:  lang,
		CreatedAt: s.now().UTC(),
	}
	if err := s.lessonRepo.Put(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) GetLesson(ctx context.Context, lessonID string) (*domain.Lesson, error) {
	return s.lessonRepo.Get(ctx, lessonID)
}

func (s *service) ListLessons(ctx context.Context, courseID string) ([]domain.Lesson, error) {
	return s.lessonRepo.ListByCourse(ctx, courseID, listLimit)
}
