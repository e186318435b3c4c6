package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/lms-api/internal/domain"
	"github.com/lms-api/internal/infrastructure/ai"
	"github.com/lms-api/internal/pkg/id"
)

const defaultQuestionCount = 5

type QuizStore interface {
	Put(ctx context.Context, q *domain.Quiz) error
	GetByLesson(ctx context.Context, lessonID string) (*domain.Quiz, error)
}

type LessonStore interface {
	Get(ctx context.Context, lessonID string) (*domain.Lesson, error)
}

// Generator produces quiz questions from lesson content.
type Generator interface {
	GenerateQuiz(ctx context.Context, lessonContent string, count int) ([]ai.GeneratedQuestion, error)
}

type Service interface {
	Generate(ctx context.Context, req domain.GenerateQuizRequest) (*domain.Quiz, error)
	GetByLesson(ctx context.Context, lessonID string) (*domain.Quiz, error)
}

type ServiceDeps struct {
	QuizRepo   QuizStore
	LessonRepo LessonStore
	Generator  Generator
	Now        func() time.Time // nil means time.Now
}

type service struct {
	quizRepo   QuizStore
	lessonRepo LessonStore
	generator  Generator
	now        func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		quizRepo:   deps.QuizRepo,
		lessonRepo: deps.LessonRepo,
		generator:  deps.Generator,
		now:        now,
	}
}

// Generate proxies lesson content to the quiz generator and persists the
// result. The quiz is only stored after a successful generation, so a
// generator failure leaves no partial record behind.
func (s *service) Generate(ctx context.Context, req domain.GenerateQuizRequest) (*domain.Quiz, error) {
	lesson, err := s.lessonRepo.Get(ctx, req.LessonID)
	if err != nil {
		return nil, err
	}

	count := req.NumQuestions
	if count <= 0 {
		count = defaultQuestionCount
	}
	generated, err := s.generator.GenerateQuiz(ctx, lesson.Content, count)
	if err != nil {
		return nil, err
	}
	if len(generated) == 0 {
		return nil, fmt.Errorf("generator returned no questions: %w", domain.ErrUpstream)
	}

	questions := make([]domain.QuizQuestion, 0, len(generated))
	for _, g := range generated {
		questions = append(questions, domain.QuizQuestion{
			Question:    g.Question,
			Options:     g.Options,
			Answer:      g.Answer,
			Explanation: g.Explanation,
		})
	}
	q := &domain.Quiz{
		QuizID:    id.New(),
		LessonID:  lesson.LessonID,
		Title:     "Quiz: " + lesson.Title,
		Questions: questions,
		CreatedAt: s.now().UTC(),
	}
	if err := s.quizRepo.Put(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *service) GetByLesson(ctx context.Context, lessonID string) (*domain.Quiz, error) {
	q, err := s.quizRepo.GetByLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("quiz for lesson %s: %w", lessonID, domain.ErrNotFound)
	}
	return q, nil
}
