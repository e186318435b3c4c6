package progress

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/lms-api/internal/domain"
)

// DefaultLeaderboardLimit applies when the caller supplies no limit.
const DefaultLeaderboardLimit = 10

// ProgressStore is the persistence the service depends on.
type ProgressStore interface {
	Upsert(ctx context.Context, email, courseID string, lessonID *string, updates map[string]interface{}, now time.Time) error
	ListByUser(ctx context.Context, email, courseID string) ([]domain.ProgressRecord, error)
	ScanAll(ctx context.Context) ([]domain.ProgressRecord, error)
}

// LeaderboardCache holds a short-lived snapshot of the aggregated board.
// A nil cache disables caching entirely.
type LeaderboardCache interface {
	Get(ctx context.Context) ([]domain.LeaderboardEntry, bool)
	Set(ctx context.Context, entries []domain.LeaderboardEntry)
}

type Service interface {
	Upsert(ctx context.Context, email string, req domain.UpsertProgressRequest) error
	ListByUser(ctx context.Context, email, courseID string) ([]domain.ProgressRecord, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type ServiceDeps struct {
	ProgressRepo ProgressStore
	Cache        LeaderboardCache // optional
	Now          func() time.Time // nil means time.Now
}

type service struct {
	progressRepo ProgressStore
	cache        LeaderboardCache
	now          func() time.Time
	sf           singleflight.Group
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		progressRepo: deps.ProgressRepo,
		cache:        deps.Cache,
		now:          now,
	}
}

// Upsert merges the caller-supplied fields into the record for
// (email, course, lesson). Fields the caller did not supply keep their prior
// values; updated_at refreshes in the same atomic write. course and lesson
// are opaque foreign keys — no catalog validation happens here.
func (s *service) Upsert(ctx context.Context, email string, req domain.UpsertProgressRequest) error {
	updates := make(map[string]interface{})
	if req.Completed != nil {
		updates["completed"] = *req.Completed
	}
	if req.Score != nil {
		updates["score"] = *req.Score
	}
	return s.progressRepo.Upsert(ctx, email, req.CourseID, req.LessonID, updates, s.now())
}

func (s *service) ListByUser(ctx context.Context, email, courseID string) ([]domain.ProgressRecord, error) {
	return s.progressRepo.ListByUser(ctx, email, courseID)
}

// Leaderboard returns the top limit learners by cumulative score, descending,
// ties broken by email ascending. Missing scores count as zero. The full
// sorted board is computed (and cached) once; truncation happens per call.
func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be a positive integer: %w", domain.ErrBadRequest)
	}

	if s.cache != nil {
		if entries, ok := s.cache.Get(ctx); ok {
			return truncate(entries, limit), nil
		}
	}

	// Concurrent cache misses collapse into a single scan.
	v, err, _ := s.sf.Do("leaderboard", func() (interface{}, error) {
		records, err := s.progressRepo.ScanAll(ctx)
		if err != nil {
			return nil, err
		}
		entries := aggregate(records)
		if s.cache != nil {
			s.cache.Set(ctx, entries)
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return truncate(v.([]domain.LeaderboardEntry), limit), nil
}

// aggregate groups records by email and sums scores, nil scores as zero.
func aggregate(records []domain.ProgressRecord) []domain.LeaderboardEntry {
	totals := make(map[string]float64)
	for _, rec := range records {
		score := 0.0
		if rec.Score != nil {
			score = *rec.Score
		}
		totals[rec.UserEmail] += score
	}
	entries := make([]domain.LeaderboardEntry, 0, len(totals))
	for email, total := range totals {
		entries = append(entries, domain.LeaderboardEntry{Email: email, Score: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Email < entries[j].Email
	})
	return entries
}

func truncate(entries []domain.LeaderboardEntry, limit int) []domain.LeaderboardEntry {
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
