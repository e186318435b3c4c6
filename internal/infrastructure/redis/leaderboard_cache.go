package redisinfra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lms-api/internal/config"
	"github.com/lms-api/internal/domain"
)

const leaderboardKey = "leaderboard:all"

// NewClient creates a Redis client, or nil when no address is configured
// (the leaderboard then recomputes on every call).
func NewClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// LeaderboardCache keeps the fully aggregated, sorted leaderboard as a JSON
// snapshot with a short TTL. The cache only dedupes scan work — a stale or
// missing entry is never an error.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot and whether it was present.
func (c *LeaderboardCache) Get(ctx context.Context) ([]domain.LeaderboardEntry, bool) {
	raw, err := c.client.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// Set stores the snapshot best-effort; a write failure is ignored.
func (c *LeaderboardCache) Set(ctx context.Context, entries []domain.LeaderboardEntry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, leaderboardKey, raw, c.ttl).Err()
}
