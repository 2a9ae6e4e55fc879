package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

const statsKey = "dashboard:stats"

// StatsCache stores the dashboard aggregate between recomputations.
type StatsCache interface {
	Get(ctx context.Context) (*domain.DashboardStats, error)
	Set(ctx context.Context, stats *domain.DashboardStats) error
	Invalidate(ctx context.Context) error
}

type redisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatsCache builds a Redis-backed cache. A nil client degrades to
// cache misses so the service keeps working without Redis.
func NewRedisStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	return &redisStatsCache{client: client, ttl: ttl}
}

func (c *redisStatsCache) Get(ctx context.Context) (*domain.DashboardStats, error) {
	if c.client == nil {
		return nil, nil
	}
	payload, err := c.client.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats domain.DashboardStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *redisStatsCache) Set(ctx context.Context, stats *domain.DashboardStats) error {
	if c.client == nil {
		return nil
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey, payload, c.ttl).Err()
}

func (c *redisStatsCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, statsKey).Err()
}
