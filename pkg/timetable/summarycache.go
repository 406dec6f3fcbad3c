package timetable

import (
	"context"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

const summaryCacheKey = "controlroom:train_summaries"

// SummaryCache holds the encoded train selection list in Redis. The list
// only changes when records are created or reseeded, which invalidates it.
type SummaryCache struct {
	cache *cache.Cache[string]
}

func NewSummaryCache(client *redis.Client, expiration time.Duration) *SummaryCache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &SummaryCache{
		cache: cache.New[string](redisStore),
	}
}

func (c *SummaryCache) Get(ctx context.Context) (string, bool) {
	payload, err := c.cache.Get(ctx, summaryCacheKey)
	if err != nil || payload == "" {
		return "", false
	}

	return payload, true
}

func (c *SummaryCache) Set(ctx context.Context, payload string) error {
	return c.cache.Set(ctx, summaryCacheKey, payload)
}

func (c *SummaryCache) Invalidate(ctx context.Context) error {
	return c.cache.Delete(ctx, summaryCacheKey)
}
