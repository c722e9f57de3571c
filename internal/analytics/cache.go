package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	SummaryCacheKey      = "analytics:summary"
	SummaryGenerationKey = "analytics:summary:gen"
)

var ErrCacheMiss = errors.New("analytics: cache miss")

// Cache keeps computed summaries in redis, keyed by a generation counter.
// Invalidate bumps the generation, so a summary computed before a write
// can never be read back after it. A nil client or a zero TTL turns every
// call into a miss.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(redisClient *redis.Client, ttl time.Duration) *Cache {
	return &Cache{redis: redisClient, ttl: ttl}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.redis != nil && c.ttl > 0
}

func summaryKey(gen int64) string {
	return SummaryCacheKey + ":" + strconv.FormatInt(gen, 10)
}

// Generation returns the current generation. It must be read before the
// data a summary is computed from.
func (c *Cache) Generation(ctx context.Context) (int64, error) {
	if !c.Enabled() {
		return 0, ErrCacheMiss
	}

	gen, err := c.redis.Get(ctx, SummaryGenerationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (c *Cache) Get(ctx context.Context, gen int64) (*Summary, error) {
	if !c.Enabled() {
		return nil, ErrCacheMiss
	}

	data, err := c.redis.Get(ctx, summaryKey(gen)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Set stores a summary computed from data read at generation gen.
func (c *Cache) Set(ctx context.Context, gen int64, summary *Summary) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, summaryKey(gen), data, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.redis.Incr(ctx, SummaryGenerationKey).Err()
}
