package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const summaryKeyPrefix = "doctor-portal:summary:"

// SummaryCache stores generated summaries in Redis. Every failure behaves like a miss
// so summaries keep working when Redis is down.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache wraps client. A nil client or non-positive ttl disables caching.
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	if client == nil || ttl <= 0 {
		return &SummaryCache{}
	}
	return &SummaryCache{client: client, ttl: ttl}
}

// Key derives the cache key from the model and the exact prompt, so a changed record
// never hits a stale entry.
func Key(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return summaryKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached summary and whether it was found.
func (c *SummaryCache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a summary, ignoring Redis errors.
func (c *SummaryCache) Set(ctx context.Context, key, summary string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, summary, c.ttl).Err()
}
