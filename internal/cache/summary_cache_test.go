package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestKeyDependsOnModelAndPrompt(t *testing.T) {
	base := Key("gpt-4o-mini", "prompt")
	assert.Equal(t, base, Key("gpt-4o-mini", "prompt"))
	assert.NotEqual(t, base, Key("gpt-4o", "prompt"))
	assert.NotEqual(t, base, Key("gpt-4o-mini", "prompt with new visit"))
	assert.Contains(t, base, summaryKeyPrefix)
}

func TestDisabledCacheMisses(t *testing.T) {
	c := NewSummaryCache(nil, time.Hour)
	c.Set(context.Background(), "k", "v")
	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)

	var nilCache *SummaryCache
	_, ok = nilCache.Get(context.Background(), "k")
	assert.False(t, ok)
}

func TestUnreachableRedisMisses(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewSummaryCache(client, time.Hour)
	c.Set(context.Background(), "k", "v")
	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
}
