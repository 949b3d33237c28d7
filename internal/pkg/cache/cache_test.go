package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourcePageKey(t *testing.T) {
	assert.Equal(t, "unishare:resource:page:abc", ResourcePageKey("abc"))
}

func TestNoopCache(t *testing.T) {
	ctx := context.Background()
	c := NewNoopCache()

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Ping(ctx))
}

func TestNewRedisCacheRejectsBadURL(t *testing.T) {
	_, err := NewRedisCache(Config{URL: "://nope"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestRedisCacheUnreachableIsMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := newRedisCache(client, 0, zerolog.Nop())
	defer c.Close()

	assert.Equal(t, 5*time.Minute, c.ttl)

	_, ok := c.Get(context.Background(), ResourcePageKey("x"))
	assert.False(t, ok)
	assert.Error(t, c.Set(context.Background(), "k", []byte("v")))
	assert.NoError(t, c.Delete(context.Background()))
}
