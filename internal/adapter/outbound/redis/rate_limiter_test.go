package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) (*rateLimiter, *miniredis.Miniredis, *time.Time) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	clock := time.Date(2025, 4, 3, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(client).(*rateLimiter)
	rl.now = func() time.Time { return clock }
	return rl, mr, &clock
}

func TestRateLimiter_Allow(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to the limit", func(t *testing.T) {
		rl, _, _ := newTestLimiter(t)

		for i := 0; i < 3; i++ {
			ok, err := rl.Allow(ctx, "upload:ip:1", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, ok, "request %d", i)
		}

		ok, err := rl.Allow(ctx, "upload:ip:1", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl, _, _ := newTestLimiter(t)

		ok, err := rl.Allow(ctx, "upload:ip:1", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = rl.Allow(ctx, "upload:ip:2", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("window slides", func(t *testing.T) {
		rl, _, clock := newTestLimiter(t)

		ok, _ := rl.Allow(ctx, "k", 1, time.Minute)
		assert.True(t, ok)
		ok, _ = rl.Allow(ctx, "k", 1, time.Minute)
		assert.False(t, ok)

		*clock = clock.Add(61 * time.Second)
		ok, err := rl.Allow(ctx, "k", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("sets expiry on the key", func(t *testing.T) {
		rl, mr, _ := newTestLimiter(t)

		_, err := rl.Allow(ctx, "k", 5, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, time.Minute, mr.TTL(rateLimitKeyPrefix+"k"))
	})

	t.Run("reports backend failure", func(t *testing.T) {
		rl, mr, _ := newTestLimiter(t)
		mr.Close()

		_, err := rl.Allow(ctx, "k", 5, time.Minute)
		assert.Error(t, err)
	})
}

func TestRateLimiter_GetRemaining(t *testing.T) {
	ctx := context.Background()
	rl, _, _ := newTestLimiter(t)

	remaining, err := rl.GetRemaining(ctx, "k", 3, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)

	for i := 0; i < 4; i++ {
		_, err := rl.Allow(ctx, "k", 3, time.Minute)
		require.NoError(t, err)
	}

	remaining, err = rl.GetRemaining(ctx, "k", 3, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}
