package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimitRepository(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	repo := NewRedisRateLimitRepository(client)
	ctx := context.Background()

	t.Run("AllowsUpToLimit", func(t *testing.T) {
		userID := int64(123)
		for i := 0; i < 3; i++ {
			allowed, err := repo.CheckRateLimit(ctx, userID, 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}
		allowed, err := repo.CheckRateLimit(ctx, userID, 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("WindowExpires", func(t *testing.T) {
		userID := int64(777)
		allowed, err := repo.CheckRateLimit(ctx, userID, 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = repo.CheckRateLimit(ctx, userID, 1, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)

		s.FastForward(time.Minute + time.Second)

		allowed, err = repo.CheckRateLimit(ctx, userID, 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("NilClient", func(t *testing.T) {
		nilRepo := NewRedisRateLimitRepository(nil)
		_, err := nilRepo.CheckRateLimit(ctx, 1, 1, time.Minute)
		assert.Error(t, err)
	})
}

func TestPing(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	assert.NoError(t, Ping(context.Background(), client))
}
