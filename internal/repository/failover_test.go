package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRateLimitRepository struct {
	calls int
}

func (f *failingRateLimitRepository) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	f.calls++
	return false, errors.New("primary unavailable")
}

func TestFailoverRateLimitRepository(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("FallsBackOnPrimaryError", func(t *testing.T) {
		primary := &failingRateLimitRepository{}
		fallback := NewMemoryRateLimitRepository()
		repo := NewFailoverRateLimitRepository(primary, fallback, &logger)

		allowed, err := repo.CheckRateLimit(ctx, 1, 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 1, primary.calls)
	})

	t.Run("SkipsPrimaryWhileDown", func(t *testing.T) {
		primary := &failingRateLimitRepository{}
		fallback := NewMemoryRateLimitRepository()
		repo := NewFailoverRateLimitRepository(primary, fallback, &logger)

		repo.CheckRateLimit(ctx, 1, 5, time.Minute)
		repo.CheckRateLimit(ctx, 1, 5, time.Minute)

		// The second call must not touch the primary again within the probe window.
		assert.Equal(t, 1, primary.calls)
	})

	t.Run("FallbackEnforcesLimit", func(t *testing.T) {
		primary := &failingRateLimitRepository{}
		fallback := NewMemoryRateLimitRepository()
		repo := NewFailoverRateLimitRepository(primary, fallback, &logger)

		allowed, err := repo.CheckRateLimit(ctx, 9, 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = repo.CheckRateLimit(ctx, 9, 1, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}
