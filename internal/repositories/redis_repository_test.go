package repository_test

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/LeoR1u/ProyectoLegos/internal/config"
	repository "github.com/LeoR1u/ProyectoLegos/internal/repositories"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLoginRateLimit(t *testing.T) {
	ctx := t.Context()
	cfg := config.RateConfig{MaxAttempts: 3, WindowSize: time.Minute}
	fixed := time.Unix(1_700_000_100, 500)
	clock := func() time.Time { return fixed }
	key := "login_attempts:emmet"
	windowStart := strconv.FormatInt(fixed.Unix()-60, 10)

	expectPipeline := func(mock redismock.ClientMock, count int64) {
		mock.ExpectZRemRangeByScore(key, "0", windowStart).SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(fixed.Unix()), Member: fixed.UnixNano()}).SetVal(1)
		mock.ExpectZCard(key).SetVal(count)
		mock.ExpectExpire(key, time.Minute).SetVal(true)
	}

	t.Run("Allowed", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		repo := repository.NewRateLimitRepo(client, cfg, clock)
		expectPipeline(mock, 1)

		// Act
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, "emmet")

		// Assert
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2, remaining)
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Last allowed attempt", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewRateLimitRepo(client, cfg, clock)
		expectPipeline(mock, 3)

		allowed, remaining, _, err := repo.CheckLoginRateLimit(ctx, "emmet")

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, remaining)
	})

	t.Run("Blocked", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		repo := repository.NewRateLimitRepo(client, cfg, clock)
		expectPipeline(mock, 4)

		oldest := fixed.Unix() - 20
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: float64(oldest), Member: strconv.FormatInt(oldest, 10)}})

		// Act
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, "emmet")

		// Assert
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)
		assert.Equal(t, 40, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Pipeline error", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		repo := repository.NewRateLimitRepo(client, cfg, clock)
		mock.ExpectZRemRangeByScore(key, "0", windowStart).SetErr(errors.New("connection refused"))

		// Act
		allowed, _, _, err := repo.CheckLoginRateLimit(ctx, "emmet")

		// Assert
		require.Error(t, err)
		assert.False(t, allowed)
		assert.Contains(t, err.Error(), "redis pipeline error")
	})
}

func TestResetLoginAttempts(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := repository.NewRateLimitRepo(client, config.RateConfig{MaxAttempts: 3, WindowSize: time.Minute}, nil)

	mock.ExpectDel("login_attempts:lucy").SetVal(1)

	err := repo.ResetLoginAttempts(t.Context(), "lucy")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
