package redis_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hookrelay/pkg/redis"
)

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	assert.False(t, redis.Config{}.Enabled())
	assert.True(t, redis.Config{ConnectionURL: "redis://localhost:6379/0"}.Enabled())
}

func TestConnect_EmptyURL(t *testing.T) {
	t.Parallel()

	client, err := redis.Connect(context.Background(), redis.Config{})
	require.ErrorIs(t, err, redis.ErrNotConfigured)
	assert.Nil(t, client)
}

func TestConnect_InvalidURL(t *testing.T) {
	t.Parallel()

	client, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://localhost"})
	require.ErrorIs(t, err, redis.ErrInvalidURL)
	assert.Nil(t, client)
}

func TestConnect_Unreachable(t *testing.T) {
	t.Parallel()

	client, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "redis://127.0.0.1:1/0",
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
		ConnectTimeout: 2 * time.Second,
	})
	require.ErrorIs(t, err, redis.ErrNotReady)
	assert.Nil(t, client)
}

func TestConnect_Healthcheck(t *testing.T) {
	t.Parallel()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}

	client, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  1,
		ConnectTimeout: time.Second,
	})
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	defer client.Close()

	check := redis.Healthcheck(client, time.Second)
	require.NoError(t, check(context.Background()))

	_ = client.Close()
	assert.ErrorIs(t, check(context.Background()), redis.ErrUnhealthy)
}

// fakePinger answers PING without a server.
type fakePinger func(ctx context.Context) error

func (f fakePinger) Ping(ctx context.Context) *goredis.StatusCmd {
	if err := f(ctx); err != nil {
		return goredis.NewStatusResult("", err)
	}
	return goredis.NewStatusResult("PONG", nil)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()

		check := redis.Healthcheck(fakePinger(func(context.Context) error { return nil }), time.Second)
		assert.NoError(t, check(context.Background()))
	})

	t.Run("ping error", func(t *testing.T) {
		t.Parallel()

		refused := errors.New("connection refused")
		check := redis.Healthcheck(fakePinger(func(context.Context) error { return refused }), time.Second)

		err := check(context.Background())
		assert.ErrorIs(t, err, redis.ErrUnhealthy)
		assert.ErrorIs(t, err, refused)
	})

	t.Run("hung server times out", func(t *testing.T) {
		t.Parallel()

		hang := fakePinger(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
		check := redis.Healthcheck(hang, 20*time.Millisecond)

		start := time.Now()
		err := check(context.Background())
		assert.ErrorIs(t, err, redis.ErrUnhealthy)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("zero timeout uses default", func(t *testing.T) {
		t.Parallel()

		var deadline time.Time
		check := redis.Healthcheck(fakePinger(func(ctx context.Context) error {
			deadline, _ = ctx.Deadline()
			return nil
		}), 0)

		require.NoError(t, check(context.Background()))
		assert.WithinDuration(t, time.Now().Add(redis.DefaultPingTimeout), deadline, time.Second)
	})
}
