//go:build integration
// +build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/cache"
	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// startRedis spins up a throwaway Redis container and returns a client
// pointed at it. Skips the test when Docker is unavailable.
func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Skipf("Docker not available, skipping: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() {
		_ = client.Close()
	})

	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisCache_Integration(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()

	t.Run("set and get round-trip", func(t *testing.T) {
		c := cache.NewRedis(&cache.RedisConfig{Client: client})

		stored := sampleResult(4.125)
		stored.ByRound = []float64{4.125, 4.125}
		require.NoError(t, c.Set(ctx, "round-trip", stored))

		got, err := c.Get(ctx, "round-trip")
		require.NoError(t, err)
		assert.Equal(t, stored.Total, got.Total)
		assert.Equal(t, stored.ByRound, got.ByRound)
	})

	t.Run("miss is not found", func(t *testing.T) {
		c := cache.NewRedis(&cache.RedisConfig{Client: client})

		_, err := c.Get(ctx, "never-stored")
		require.Error(t, err)
		assert.True(t, dnderr.IsNotFound(err))
	})

	t.Run("entries expire", func(t *testing.T) {
		c := cache.NewRedis(&cache.RedisConfig{
			Client: client,
			TTL:    100 * time.Millisecond,
		})

		require.NoError(t, c.Set(ctx, "short-lived", sampleResult(7)))

		_, err := c.Get(ctx, "short-lived")
		require.NoError(t, err)

		time.Sleep(200 * time.Millisecond)

		_, err = c.Get(ctx, "short-lived")
		assert.True(t, dnderr.IsNotFound(err))
	})

	t.Run("clear removes all cached results", func(t *testing.T) {
		c := cache.NewRedis(&cache.RedisConfig{Client: client})

		require.NoError(t, c.Set(ctx, "clear-a", sampleResult(1)))
		require.NoError(t, c.Set(ctx, "clear-b", sampleResult(2)))

		require.NoError(t, c.Clear(ctx))

		_, err := c.Get(ctx, "clear-a")
		assert.True(t, dnderr.IsNotFound(err))
		_, err = c.Get(ctx, "clear-b")
		assert.True(t, dnderr.IsNotFound(err))
	})
}
