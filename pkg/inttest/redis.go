package inttest

import (
	"testing"

	"github.com/cuff-app/cuff/pkg/config"
	"github.com/cuff-app/cuff/pkg/storage"
	"github.com/go-redis/redis"
	gnomockRedis "github.com/orlangure/gnomock/preset/redis"
	"github.com/stretchr/testify/require"
)

// SetupRedis starts a throwaway Redis and returns a client for the summary cache.
func SetupRedis(t *testing.T) *redis.Client {
	t.Helper()

	container := startContainer(t, "Redis", gnomockRedis.Preset())

	client, err := storage.NewRedis(config.Redis{
		Host: container.Host,
		Port: container.DefaultPort(),
	})
	require.NoError(t, err, "failed to connect to Redis")
	t.Cleanup(func() { _ = client.Close() })
	return client
}
