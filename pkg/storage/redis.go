package storage

import (
	"fmt"
	"net"
	"strconv"

	"github.com/cuff-app/cuff/pkg/config"
	"github.com/go-redis/redis"
)

// NewRedis connects to the summary cache. The connection is verified so a misconfigured cache
// fails at startup rather than on the first summary request.
func NewRedis(c config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Password: c.Password,
		DB:       c.DB,
	})

	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %v", client.Options().Addr, err)
	}

	return client, nil
}
