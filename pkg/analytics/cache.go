package analytics

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

const summaryKey = "cuff:analytics:summary"

// SummaryCache keeps the last computed summary between requests. Writes to posts invalidate it.
type SummaryCache interface {
	Get() (Summary, bool, error)
	// Set caches summary for at most the configured ttl. A positive expiresIn shortens that to the
	// moment the summary goes stale on its own, like a post window ending.
	Set(summary Summary, expiresIn time.Duration) error
	Invalidate() error
}

// NewCache returns a Redis backed cache. Without a client summaries aren't cached at all.
func NewCache(client *redis.Client, ttl time.Duration) SummaryCache {
	if client == nil || ttl == 0 {
		return noCache{}
	}
	return redisCache{client: client, ttl: ttl}
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func (r redisCache) Get() (Summary, bool, error) {
	data, err := r.client.Get(summaryKey).Bytes()
	if err == redis.Nil {
		return Summary{}, false, nil
	}
	if err != nil {
		return Summary{}, false, fmt.Errorf("failed to get cached summary: %v", err)
	}

	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return Summary{}, false, fmt.Errorf("failed to decode cached summary: %v", err)
	}
	return summary, true, nil
}

func (r redisCache) Set(summary Summary, expiresIn time.Duration) error {
	ttl := r.ttl
	if expiresIn > 0 && expiresIn < ttl {
		ttl = expiresIn
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %v", err)
	}
	if err := r.client.Set(summaryKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache summary: %v", err)
	}
	return nil
}

func (r redisCache) Invalidate() error {
	if err := r.client.Del(summaryKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached summary: %v", err)
	}
	return nil
}

type noCache struct{}

func (noCache) Get() (Summary, bool, error) { return Summary{}, false, nil }

func (noCache) Set(Summary, time.Duration) error { return nil }

func (noCache) Invalidate() error { return nil }
