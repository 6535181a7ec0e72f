package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultMetricsTTL bounds how stale the cached dashboard snapshot can
// get under read load.
const DefaultMetricsTTL = 15 * time.Second

const metricsKey = "dashboard:metrics"

// ErrCacheMiss is returned when no cached value exists for the key
var ErrCacheMiss = errors.New("cache miss")

// MetricsCache stores the serialized dashboard snapshot with a short
// TTL so dashboard polling does not hammer the database.
type MetricsCache struct {
	client *Client
	ttl    time.Duration
}

// NewMetricsCache creates a metrics cache with the given TTL; ttl <= 0
// uses the default.
func NewMetricsCache(client *Client, ttl time.Duration) *MetricsCache {
	if ttl <= 0 {
		ttl = DefaultMetricsTTL
	}
	return &MetricsCache{client: client, ttl: ttl}
}

// Get loads the cached snapshot into dest
func (c *MetricsCache) Get(ctx context.Context, dest interface{}) error {
	data, err := c.client.rdb.Get(ctx, metricsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// Set stores the snapshot with the cache TTL
func (c *MetricsCache) Set(ctx context.Context, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.rdb.Set(ctx, metricsKey, data, c.ttl).Err()
}

// Invalidate drops the cached snapshot
func (c *MetricsCache) Invalidate(ctx context.Context) error {
	return c.client.rdb.Del(ctx, metricsKey).Err()
}
