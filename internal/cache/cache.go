// Package cache holds the Redis state shared by API replicas: the per-IP
// token buckets that guard register and login.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pool defaults, used when REDIS_URL does not set them. Only credential
// requests touch Redis, one script call each.
const (
	defaultPoolSize        = 10
	defaultMinIdleConns    = 2
	defaultPoolTimeout     = 4 * time.Second
	defaultConnMaxIdleTime = 5 * time.Minute
)

// Cache is the Redis handle behind the credential rate limiter and the
// readiness probe.
type Cache struct {
	client *redis.Client
}

// New connects to redisURL and pings it. Pool settings given as URL query
// parameters (pool_size, min_idle_conns, ...) win over the defaults.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	applyPoolDefaults(opt)

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis at %s: %w", opt.Addr, err)
	}

	return &Cache{client: client}, nil
}

func applyPoolDefaults(opt *redis.Options) {
	if opt.PoolSize == 0 {
		opt.PoolSize = defaultPoolSize
	}
	if opt.MinIdleConns == 0 {
		opt.MinIdleConns = defaultMinIdleConns
	}
	if opt.PoolTimeout == 0 {
		opt.PoolTimeout = defaultPoolTimeout
	}
	if opt.ConnMaxIdleTime == 0 {
		opt.ConnMaxIdleTime = defaultConnMaxIdleTime
	}
}

// Ping satisfies the readiness check.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the raw client so integration tests can flush buckets.
func (c *Cache) Client() *redis.Client {
	return c.client
}
