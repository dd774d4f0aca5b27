// Package redis implements [cache.Cache] on top of Redis, for
// deployments that share a construction-outcome cache across multiple
// CLI or server instances. The in-process [cache.FileCache] is fine for
// a single machine; this package is the multi-instance analogue,
// grounded on the Redis-backed session store documented (but not
// included) in the teacher's pkg/session package.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/openpra/pdag/pkg/cache"
)

// Config configures a Redis-backed cache.
type Config struct {
	// Addr is the Redis server address, e.g. "localhost:6379".
	Addr string

	// Password authenticates with the Redis server, if set.
	Password string

	// DB selects the Redis logical database.
	DB int

	// KeyPrefix namespaces every key this store touches, so one Redis
	// instance can be shared by multiple deployments.
	KeyPrefix string
}

// Store is a Redis-backed [cache.Cache].
type Store struct {
	client *goredis.Client
	prefix string
}

// NewStore connects to Redis and returns a ready-to-use [cache.Cache].
func NewStore(ctx context.Context, cfg Config) (cache.Cache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := cache.RetryWithBackoff(ctx, func() error {
		return cache.Retryable(client.Ping(ctx).Err())
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return &Store{client: client, prefix: cfg.KeyPrefix}, nil
}

func (s *Store) fullKey(key string) string { return s.prefix + key }

// Get retrieves a value, returning ok=false on a miss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.fullKey(key)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, cache.Retryable(err)
	}
	return data, true, nil
}

// Set stores a value. ttl <= 0 means no expiration.
func (s *Store) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.fullKey(key), data, ttl).Err(); err != nil {
		return cache.Retryable(err)
	}
	return nil
}

// Delete removes a value. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.fullKey(key)).Err(); err != nil {
		return cache.Retryable(err)
	}
	return nil
}

// Close closes the underlying Redis connection.
func (s *Store) Close() error { return s.client.Close() }

var _ cache.Cache = (*Store)(nil)
