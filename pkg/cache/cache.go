// Package cache is a JSON-over-Redis read-through cache. A Store with no
// client is valid and behaves as a permanent miss, so the API keeps serving
// when Redis is down.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bistrobuzz/bistro/pkg/metrics"
)

// Store wraps a Redis client. The zero value is a no-op cache.
type Store struct {
	rdb *redis.Client
}

// New wraps an existing client. A nil client yields a no-op cache.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Connect dials Redis and verifies the connection with a ping. On failure the
// returned Store is a usable no-op alongside the error, so callers can log a
// warning and continue.
func Connect(ctx context.Context, addr, password string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return &Store{}, fmt.Errorf("cache: redis ping: %w", err)
	}
	return &Store{rdb: rdb}, nil
}

// Enabled reports whether a Redis client is attached.
func (s *Store) Enabled() bool { return s != nil && s.rdb != nil }

// Get unmarshals the value stored under key into dest.
// Returns true on a hit, false on a miss or any error.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}

	val, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil || json.Unmarshal(val, dest) != nil {
		metrics.CacheMisses.WithLabelValues(key).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(key).Inc()
	return true
}

// Set stores value under key for ttl.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, data, ttl).Err()
}

// Del removes keys.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if !s.Enabled() {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.rdb.Close()
}
