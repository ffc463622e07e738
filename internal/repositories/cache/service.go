// Package cache provides a Redis-backed JSON cache used for invoice lookups
// and market-sentiment snapshots.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Service wraps a Redis client with JSON marshalling and hit/miss counters.
type Service struct {
	client     *redis.Client
	defaultTTL time.Duration
	hits       int64
	misses     int64
}

func NewService(client *redis.Client, defaultTTL time.Duration) *Service {
	return &Service{client: client, defaultTTL: defaultTTL}
}

// GetJSON reads a key and unmarshals it into dest. Returns ErrCacheMiss when
// the key does not exist.
func (s *Service) GetJSON(ctx context.Context, key string, dest interface{}) error {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		atomic.AddInt64(&s.misses, 1)
		return ErrCacheMiss
	}
	if err != nil {
		atomic.AddInt64(&s.misses, 1)
		return err
	}

	atomic.AddInt64(&s.hits, 1)
	return json.Unmarshal([]byte(val), dest)
}

// SetJSON marshals value and stores it under key. A zero ttl uses the
// service default.
func (s *Service) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *Service) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *Service) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *Service) Close() error {
	return s.client.Close()
}

// Stats returns the hit/miss counters since startup.
func (s *Service) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&s.hits), atomic.LoadInt64(&s.misses)
}

// PoolStats exposes the underlying connection-pool statistics.
func (s *Service) PoolStats() *redis.PoolStats {
	return s.client.PoolStats()
}
