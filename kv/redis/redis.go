// Package redis provides a kv.Store backed by Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ryhazerus/dedux/kv"
)

// Compile-time interface check.
var _ kv.Store = (*RedisStore)(nil)

// RedisStore is a kv.Store backed by Redis. Each key is stored as a plain
// Redis string under a "dedux:" prefix.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a new Redis-backed store. A ttl of zero keeps values
// until they are deleted.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get returns the value stored under key.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv/redis: get: %w", err)
	}
	return v, nil
}

// Set stores value under key, refreshing the TTL if one is configured.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, redisKey(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("kv/redis: set: %w", err)
	}
	return nil
}

// Delete removes the value for key.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, redisKey(key)).Err()
}

// Close closes the underlying Redis client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func redisKey(key string) string {
	return "dedux:" + key
}
