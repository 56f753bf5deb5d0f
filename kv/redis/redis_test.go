package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ryhazerus/dedux/kv"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreSetGet(t *testing.T) {
	s, mr := newTestRedisStore(t, 0)
	ctx := context.Background()

	if err := s.Set(ctx, "count", []byte("9")); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "count")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "9" {
		t.Errorf("get: got %q, want %q", got, "9")
	}

	raw, err := mr.Get("dedux:count")
	if err != nil {
		t.Fatal(err)
	}
	if raw != "9" {
		t.Errorf("raw redis value: got %q, want %q", raw, "9")
	}
}

func TestRedisStoreGetMissing(t *testing.T) {
	s, _ := newTestRedisStore(t, 0)

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("expected kv.ErrNotFound, got %v", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	s, _ := newTestRedisStore(t, 0)
	ctx := context.Background()

	s.Set(ctx, "key", []byte("v"))
	if err := s.Delete(ctx, "key"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "key"); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("after delete: expected kv.ErrNotFound, got %v", err)
	}
}

func TestRedisStoreTTL(t *testing.T) {
	s, mr := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	if err := s.Set(ctx, "key", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("dedux:key"); ttl != time.Minute {
		t.Errorf("ttl: got %v, want %v", ttl, time.Minute)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := s.Get(ctx, "key"); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("after expiry: expected kv.ErrNotFound, got %v", err)
	}
}
