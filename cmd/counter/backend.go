package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ryhazerus/dedux/internal/config"
	"github.com/ryhazerus/dedux/kv"
	"github.com/ryhazerus/dedux/kv/redis"
	"github.com/ryhazerus/dedux/persist"
)

// openBackend returns the kv.Store named by cfg.Backend.
func openBackend(ctx context.Context, cfg config.StorageConfig, codec persist.Codec) (kv.Store, error) {
	var (
		store kv.Store
		err   error
	)

	switch cfg.Backend {
	case "memory":
		store = kv.NewMemoryStore()
	case "sqlite":
		store, err = kv.NewSQLiteStore(cfg.DSN)
	case "file":
		store, err = kv.NewFileStore(cfg.Dir, codec.Ext())
	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err = client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		store = redis.NewRedisStore(client, 0)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Tiered && cfg.Backend != "memory" {
		store = kv.NewTieredStore(store)
	}
	return store, nil
}
