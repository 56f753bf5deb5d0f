package kv

import (
	"context"
	"errors"
)

// Compile-time interface check.
var _ Store = (*TieredStore)(nil)

// TieredStore wraps an in-memory store (fast path) with a persistent backend
// (durable path). Writes go to both stores (write-through); reads check memory
// first and fall back to the persistent store on a miss.
type TieredStore struct {
	memory     *MemoryStore
	persistent Store
}

// NewTieredStore creates a TieredStore backed by the given persistent store.
// An internal MemoryStore is created automatically.
func NewTieredStore(persistent Store) *TieredStore {
	return &TieredStore{
		memory:     NewMemoryStore(),
		persistent: persistent,
	}
}

// Set writes to the persistent backend first, then to memory, so memory
// never holds a value the backend rejected.
func (t *TieredStore) Set(ctx context.Context, key string, value []byte) error {
	if err := t.persistent.Set(ctx, key, value); err != nil {
		return err
	}
	return t.memory.Set(ctx, key, value)
}

// Get reads from memory first. On a miss it falls back to the persistent
// store and backfills memory.
func (t *TieredStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := t.memory.Get(ctx, key)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	v, err = t.persistent.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	// MemoryStore.Set cannot fail.
	_ = t.memory.Set(ctx, key, v)
	return v, nil
}

// Delete removes the value from both stores.
func (t *TieredStore) Delete(ctx context.Context, key string) error {
	_ = t.memory.Delete(ctx, key)
	return t.persistent.Delete(ctx, key)
}

// Close closes the persistent backend. The in-memory store needs no cleanup.
func (t *TieredStore) Close() error {
	return t.persistent.Close()
}
