// Package persist mirrors a store's state into a kv.Store so it survives
// restarts.
package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/ryhazerus/dedux/kv"
)

// ErrCorrupt is wrapped by Load when the saved bytes cannot be decoded.
var ErrCorrupt = errors.New("persist: saved value cannot be decoded")

// Mirror saves and loads values of type S under a single key.
type Mirror[S any] struct {
	store kv.Store
	codec Codec
	key   string
}

// NewMirror returns a Mirror writing to key in store. A nil codec means JSON.
func NewMirror[S any](store kv.Store, codec Codec, key string) (*Mirror[S], error) {
	if store == nil {
		return nil, errors.New("persist: nil kv store")
	}
	if key == "" {
		return nil, errors.New("persist: empty key")
	}
	if codec == nil {
		codec = JSON
	}
	return &Mirror[S]{store: store, codec: codec, key: key}, nil
}

// Key returns the key the mirror writes to.
func (m *Mirror[S]) Key() string {
	return m.key
}

// Load returns the saved value. ok is false when nothing has been saved yet.
func (m *Mirror[S]) Load(ctx context.Context) (value S, ok bool, err error) {
	data, err := m.store.Get(ctx, m.key)
	if errors.Is(err, kv.ErrNotFound) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("persist: load %q: %w", m.key, err)
	}
	if err := m.codec.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("%w: key %q: %w", ErrCorrupt, m.key, err)
	}
	return value, true, nil
}

// LoadOr returns the saved value, or fallback when nothing is saved or the
// saved bytes cannot be decoded. Backend errors are returned, since treating
// an unreachable backend as empty would let the next save overwrite real data.
func (m *Mirror[S]) LoadOr(ctx context.Context, fallback S) (S, error) {
	v, ok, err := m.Load(ctx)
	if errors.Is(err, ErrCorrupt) {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	return v, nil
}

// Save encodes value and writes it under the mirror's key.
func (m *Mirror[S]) Save(ctx context.Context, value S) error {
	data, err := m.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("persist: encode %q: %w", m.key, err)
	}
	if err := m.store.Set(ctx, m.key, data); err != nil {
		return fmt.Errorf("persist: save %q: %w", m.key, err)
	}
	return nil
}

// Clear removes the saved value.
func (m *Mirror[S]) Clear(ctx context.Context) error {
	return m.store.Delete(ctx, m.key)
}
