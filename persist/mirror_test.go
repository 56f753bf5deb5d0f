package persist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryhazerus/dedux/kv"
)

type settings struct {
	Theme string `json:"theme" yaml:"theme"`
	Size  int    `json:"size" yaml:"size"`
}

func TestMirrorRoundTrip(t *testing.T) {
	for _, codec := range []Codec{JSON, YAML} {
		t.Run(codec.Ext(), func(t *testing.T) {
			ctx := context.Background()
			m, err := NewMirror[settings](kv.NewMemoryStore(), codec, "settings")
			require.NoError(t, err)

			_, ok, err := m.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok)

			want := settings{Theme: "dark", Size: 3}
			require.NoError(t, m.Save(ctx, want))

			got, ok, err := m.Load(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, want, got)
		})
	}
}

func TestMirrorYAMLOnDisk(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	m, err := NewMirror[settings](store, YAML, "settings")
	require.NoError(t, err)

	require.NoError(t, m.Save(ctx, settings{Theme: "light", Size: 1}))

	raw, err := store.Get(ctx, "settings")
	require.NoError(t, err)
	assert.Equal(t, "theme: light\nsize: 1\n", string(raw))
}

func TestMirrorLoadOr(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	m, err := NewMirror[int](store, nil, "count")
	require.NoError(t, err)

	v, err := m.LoadOr(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	require.NoError(t, store.Set(ctx, "count", []byte("not a number")))
	v, err = m.LoadOr(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v, "undecodable values fall back")

	_, _, err = m.Load(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)

	require.NoError(t, m.Save(ctx, 42))
	v, err = m.LoadOr(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

type lockedStore struct{ kv.MemoryStore }

var errLocked = errors.New("database is locked")

func (*lockedStore) Get(context.Context, string) ([]byte, error) { return nil, errLocked }

func TestMirrorLoadOrReturnsBackendErrors(t *testing.T) {
	m, err := NewMirror[int](&lockedStore{}, JSON, "count")
	require.NoError(t, err)

	_, err = m.LoadOr(context.Background(), 7)
	assert.ErrorIs(t, err, errLocked)
	assert.NotErrorIs(t, err, ErrCorrupt)
}

type failingStore struct{ kv.MemoryStore }

var errDown = errors.New("backend down")

func (*failingStore) Set(context.Context, string, []byte) error { return errDown }

func TestMirrorSaveError(t *testing.T) {
	m, err := NewMirror[int](&failingStore{}, JSON, "count")
	require.NoError(t, err)

	err = m.Save(context.Background(), 1)
	assert.ErrorIs(t, err, errDown)
}

func TestMirrorClear(t *testing.T) {
	ctx := context.Background()
	m, err := NewMirror[int](kv.NewMemoryStore(), JSON, "count")
	require.NoError(t, err)

	require.NoError(t, m.Save(ctx, 3))
	require.NoError(t, m.Clear(ctx))

	_, ok, err := m.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewMirrorValidation(t *testing.T) {
	_, err := NewMirror[int](nil, JSON, "count")
	assert.Error(t, err)

	_, err = NewMirror[int](kv.NewMemoryStore(), JSON, "")
	assert.Error(t, err)
}

func TestCodecByName(t *testing.T) {
	c, err := CodecByName("yaml")
	require.NoError(t, err)
	assert.Equal(t, ".yaml", c.Ext())

	c, err = CodecByName("")
	require.NoError(t, err)
	assert.Equal(t, ".json", c.Ext())

	_, err = CodecByName("xml")
	assert.Error(t, err)
}
