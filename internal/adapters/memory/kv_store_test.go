package memory

import (
	"context"
	"testing"
	"time"

	"github.com/medipharm/medipharm-console/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_RoundTrip(t *testing.T) {
	s := NewKVStore(KVStoreConfig{})
	ctx := context.Background()

	_, err := s.Get(ctx, "k")
	require.ErrorIs(t, err, ports.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "k", "v"))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestKVStore_RejectsEmptyKey(t *testing.T) {
	s := NewKVStore(KVStoreConfig{})
	assert.Error(t, s.Set(context.Background(), "", "v"))
}

func TestKVStore_TTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewKVStore(KVStoreConfig{TTL: time.Minute, Now: func() time.Time { return now }})
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a:1", "v"))
	keys, err := s.Keys(ctx, "a:")
	require.NoError(t, err)
	assert.Equal(t, []string{"a:1"}, keys)

	now = now.Add(2 * time.Minute)
	_, err = s.Get(ctx, "a:1")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)

	keys, err = s.Keys(ctx, "a:")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
