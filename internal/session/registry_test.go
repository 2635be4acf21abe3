package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/medipharm/medipharm-console/internal/adapters/memory"
	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	authmocks "github.com/medipharm/medipharm-console/internal/mocks/auth"
	"github.com/medipharm/medipharm-console/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(capacity int, ttl time.Duration, now func() time.Time) *Registry {
	return NewRegistry(RegistryConfig{
		Capacity: capacity,
		IdleTTL:  ttl,
		Now:      now,
		KV:       memory.NewKVStore(memory.KVStoreConfig{}),
		Auth:     authmocks.NewStubAuthAPI(),
	})
}

func TestRegistry_AcquireReturnsSameSession(t *testing.T) {
	r := newTestRegistry(4, 0, nil)
	id := NewID()

	a := r.Acquire(id)
	b := r.Acquire(id)
	assert.Same(t, a, b)
	assert.Equal(t, id, a.ID)

	stats := r.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestRegistry_NamespacesKeysPerSession(t *testing.T) {
	r := newTestRegistry(4, 0, nil)
	ctx := context.Background()
	a := r.Acquire("11111111-1111-1111-1111-111111111111")
	b := r.Acquire("22222222-2222-2222-2222-222222222222")

	a.EnsureHydrated(ctx)
	b.EnsureHydrated(ctx)
	require.True(t, a.Provider.Login(ctx, domainauth.Credentials{Email: "a@b.com", Password: "x"}).Success)

	assert.Equal(t, "medipharm:session:11111111-1111-1111-1111-111111111111:jwtMedipharmAccessToken",
		a.Store.Key(KeyAccessToken))
	_, ok := b.Store.GetToken(ctx)
	assert.False(t, ok)
	assert.True(t, a.Provider.IsAuthenticated())
	assert.False(t, b.Provider.IsAuthenticated())
}

func TestRegistry_EvictedSessionRehydrates(t *testing.T) {
	r := newTestRegistry(1, 0, nil)
	ctx := context.Background()
	first := "11111111-1111-1111-1111-111111111111"

	s := r.Acquire(first)
	s.EnsureHydrated(ctx)
	require.True(t, s.Provider.Login(ctx, domainauth.Credentials{Email: "a@b.com", Password: "x"}).Success)

	r.Acquire("22222222-2222-2222-2222-222222222222")
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, uint64(1), r.Stats().Evictions, "capacity 1 evicts the older session")

	again := r.Acquire(first)
	assert.NotSame(t, s, again)
	assert.True(t, again.Provider.Loading())
	again.EnsureHydrated(ctx)
	assert.True(t, again.Provider.IsAuthenticated(), "durable state survives eviction")
}

func TestRegistry_IdleExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := newTestRegistry(4, time.Minute, func() time.Time { return now })
	id := NewID()

	a := r.Acquire(id)
	now = now.Add(30 * time.Second)
	assert.Same(t, a, r.Acquire(id))

	now = now.Add(2 * time.Minute)
	assert.NotSame(t, a, r.Acquire(id))
	assert.Equal(t, uint64(2), r.Stats().Misses)
}

func TestRegistry_Forget(t *testing.T) {
	r := newTestRegistry(4, 0, nil)
	id := NewID()
	r.Acquire(id)

	assert.True(t, r.Forget(id))
	assert.False(t, r.Forget(id))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_ConcurrentAcquire(t *testing.T) {
	r := newTestRegistry(8, 0, nil)
	id := NewID()
	ctx := context.Background()

	var wg sync.WaitGroup
	got := make([]*Session, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := r.Acquire(id)
			s.EnsureHydrated(ctx)
			got[i] = s
		}(i)
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
		assert.False(t, s.Provider.Loading())
	}
}

// flakyKV fails the first n reads and honours context cancellation the way
// a network-backed store does.
type flakyKV struct {
	ports.KeyValueStore
	mu    sync.Mutex
	fails int
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	if f.fails > 0 {
		f.fails--
		f.mu.Unlock()
		return "", errors.New("redis: connection pool timeout")
	}
	f.mu.Unlock()
	return f.KeyValueStore.Get(ctx, key)
}

func loggedInRegistry(t *testing.T, kv *flakyKV) (*Registry, string) {
	t.Helper()
	r := NewRegistry(RegistryConfig{Capacity: 4, KV: kv, Auth: authmocks.NewStubAuthAPI()})
	id := NewID()
	s := r.Acquire(id)
	s.EnsureHydrated(context.Background())
	require.True(t, s.Provider.Login(context.Background(), domainauth.Credentials{Email: "a@b.com", Password: "x"}).Success)
	require.True(t, r.Forget(id))
	return r, id
}

func TestSession_HydrationRetriesAfterReadFailure(t *testing.T) {
	kv := &flakyKV{KeyValueStore: memory.NewKVStore(memory.KVStoreConfig{})}
	r, id := loggedInRegistry(t, kv)
	ctx := context.Background()

	kv.fails = 1
	s := r.Acquire(id)
	s.EnsureHydrated(ctx)
	assert.False(t, s.Provider.IsAuthenticated(), "failed read degrades to anonymous")

	s.EnsureHydrated(ctx)
	assert.True(t, s.Provider.IsAuthenticated(), "next request hydrates again")

	kv.fails = 5
	s.EnsureHydrated(ctx)
	assert.True(t, s.Provider.IsAuthenticated(), "a clean hydration is not repeated")
}

func TestSession_HydrationIgnoresCancelledRequest(t *testing.T) {
	kv := &flakyKV{KeyValueStore: memory.NewKVStore(memory.KVStoreConfig{})}
	r, id := loggedInRegistry(t, kv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := r.Acquire(id)
	s.EnsureHydrated(ctx)
	assert.True(t, s.Provider.IsAuthenticated())
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID(NewID()))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("../../etc"))
	assert.False(t, ValidID("urn:uuid:11111111-1111-1111-1111-111111111111"))
}
