package session

import (
	"container/list"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/medipharm/medipharm-console/internal/ports"
)

// Session bundles the store and provider of one browser session.
type Session struct {
	ID       string
	Store    *Store
	Provider *Provider

	hydrateMu sync.Mutex
	hydrated  bool
}

// EnsureHydrated hydrates the provider until one attempt reads durable
// storage without a storage error. Cancelling ctx does not abort hydration.
func (s *Session) EnsureHydrated(ctx context.Context) {
	s.hydrateMu.Lock()
	defer s.hydrateMu.Unlock()
	if s.hydrated {
		return
	}
	s.Store.takeReadFailure()
	s.Provider.Hydrate(context.WithoutCancel(ctx))
	s.hydrated = !s.Store.takeReadFailure()
}

// NewID returns a fresh opaque browser session id.
func NewID() string { return uuid.NewString() }

// ValidID reports whether id looks like an id issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

// Registry keeps the live Session instances in a bounded LRU with idle expiry.
// Evicting an entry only drops in-memory caches; durable state survives and
// is re-hydrated on the next request.
// Concurrency: methods are safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	cap   int
	ttl   time.Duration
	ll    *list.List               // front = most-recently used
	items map[string]*list.Element // id -> element
	now   func() time.Time

	kv        ports.KeyValueStore
	auth      ports.AuthAPI
	keyPrefix string
	logger    *slog.Logger
	observer  Observer

	hits   atomic.Uint64
	misses atomic.Uint64
	evicts atomic.Uint64
}

type registryEntry struct {
	sess     *Session
	lastSeen time.Time
}

// RegistryConfig groups constructor options.
type RegistryConfig struct {
	Capacity  int
	IdleTTL   time.Duration
	Now       func() time.Time
	KV        ports.KeyValueStore
	Auth      ports.AuthAPI
	KeyPrefix string
	Logger    *slog.Logger
	Observer  Observer
}

// DefaultKeyPrefix namespaces session keys in shared stores.
const DefaultKeyPrefix = "medipharm:session:"

// NewRegistry creates a registry with the given config.
func NewRegistry(cfg RegistryConfig) *Registry {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 4096
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		cap:       capacity,
		ttl:       cfg.IdleTTL,
		ll:        list.New(),
		items:     make(map[string]*list.Element, capacity),
		now:       nowFn,
		kv:        cfg.KV,
		auth:      cfg.Auth,
		keyPrefix: prefix,
		logger:    logger,
		observer:  cfg.Observer,
	}
}

// Namespace returns the durable key namespace of browser session id.
func (r *Registry) Namespace(id string) string { return r.keyPrefix + id + ":" }

// Acquire returns the live session for id, creating it on a miss.
func (r *Registry) Acquire(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if el, found := r.items[id]; found {
		ent, _ := el.Value.(*registryEntry)
		if ent != nil && !r.isExpired(ent) {
			ent.lastSeen = r.now()
			r.ll.MoveToFront(el)
			r.hits.Add(1)
			return ent.sess
		}
		r.removeElement(el)
	}
	r.misses.Add(1)

	sess := r.newSession(id)
	el := r.ll.PushFront(&registryEntry{sess: sess, lastSeen: r.now()})
	r.items[id] = el
	r.evictIfNeeded()
	return sess
}

// Forget drops the in-memory session for id.
func (r *Registry) Forget(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if el, ok := r.items[id]; ok {
		r.removeElement(el)
		return true
	}
	return false
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ll.Len()
}

// RegistryStats are simple counters for observability.
type RegistryStats struct {
	Hits, Misses, Evictions uint64
	Size, Capacity          int
}

// Stats returns a snapshot of counters and sizes.
func (r *Registry) Stats() RegistryStats {
	return RegistryStats{
		Hits:      r.hits.Load(),
		Misses:    r.misses.Load(),
		Evictions: r.evicts.Load(),
		Size:      r.Len(),
		Capacity:  r.cap,
	}
}

func (r *Registry) newSession(id string) *Session {
	logger := r.logger.With("sid", shortID(id))
	store := NewStore(StoreOptions{KV: r.kv, Namespace: r.Namespace(id), Logger: logger})
	return &Session{
		ID:       id,
		Store:    store,
		Provider: NewProvider(ProviderOptions{Store: store, Auth: r.auth, Logger: logger, Observer: r.observer}),
	}
}

// Helpers (caller must hold r.mu).
func (r *Registry) isExpired(e *registryEntry) bool {
	if r.ttl <= 0 {
		return false
	}
	return r.now().Sub(e.lastSeen) > r.ttl
}

func (r *Registry) removeElement(el *list.Element) {
	r.ll.Remove(el)
	if ent, ok := el.Value.(*registryEntry); ok {
		delete(r.items, ent.sess.ID)
	}
}

func (r *Registry) evictIfNeeded() {
	for r.ll.Len() > r.cap {
		el := r.ll.Back()
		if el == nil {
			return
		}
		r.removeElement(el)
		r.evicts.Add(1)
	}
}

// shortID keeps log lines readable without printing the full bearer-like id.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
