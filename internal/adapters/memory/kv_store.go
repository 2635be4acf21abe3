package memory

// Package memory provides in-process adapters for development and tests.

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/medipharm/medipharm-console/internal/ports"
)

var (
	_ ports.KeyValueStore = (*KVStore)(nil)
	_ ports.KeyLister     = (*KVStore)(nil)
)

type kvEntry struct {
	value  string
	expiry time.Time // zero means no expiry
}

// KVStore is an in-memory key-value store. State is lost on restart, so it is
// only suitable for a single console instance.
// Concurrency: methods are safe for concurrent use.
type KVStore struct {
	mu    sync.RWMutex
	items map[string]kvEntry
	ttl   time.Duration
	now   func() time.Time
}

// KVStoreConfig groups constructor options.
type KVStoreConfig struct {
	TTL time.Duration
	Now func() time.Time
}

// NewKVStore creates an empty in-memory store.
func NewKVStore(cfg KVStoreConfig) *KVStore {
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &KVStore{items: make(map[string]kvEntry), ttl: cfg.TTL, now: nowFn}
}

func (s *KVStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	ent, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || s.expired(ent) {
		return "", ports.ErrKeyNotFound
	}
	return ent.value, nil
}

func (s *KVStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	var exp time.Time
	if s.ttl > 0 {
		exp = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.items[key] = kvEntry{value: value, expiry: exp}
	s.mu.Unlock()
	return nil
}

func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

// Keys returns live keys starting with prefix in sorted order.
func (s *KVStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for k, ent := range s.items {
		if strings.HasPrefix(k, prefix) && !s.expired(ent) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of stored entries including expired ones not yet overwritten.
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *KVStore) expired(e kvEntry) bool {
	return !e.expiry.IsZero() && s.now().After(e.expiry)
}
