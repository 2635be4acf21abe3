package redis

// Package redis provides Redis-based adapters for the medipharm console.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/medipharm/medipharm-console/internal/ports"
	"github.com/redis/go-redis/v9"
)

var (
	_ ports.KeyValueStore = (*KVStore)(nil)
	_ ports.KeyLister     = (*KVStore)(nil)
)

// KVStore is the Redis-backed durable key-value store for browser session state.
// Every write refreshes the key's TTL so idle sessions expire on their own.
type KVStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// KVStoreOptions groups constructor parameters.
type KVStoreOptions struct {
	Client redis.UniversalClient
	// TTL applied on every Set. Zero keeps keys until deleted.
	TTL time.Duration
}

// NewKVStore creates a new Redis-backed key-value store.
func NewKVStore(opts KVStoreOptions) *KVStore {
	return &KVStore{client: opts.Client, ttl: opts.TTL}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ports.ErrKeyNotFound
	}
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrKeyNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Keys scans for keys starting with prefix. Glob metacharacters in prefix are escaped.
func (s *KVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	pattern := escapeGlob(prefix) + "*"
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := s.client.Scan(ctx, cursor, pattern, 500).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan: %w", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

func escapeGlob(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}
