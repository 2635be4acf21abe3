package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when a key is absent.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the durable string key-value primitive the console
// persists browser-scoped state in. Values are opaque to the store.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// KeyLister is implemented by stores that can enumerate keys by prefix.
// It is used by operational tooling, never on the request path.
type KeyLister interface {
	Keys(ctx context.Context, prefix string) ([]string, error)
}
