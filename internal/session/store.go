package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	"github.com/medipharm/medipharm-console/internal/ports"
)

// Durable key names. They are namespaced per browser session by the Store.
const (
	KeyUser         = "MedipharmLoggedUser"
	KeyAccessToken  = "jwtMedipharmAccessToken"
	KeyRefreshToken = "jwtMedipharmRefreshToken"
)

// Store gives cached read/write access to one browser session's identity and
// token pair. It is the only component that touches the three session keys.
//
// Remove* deletes durable data only; ClearCache forces the next Get* to re-read.
// Storage failures never escape; they are logged and reads degrade to absent.
type Store struct {
	kv        ports.KeyValueStore
	namespace string
	logger    *slog.Logger

	mu           sync.Mutex
	user         *domainauth.Identity
	token        *string
	refreshToken *string
	readFailed   bool
}

// StoreOptions groups constructor parameters.
type StoreOptions struct {
	KV ports.KeyValueStore
	// Namespace is prepended to every key, e.g. "medipharm:session:<sid>:".
	Namespace string
	Logger    *slog.Logger
}

// NewStore creates a Store over the given key-value persistence.
func NewStore(opts StoreOptions) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		kv:        opts.KV,
		namespace: opts.Namespace,
		logger:    logger.With("component", "session_store"),
	}
}

// Key returns the fully qualified durable key for name.
func (s *Store) Key(name string) string { return s.namespace + name }

// GetUser returns the cached identity, reading durable storage on a cache miss.
func (s *Store) GetUser(ctx context.Context) (domainauth.Identity, bool) {
	id, ok, err := s.readUser(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable user record", "error", err)
		return domainauth.Identity{}, false
	}
	return id, ok
}

// GetToken returns the cached access token, reading durable storage on a cache miss.
func (s *Store) GetToken(ctx context.Context) (string, bool) {
	return s.readString(ctx, KeyAccessToken, &s.token)
}

// GetRefreshToken returns the cached refresh token, reading durable storage on a cache miss.
func (s *Store) GetRefreshToken(ctx context.Context) (string, bool) {
	return s.readString(ctx, KeyRefreshToken, &s.refreshToken)
}

// SetUser writes the identity through to durable storage and updates its cache entry.
func (s *Store) SetUser(ctx context.Context, id domainauth.Identity) {
	if err := s.writeUser(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "persist user failed", "error", err)
	}
}

// SetToken writes the access token through to durable storage.
func (s *Store) SetToken(ctx context.Context, token string) {
	if err := s.writeString(ctx, KeyAccessToken, token, &s.token); err != nil {
		s.logger.ErrorContext(ctx, "persist access token failed", "error", err)
	}
}

// SetRefreshToken writes the refresh token through to durable storage.
func (s *Store) SetRefreshToken(ctx context.Context, token string) {
	if err := s.writeString(ctx, KeyRefreshToken, token, &s.refreshToken); err != nil {
		s.logger.ErrorContext(ctx, "persist refresh token failed", "error", err)
	}
}

// RemoveUser deletes the durable user record. The cache is left untouched.
func (s *Store) RemoveUser(ctx context.Context) { s.remove(ctx, KeyUser) }

// RemoveToken deletes the durable access token. The cache is left untouched.
func (s *Store) RemoveToken(ctx context.Context) { s.remove(ctx, KeyAccessToken) }

// RemoveRefreshToken deletes the durable refresh token. The cache is left untouched.
func (s *Store) RemoveRefreshToken(ctx context.Context) { s.remove(ctx, KeyRefreshToken) }

// ClearCache discards all cached values so the next reads hit durable storage.
func (s *Store) ClearCache() {
	s.mu.Lock()
	s.user, s.token, s.refreshToken = nil, nil, nil
	s.mu.Unlock()
}

// persist writes the identity and both tokens, reporting the first failures.
// Login uses it to detect partial persistence.
func (s *Store) persist(ctx context.Context, id domainauth.Identity, token, refresh string) error {
	return errors.Join(
		s.writeUser(ctx, id),
		s.writeString(ctx, KeyAccessToken, token, &s.token),
		s.writeString(ctx, KeyRefreshToken, refresh, &s.refreshToken),
	)
}

func (s *Store) readUser(ctx context.Context) (domainauth.Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user != nil {
		return *s.user, true, nil
	}
	raw, ok := s.load(ctx, KeyUser)
	if !ok {
		return domainauth.Identity{}, false, nil
	}
	var id domainauth.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return domainauth.Identity{}, false, fmt.Errorf("decode %s: %w", KeyUser, err)
	}
	if err := id.Validate(); err != nil {
		return domainauth.Identity{}, false, fmt.Errorf("decode %s: %w", KeyUser, err)
	}
	s.user = &id
	return id, true, nil
}

func (s *Store) readString(ctx context.Context, name string, cell **string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if *cell != nil {
		return **cell, true
	}
	raw, ok := s.load(ctx, name)
	if !ok || raw == "" {
		return "", false
	}
	*cell = &raw
	return raw, true
}

// load reads one durable key. Caller must hold s.mu.
func (s *Store) load(ctx context.Context, name string) (string, bool) {
	raw, err := s.kv.Get(ctx, s.Key(name))
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			s.readFailed = true
			s.logger.WarnContext(ctx, "session read failed", "key", name, "error", err)
		}
		return "", false
	}
	return raw, true
}

// takeReadFailure reports whether a durable read failed since the last call.
func (s *Store) takeReadFailure() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	failed := s.readFailed
	s.readFailed = false
	return failed
}

func (s *Store) writeUser(ctx context.Context, id domainauth.Identity) error {
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyUser, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, s.Key(KeyUser), string(data)); err != nil {
		return fmt.Errorf("write %s: %w", KeyUser, err)
	}
	s.user = &id
	return nil
}

func (s *Store) writeString(ctx context.Context, name, value string, cell **string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, s.Key(name), value); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	*cell = &value
	return nil
}

func (s *Store) remove(ctx context.Context, name string) {
	if err := s.kv.Delete(ctx, s.Key(name)); err != nil {
		s.logger.WarnContext(ctx, "session remove failed", "key", name, "error", err)
	}
}
