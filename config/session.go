package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionBackend selects the durable key-value store for browser sessions.
type SessionBackend string

const (
	SessionBackendMemory   SessionBackend = "memory"
	SessionBackendRedis    SessionBackend = "redis"
	SessionBackendPostgres SessionBackend = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (b *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "redis", "postgres":
		*b = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: memory, redis, postgres)", v)
	}
}

// SessionConfig controls browser session persistence.
type SessionConfig struct {
	Backend SessionBackend `env:"SESSION_BACKEND" envDefault:"redis"`

	// TTL is how long durable session keys live without being rewritten.
	// Zero keeps them until logout.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`

	// KeyPrefix namespaces session keys in shared stores.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"medipharm:session:"`

	// CookieName is the name of the browser session id cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"medipharm_sid"`

	// RegistryCapacity bounds the live sessions held in memory.
	RegistryCapacity int `env:"SESSION_REGISTRY_CAPACITY" envDefault:"4096"`

	// RegistryIdleTTL drops in-memory sessions idle for longer; durable
	// state survives and is re-hydrated on the next request.
	RegistryIdleTTL time.Duration `env:"SESSION_REGISTRY_IDLE_TTL" envDefault:"30m"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.Backend == "" {
		s.Backend = SessionBackendRedis
	}
	if s.TTL < 0 {
		s.TTL = 0
	}
	if s.KeyPrefix = strings.TrimSpace(s.KeyPrefix); s.KeyPrefix == "" {
		s.KeyPrefix = "medipharm:session:"
	}
	if !strings.HasSuffix(s.KeyPrefix, ":") {
		s.KeyPrefix += ":"
	}
	if s.CookieName = strings.TrimSpace(s.CookieName); s.CookieName == "" {
		s.CookieName = "medipharm_sid"
	}
	if s.RegistryCapacity < 16 {
		s.RegistryCapacity = 16
	}
	if s.RegistryIdleTTL < time.Minute {
		s.RegistryIdleTTL = time.Minute
	}
}
