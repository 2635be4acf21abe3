package config

import (
	"fmt"
	"strings"
	"time"
)

// BackendMode selects who answers login requests.
type BackendMode string

const (
	// BackendModeHTTP logs in against the pharmacy API.
	BackendModeHTTP BackendMode = "http"
	// BackendModeMock logs in against a single configured dev account
	// (for development only). Data pages still call the API.
	BackendModeMock BackendMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for BackendMode.
func (m *BackendMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "http", "mock":
		*m = BackendMode(v)
		return nil
	default:
		return fmt.Errorf("invalid BackendMode: %q (valid options: http, mock)", v)
	}
}

// BackendConfig contains the pharmacy API client configuration.
type BackendConfig struct {
	// APIURL is the API root every backend path is appended to.
	APIURL string `env:"API_URL" envDefault:"http://localhost:9090/api/v1"`

	// Timeout bounds each backend call.
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`

	UserAgent string `env:"BACKEND_USER_AGENT" envDefault:"medipharm-console"`

	Mode BackendMode `env:"BACKEND_MODE" envDefault:"http"`

	// DevAuth is used when Mode=mock.
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.APIURL = strings.TrimRight(strings.TrimSpace(b.APIURL), "/")
	if b.Timeout <= 0 {
		b.Timeout = 15 * time.Second
	}
	if b.Mode == "" {
		b.Mode = BackendModeHTTP
	}
}

// DevAuthConfig is the account accepted when BACKEND_MODE=mock.
type DevAuthConfig struct {
	UserID   string `env:"USER_ID"   envDefault:"dev-user"`
	Email    string `env:"EMAIL"     envDefault:"dev@example.com"`
	Password string `env:"PASSWORD"  envDefault:"medipharm"`
	FullName string `env:"FULL_NAME" envDefault:"Dev Operator"`
	Role     string `env:"ROLE"      envDefault:"SUPER_ADMIN"`
	// TokenTTL is the lifetime stamped into the dev access token.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"8h"`
}
