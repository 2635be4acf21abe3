package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// AppConfig is the console configuration, composed from the domain-specific
// structs in this package and loaded from environment variables with
// github.com/caarlos0/env. See the individual files for variables:
//   - http.go: console HTTP server and cookies
//   - backend.go: pharmacy API endpoint and login mode
//   - session.go: browser session persistence
//   - database.go: PostgreSQL and Redis connections
//   - services.go: which services this process runs
//   - observability.go: logging and metrics
type AppConfig struct {
	// IsDev relaxes cookie security and enables verbose logging.
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	HTTP    HTTPConfig
	Backend BackendConfig
	Session SessionConfig

	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// Services is a comma-delimited list of services to run.
	Services string `env:"SERVICES" envDefault:"http"`
	Sweeper  SweeperConfig

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to values loaded from env.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Backend.Sanitize()
	c.Session.Sanitize()
	c.Sweeper.Sanitize()
	c.Observability.Sanitize()
	c.detectDevMode()
}

// Validate reports configuration that would prevent the console from serving.
func (c *AppConfig) Validate() error {
	var errs []error
	if _, err := ParseServices(c.Services); err != nil {
		errs = append(errs, err)
	}
	if c.IsHTTPServerEnabled() {
		u, err := url.Parse(c.Backend.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("API_URL must be an absolute http(s) URL, got %q", c.Backend.APIURL))
		}
	}
	if c.Session.Backend == SessionBackendPostgres && c.Postgres.Name == "" {
		errs = append(errs, errors.New("DB_NAME is required when SESSION_BACKEND=postgres"))
	}
	return errors.Join(errs...)
}

// detectDevMode falls back to NODE_ENV, which the frontend tooling sets.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// IsHTTPServerEnabled returns true if the console HTTP server should run.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	return c.IsServiceEnabled(ServiceModeHTTP)
}

// IsSweeperEnabled returns true if the expired-session sweeper should run.
func (c *AppConfig) IsSweeperEnabled() bool {
	return c.IsServiceEnabled(ServiceModeSweeper)
}

// IsServiceEnabled reports whether mode is listed in SERVICES.
func (c *AppConfig) IsServiceEnabled(mode ServiceMode) bool {
	services, err := ParseServices(c.Services)
	if err != nil {
		return false
	}
	return services[mode]
}
