package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{name: "http", input: "http", expected: map[ServiceMode]bool{ServiceModeHTTP: true}},
		{name: "sweeper", input: "sweeper", expected: map[ServiceMode]bool{ServiceModeSweeper: true}},
		{
			name:     "both with spaces and duplicates",
			input:    " http , sweeper ,http",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true, ServiceModeSweeper: true},
		},
		{name: "empty string", input: "", expectError: true},
		{name: "only commas", input: " , ,", expectError: true},
		{name: "unknown", input: "http,scheduler", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseServices(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "http://localhost:9090/api/v1", cfg.Backend.APIURL)
	assert.Equal(t, BackendModeHTTP, cfg.Backend.Mode)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, "medipharm:session:", cfg.Session.KeyPrefix)
	assert.Equal(t, "medipharm_sid", cfg.Session.CookieName)
	assert.Equal(t, 4096, cfg.Session.RegistryCapacity)
	assert.Equal(t, "medipharm_console", cfg.Postgres.Name)
	assert.True(t, cfg.IsHTTPServerEnabled())
	assert.False(t, cfg.IsSweeperEnabled())
	assert.True(t, cfg.Observability.Metrics.PrometheusEnabled)
	assert.NoError(t, cfg.Validate())
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("API_URL", "https://api.medipharm.cg/api/v1/ ")
	t.Setenv("BACKEND_MODE", "MOCK")
	t.Setenv("DEV_AUTH_EMAIL", "ops@medipharm.cg")
	t.Setenv("DEV_AUTH_ROLE", "PHARMACY_ADMIN")
	t.Setenv("SESSION_BACKEND", "postgres")
	t.Setenv("SESSION_KEY_PREFIX", "console")
	t.Setenv("SESSION_REGISTRY_CAPACITY", "2")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_CLUSTER_NODES", "r1:6379,r2:6379")
	t.Setenv("SERVICES", "http,sweeper")
	t.Setenv("LOG_LEVEL", " DEBUG ")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "https://api.medipharm.cg/api/v1", cfg.Backend.APIURL)
	assert.Equal(t, BackendModeMock, cfg.Backend.Mode)
	assert.Equal(t, "ops@medipharm.cg", cfg.Backend.DevAuth.Email)
	assert.Equal(t, "PHARMACY_ADMIN", cfg.Backend.DevAuth.Role)
	assert.Equal(t, SessionBackendPostgres, cfg.Session.Backend)
	assert.Equal(t, "console:", cfg.Session.KeyPrefix)
	assert.Equal(t, 16, cfg.Session.RegistryCapacity, "capacity is clamped")
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, []string{"r1:6379", "r2:6379"}, cfg.Redis.ClusterNodes)
	assert.True(t, cfg.IsSweeperEnabled())
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestAppConfig_RejectsBadEnums(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "etcd")
	var cfg AppConfig
	assert.Error(t, env.Parse(&cfg))

	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("BACKEND_MODE", "grpc")
	cfg = AppConfig{}
	assert.Error(t, env.Parse(&cfg))
}

func TestAppConfig_Validate(t *testing.T) {
	cfg := AppConfig{Services: "http", Backend: BackendConfig{APIURL: "localhost:9090"}}
	assert.ErrorContains(t, cfg.Validate(), "API_URL")

	cfg = AppConfig{Services: "reaper", Backend: BackendConfig{APIURL: "http://api"}}
	assert.ErrorContains(t, cfg.Validate(), "invalid service name")

	cfg = AppConfig{Services: "sweeper", Session: SessionConfig{Backend: SessionBackendPostgres}}
	assert.ErrorContains(t, cfg.Validate(), "DB_NAME")
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "h", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "require"}
	assert.Equal(t, "host=h port=5433 user=u password=p dbname=n sslmode=require", c.DSN())
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	h := HTTPConfig{CompressionLevel: 42}
	h.Sanitize()
	assert.Equal(t, 9, h.CompressionLevel)
	assert.Equal(t, 10*time.Second, h.ReadHeaderTimeout)

	h = HTTPConfig{CompressionLevel: -1, LoginAttemptsPerMinute: -3}
	h.Sanitize()
	assert.Equal(t, 1, h.CompressionLevel)
	assert.Zero(t, h.LoginAttemptsPerMinute)
	assert.Equal(t, 1, h.LoginBurst)
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	c := ObservabilityMetricsConfig{StatsdEnabled: true, StatsdAddress: "  "}
	c.Sanitize()
	assert.False(t, c.StatsdActive())

	c = ObservabilityMetricsConfig{StatsdEnabled: true, StatsdAddress: " 127.0.0.1:8125 "}
	c.Sanitize()
	assert.True(t, c.StatsdActive())
	assert.Equal(t, "127.0.0.1:8125", c.StatsdAddress)
}

func TestLoggingConfig(t *testing.T) {
	c := LoggingConfig{Level: "WARN", Format: "yaml"}
	c.Sanitize()
	assert.Equal(t, "json", c.Format)
	assert.Equal(t, "warn", c.Level)
	assert.Equal(t, "WARN", c.SlogLevel().String())
}
