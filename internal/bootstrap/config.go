package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/medipharm/medipharm-console/config"
)

// InitLogger initializes the structured logger and installs it as the default.
func InitLogger(cfg config.LoggingConfig) *slog.Logger {
	return initLogger(os.Stdout, cfg)
}

func initLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables, reading a .env
// file first when one exists.
func LoadConfig() (config.AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}
	return ParseConfig(env.Options{})
}

// ParseConfig parses and sanitizes the configuration. Tests pass
// Environment to avoid touching the process environment.
func ParseConfig(opts env.Options) (config.AppConfig, error) {
	var cfg config.AppConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// EnabledServices lists the services this process runs, for startup logs.
func EnabledServices(cfg *config.AppConfig) []config.ServiceMode {
	var out []config.ServiceMode
	for _, mode := range config.ValidServiceModes() {
		if cfg.IsServiceEnabled(mode) {
			out = append(out, mode)
		}
	}
	return out
}
