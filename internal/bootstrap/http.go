package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/medipharm/medipharm-console/config"
	httpx "github.com/medipharm/medipharm-console/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// NewHTTPHandler builds the console router from the service container.
func NewHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Config == nil || cfg.Services == nil {
		return nil, errors.New("http server config, app config and services are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	svc := cfg.Services

	services := httpx.RouterServices{
		Registry:               svc.Registry,
		Redirector:             svc.Backends.Redirector,
		SuperAdmin:             svc.Backends.SuperAdmin,
		PharmacyAdmin:          svc.Backends.PharmacyAdmin,
		Preferences:            svc.Infra.KV,
		SessionCookieName:      appCfg.Session.CookieName,
		SessionCookieMaxAge:    appCfg.Session.TTL,
		CookieDomain:           appCfg.HTTP.CookieDomain,
		CompressionEnabled:     appCfg.HTTP.CompressionEnabled,
		CompressionLevel:       appCfg.HTTP.CompressionLevel,
		IsDev:                  appCfg.IsDev,
		LoginAttemptsPerMinute: appCfg.HTTP.LoginAttemptsPerMinute,
		LoginBurst:             appCfg.HTTP.LoginBurst,
		Logger:                 logger,
	}
	if svc.Observability != nil && svc.Observability.Config.PrometheusEnabled {
		services.Metrics = svc.Observability.Console
	}
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
	}

	handler, err := httpx.NewRouter(services)
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}
	return handler, nil
}

// StartHTTPServer starts serving in the background. A listener failure is
// sent to errCh.
func StartHTTPServer(cfg *HTTPServerConfig, errCh chan<- error) (*http.Server, error) {
	handler, err := NewHTTPHandler(cfg)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	addr := cfg.Config.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Config.HTTP.ReadHeaderTimeout,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr, "dev", cfg.Config.IsDev)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case errCh <- fmt.Errorf("http server: %w", err):
			default:
				logger.Error("HTTP server failed", "error", err)
			}
		}
	}()
	return server, nil
}

// ShutdownHTTPServer gracefully shuts down the HTTP server within timeout.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, timeout time.Duration, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("HTTP server stopped")
	return nil
}
