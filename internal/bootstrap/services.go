package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medipharm/medipharm-console/config"
	"github.com/medipharm/medipharm-console/internal/service"
	"github.com/medipharm/medipharm-console/internal/session"
)

// ServiceContainer holds the console's long-lived components.
type ServiceContainer struct {
	Infra         *Infrastructure
	Observability *Observability
	Backends      *Backends
	Registry      *session.Registry
	// Sweeper is nil unless the session store needs one.
	Sweeper *service.SessionSweeper
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	Infra  *Infrastructure
	Logger *slog.Logger
}

// NewServices wires metrics, the backend ports and the session registry.
func NewServices(ctx context.Context, deps *ServiceDeps) (*ServiceContainer, error) {
	if deps == nil || deps.Config == nil || deps.Infra == nil {
		return nil, errors.New("service deps require config and infrastructure")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	obs := BuildObservability(ctx, logger, cfg.Observability)

	backends, err := BuildBackends(BackendConfig{Backend: cfg.Backend, Metrics: obs.Console, Logger: logger})
	if err != nil {
		return nil, errors.Join(err, obs.Close())
	}

	registry := session.NewRegistry(session.RegistryConfig{
		Capacity:  cfg.Session.RegistryCapacity,
		IdleTTL:   cfg.Session.RegistryIdleTTL,
		KV:        deps.Infra.KV,
		Auth:      backends.Auth,
		KeyPrefix: cfg.Session.KeyPrefix,
		Logger:    logger,
		Observer:  obs.Console,
	})
	obs.Console.WatchRegistry(registry.Stats)

	container := &ServiceContainer{
		Infra:         deps.Infra,
		Observability: obs,
		Backends:      backends,
		Registry:      registry,
	}

	if deps.Infra.Purger != nil {
		sweeper, err := service.NewSessionSweeper(service.SessionSweeperOptions{
			Purger:   deps.Infra.Purger,
			Interval: cfg.Sweeper.Interval,
			Logger:   logger,
			Metrics:  obs.Sink(),
		})
		if err != nil {
			return nil, errors.Join(fmt.Errorf("session sweeper: %w", err), obs.Close())
		}
		container.Sweeper = sweeper
	} else if cfg.IsSweeperEnabled() {
		logger.InfoContext(ctx, "session sweeper not needed for this store", "backend", cfg.Session.Backend)
	}

	return container, nil
}

// Close releases the observability sinks. Infrastructure is closed by its owner.
func (c *ServiceContainer) Close() error {
	if c == nil {
		return nil
	}
	return c.Observability.Close()
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
	// Signals overrides the OS signal source; tests send on it directly.
	Signals <-chan os.Signal
}

// shutdownWaitTimeout is the maximum time to wait for background services to stop.
const shutdownWaitTimeout = 15 * time.Second

// backgroundService describes a startable background component.
type backgroundService struct {
	mode  config.ServiceMode
	name  string
	start func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	name string
	done <-chan struct{}
}

func launchBackground(ctx context.Context, svc backgroundService, errCh chan<- error, logger *slog.Logger) backgroundServiceHandle {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := svc.start(ctx); err != nil {
			errMsg := fmt.Errorf("%s failed: %w", svc.name, err)
			select {
			case errCh <- errMsg:
			case <-ctx.Done():
			default:
				logger.WarnContext(ctx, "dropping background service error", "service", svc.name, "error", errMsg)
			}
		}
	}()
	logger.InfoContext(ctx, "background service started", "service", svc.name, "mode", svc.mode)
	return backgroundServiceHandle{name: svc.name, done: done}
}

func buildBackgroundServices(cfg *ServiceOrchestrationConfig) []backgroundService {
	var out []backgroundService
	if cfg.Config.IsSweeperEnabled() && cfg.Services.Sweeper != nil {
		out = append(out, backgroundService{
			mode:  config.ServiceModeSweeper,
			name:  "session sweeper",
			start: cfg.Services.Sweeper.Run,
		})
	}
	return out
}

// RunServicesWithShutdown starts all enabled services and blocks until a
// shutdown signal arrives or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil || cfg.Services == nil {
		return errors.New("service orchestration config requires AppConfig and services")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	background := buildBackgroundServices(cfg)
	errCh := make(chan error, len(background)+2)

	var server *http.Server
	if cfg.Config.IsHTTPServerEnabled() {
		var err error
		server, err = StartHTTPServer(&HTTPServerConfig{Config: cfg.Config, Services: cfg.Services, Logger: logger}, errCh)
		if err != nil {
			return err
		}
	}

	handles := make([]backgroundServiceHandle, 0, len(background))
	for _, svc := range background {
		handles = append(handles, launchBackground(serviceCtx, svc, errCh, logger))
	}

	signals := cfg.Signals
	if signals == nil {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)
		signals = quit
	}

	stop := shutdownConfig{
		cancel:      cancel,
		server:      server,
		timeout:     cfg.Config.HTTP.ShutdownTimeout,
		backgrounds: handles,
		logger:      logger,
	}

	select {
	case <-signals:
		logger.Info("shutting down services...")
		return gracefulStop(stop)
	case err := <-errCh:
		logger.Error("service error", "error", err)
		if stopErr := gracefulStop(stop); stopErr != nil {
			logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	cancel      context.CancelFunc
	server      *http.Server
	timeout     time.Duration
	backgrounds []backgroundServiceHandle
	logger      *slog.Logger
}

// gracefulStop drains HTTP first so in-flight requests finish, then stops
// background services.
func gracefulStop(cfg shutdownConfig) error {
	err := ShutdownHTTPServer(context.Background(), cfg.server, cfg.timeout, cfg.logger)
	cfg.cancel()
	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}
	return err
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
