package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/medipharm/medipharm-console/config"
	"github.com/medipharm/medipharm-console/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
	logger := bootstrap.InitLogger(cfg.Observability.Logging)
	if err := run(ctx, logger, &cfg); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) (err error) {
	logStartupInfo(ctx, logger, cfg)

	infra, err := bootstrap.ConnectInfrastructure(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := infra.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close infrastructure failed", "error", cerr)
		}
	}()

	services, err := bootstrap.NewServices(ctx, &bootstrap.ServiceDeps{
		Config: cfg,
		Infra:  infra,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, services.Close())
	}()

	return bootstrap.RunServicesWithShutdown(&bootstrap.ServiceOrchestrationConfig{
		Config:   cfg,
		Services: services,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting medipharm console",
		"api_url", cfg.Backend.APIURL,
		"backend_mode", cfg.Backend.Mode,
		"session_backend", cfg.Session.Backend,
		"enabled_services", bootstrap.EnabledServices(cfg),
		"dev", cfg.IsDev,
	)
}
