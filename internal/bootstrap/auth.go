package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/medipharm/medipharm-console/config"
	"github.com/medipharm/medipharm-console/internal/adapters/devauth"
	"github.com/medipharm/medipharm-console/internal/backend"
	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	"github.com/medipharm/medipharm-console/internal/gateway"
	httpx "github.com/medipharm/medipharm-console/internal/http"
	"github.com/medipharm/medipharm-console/internal/ports"
	"github.com/medipharm/medipharm-console/internal/session"
)

// Backends are the pharmacy API ports, all sharing one gateway client.
type Backends struct {
	Redirector    *gateway.Redirector
	Gateway       *gateway.Client
	Auth          ports.AuthAPI
	SuperAdmin    ports.SuperAdminAPI
	PharmacyAdmin ports.PharmacyAdminAPI
}

// BackendConfig contains the dependencies for BuildBackends.
type BackendConfig struct {
	Backend config.BackendConfig
	Metrics gateway.Metrics
	Logger  *slog.Logger
}

// BuildBackends creates the gateway client and the ports on top of it.
// With BACKEND_MODE=mock logins are answered locally; data calls still go
// to API_URL.
func BuildBackends(cfg BackendConfig) (*Backends, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	redirector := gateway.NewRedirector(logger)
	client, err := gateway.NewClient(gateway.Config{
		BaseURL:    cfg.Backend.APIURL,
		Timeout:    cfg.Backend.Timeout,
		Sessions:   sessionCache,
		Redirector: redirector,
		LoginPath:  httpx.PathLogin,
		UserAgent:  cfg.Backend.UserAgent,
		Logger:     logger,
		Metrics:    cfg.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}

	b := &Backends{
		Redirector:    redirector,
		Gateway:       client,
		SuperAdmin:    backend.NewSuperAdminAPI(client),
		PharmacyAdmin: backend.NewPharmacyAdminAPI(client),
	}

	switch cfg.Backend.Mode {
	case config.BackendModeMock:
		dev := cfg.Backend.DevAuth
		prov, err := devauth.NewProvider(devauth.Config{
			UserID:   dev.UserID,
			Email:    dev.Email,
			Password: dev.Password,
			FullName: dev.FullName,
			Role:     domainauth.Role(dev.Role),
			TokenTTL: dev.TokenTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("dev auth: %w", err)
		}
		logger.Warn("BACKEND_MODE=mock: logins are answered by the dev account", "email", dev.Email, "role", dev.Role)
		b.Auth = prov
	default:
		b.Auth = backend.NewAuthAPI(client)
	}
	return b, nil
}

// sessionCache resolves the browser session's store for the gateway.
//
//nolint:ireturn // gateway.SessionResolver's signature.
func sessionCache(ctx context.Context) gateway.SessionCache {
	if store := session.StoreFromContext(ctx); store != nil {
		return store
	}
	return nil
}
