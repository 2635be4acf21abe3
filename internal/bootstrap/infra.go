package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/medipharm/medipharm-console/config"
	"github.com/medipharm/medipharm-console/internal/adapters/memory"
	redisadapter "github.com/medipharm/medipharm-console/internal/adapters/redis"
	"github.com/medipharm/medipharm-console/internal/data"
	"github.com/medipharm/medipharm-console/internal/ports"
	"github.com/medipharm/medipharm-console/internal/service"
	"github.com/redis/go-redis/v9"
)

// Infrastructure holds the connections behind the session key-value store.
// Only the connection SESSION_BACKEND needs is opened.
type Infrastructure struct {
	DB    *sql.DB
	Redis redis.UniversalClient
	KV    ports.KeyValueStore
	// Purger is set when the store needs the session sweeper.
	Purger service.ExpiredSessionPurger
}

// ConnectInfrastructure opens the store selected by cfg.Session.Backend,
// applying migrations first for PostgreSQL when enabled.
func ConnectInfrastructure(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{}
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		client, err := ConnectRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		infra.Redis = client
		infra.KV = redisadapter.NewKVStore(redisadapter.KVStoreOptions{Client: client, TTL: cfg.Session.TTL})

	case config.SessionBackendPostgres:
		db, err := ConnectDB(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		infra.DB = db
		if cfg.Postgres.RunMigrationsOnStart {
			if err := RunMigrations(ctx, db, logger); err != nil {
				return nil, errors.Join(err, infra.Close())
			}
		} else {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}
		repo := data.NewKVRepo(db, data.KVRepoOptions{TTL: cfg.Session.TTL})
		infra.KV = repo
		infra.Purger = repo

	default:
		logger.WarnContext(ctx, "session state is kept in memory and lost on restart")
		infra.KV = memory.NewKVStore(memory.KVStoreConfig{TTL: cfg.Session.TTL})
	}
	return infra, nil
}

// Close releases whatever connections were opened.
func (i *Infrastructure) Close() error {
	if i == nil {
		return nil
	}
	var errs []error
	if i.DB != nil {
		if err := i.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
