// Command txpay-admin-web serves the TX Pay admin console.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/txpay/txpay-admin/config"
	"github.com/txpay/txpay-admin/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Until the configuration is read, log JSON at info.
	bootstrap.InitLogger(config.LoggingConfig{Level: slog.LevelInfo})
	if err := run(ctx); err != nil {
		slog.ErrorContext(ctx, "fatal error", "error", err)
		stop()
		os.Exit(1) //nolint:forbidigo // non-zero exit on fatal errors
	}
}

func run(ctx context.Context) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if err = bootstrap.ValidateConfig(&cfg); err != nil {
		return err
	}
	log := bootstrap.InitLogger(cfg.Observability.Logging)

	log.InfoContext(ctx, "starting txpay admin console",
		"addr", cfg.HTTP.Addr,
		"api_url", cfg.API.BaseURL,
		"auth_mode", cfg.Auth.Mode,
		"audit_enabled", cfg.AuditEnabled(),
		"redis_configured", cfg.Redis.Configured(),
		"default_country", cfg.UI.DefaultCountry,
		"dev", cfg.IsDev,
	)

	stores, err := openStores(ctx, &cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stores.Close(); cerr != nil {
			log.ErrorContext(ctx, "closing stores", "error", cerr)
		}
	}()

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		DB:          stores.db,
		RedisClient: stores.redis,
		Logger:      log,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := services.Close(); cerr != nil {
			log.ErrorContext(ctx, "closing metrics", "error", cerr)
		}
	}()

	return bootstrap.RunWithShutdown(ctx, &bootstrap.ServiceOrchestrationConfig{
		Config:   &cfg,
		Services: services,
		Logger:   log,
	})
}

// stores are the optional backing services. db is set only with the audit
// trail enabled; redis only when configured, otherwise sessions stay in memory.
type stores struct {
	db    *sql.DB
	redis redis.UniversalClient
}

func openStores(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*stores, error) {
	dbCfg := bootstrap.DatabaseConfig{DBConfig: cfg.Postgres, RedisConfig: cfg.Redis, Logger: logger}
	s := &stores{}

	if cfg.AuditEnabled() {
		db, err := bootstrap.ConnectDB(ctx, dbCfg)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		s.db = db
		if cfg.Postgres.RunMigrationsOnStart {
			if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
				return nil, errors.Join(err, s.Close())
			}
		}
	}

	rdb, err := bootstrap.ConnectRedis(ctx, dbCfg)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("connect redis: %w", err), s.Close())
	}
	s.redis = rdb
	return s, nil
}

func (s *stores) Close() error {
	var errs []error
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}
