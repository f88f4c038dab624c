package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/txpay/txpay-admin/config"
	redisadapter "github.com/txpay/txpay-admin/internal/adapters/redis"
	"github.com/txpay/txpay-admin/internal/data"
	"github.com/txpay/txpay-admin/internal/observability/statsd"
	"github.com/txpay/txpay-admin/internal/ports"
	"github.com/txpay/txpay-admin/internal/service"
	"github.com/txpay/txpay-admin/internal/txpay"
)

// ServiceDeps carries the infrastructure the services are built on.
// DB and RedisClient may be nil.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds everything the router needs.
type ServiceContainer struct {
	API          *txpay.Client
	Auth         *service.AuthService
	Reference    *service.ReferenceService
	Audit        *service.AuditService
	Transactions *service.TransactionService
	Metrics      *statsd.Client
}

// Close releases resources owned by the container.
func (c ServiceContainer) Close() error {
	if c.Metrics == nil {
		return nil
	}
	return c.Metrics.Close()
}

// buildMetrics returns a StatsD client, or nil when metrics are disabled.
func buildMetrics(cfg config.ObservabilityMetricsConfig, logger *slog.Logger) *statsd.Client {
	if !cfg.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}

func sinkOf(c *statsd.Client) statsd.Sink {
	if c == nil {
		return nil
	}
	return c
}

//nolint:ireturn // nil interface when Redis is not configured.
func buildReferenceCache(client redis.UniversalClient) ports.Cache {
	if client == nil {
		return nil
	}
	return redisadapter.NewCache(client, "")
}

func buildAudit(db *sql.DB, metrics statsd.Sink, logger *slog.Logger) *service.AuditService {
	opts := service.AuditServiceOptions{Metrics: metrics, Logger: logger}
	if db != nil {
		opts.Repo = data.NewAuditRepo(db)
	}
	return service.NewAuditService(opts)
}

// NewServices wires the API client, auth, reference cache and audit trail.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics := buildMetrics(cfg.Observability.Metrics, logger)
	sink := sinkOf(metrics)

	api, err := txpay.New(txpay.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		Metrics:   sink,
		Logger:    logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("api client: %w", err)
	}

	auth, err := BuildAuthService(AuthConfig{
		Auth:        cfg.Auth,
		API:         api,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("auth service: %w", err)
	}

	var db *sql.DB
	if cfg.AuditEnabled() {
		db = deps.DB
	}
	audit := buildAudit(db, sink, logger)

	return ServiceContainer{
		API:  api,
		Auth: auth,
		Reference: service.NewReferenceService(service.ReferenceServiceOptions{
			Cache:     buildReferenceCache(deps.RedisClient),
			TTL:       cfg.Cache.ReferenceTTL,
			KeyPrefix: cfg.Cache.KeyPrefix,
			Logger:    logger,
		}),
		Audit:        audit,
		Transactions: service.NewTransactionService(audit),
		Metrics:      metrics,
	}, nil
}

// ServiceOrchestrationConfig contains dependencies for running the server.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunWithShutdown serves HTTP until ctx is canceled or the server fails,
// then drains in-flight requests.
func RunWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := NewHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down services...")
		// The parent context is already done; drain with a fresh deadline.
		wait := cfg.Config.HTTP.ShutdownTimeout
		if wait <= 0 {
			wait = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), wait)
		defer cancel()
		return ShutdownHTTPServer(shutdownCtx, server, logger)
	})
	return g.Wait()
}
