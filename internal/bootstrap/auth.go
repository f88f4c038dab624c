package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/txpay/txpay-admin/config"
	"github.com/txpay/txpay-admin/internal/adapters/authroles"
	"github.com/txpay/txpay-admin/internal/adapters/devauth"
	"github.com/txpay/txpay-admin/internal/adapters/memory"
	redisadapter "github.com/txpay/txpay-admin/internal/adapters/redis"
	"github.com/txpay/txpay-admin/internal/ports"
	"github.com/txpay/txpay-admin/internal/service"
	"github.com/txpay/txpay-admin/internal/txpay"
)

const sessionKeyPrefix = "txpay:session:"

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth config.AuthConfig
	// API is the unauthenticated client used for the login call (api mode).
	API *txpay.Client
	// RedisClient backs the session store. Nil keeps sessions in memory.
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
func BuildAuthService(cfg AuthConfig) (*service.AuthService, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	provider, err := buildAuthProvider(cfg, logger)
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider:   provider,
		Sessions:   buildSessionStore(cfg.RedisClient, logger),
		Roles:      authroles.APIRoleMapper{},
		SessionTTL: cfg.Auth.SessionTTL,
		Logger:     logger,
	}), nil
}

//nolint:ireturn // the provider is selected by AUTH_MODE.
func buildAuthProvider(cfg AuthConfig, logger *slog.Logger) (ports.AuthProvider, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		dev := cfg.Auth.DevAuth
		prov, err := devauth.NewProvider(devauth.Config{
			UserID:          dev.UserID,
			Name:            dev.Name,
			Email:           dev.Email,
			Role:            dev.Role,
			PartnerID:       dev.PartnerID,
			APIToken:        dev.APIToken,
			SessionDuration: cfg.Auth.SessionTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("dev auth provider: %w", err)
		}
		logger.Warn("mock authentication enabled; any credentials sign in as the dev identity",
			"email", dev.Email, "role", dev.Role)
		return prov, nil

	case config.AuthModeAPI, "":
		if cfg.API == nil {
			return nil, fmt.Errorf("auth mode %q requires an API client", config.AuthModeAPI)
		}
		return txpay.NewAuthProvider(cfg.API, logger), nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
}

//nolint:ireturn // Redis or in-process store depending on configuration.
func buildSessionStore(client redis.UniversalClient, logger *slog.Logger) ports.SessionStore {
	if client == nil {
		logger.Warn("redis not configured; sessions are kept in process memory and lost on restart")
		return memory.NewSessionStore()
	}
	return redisadapter.NewSessionStoreWithPrefix(client, sessionKeyPrefix)
}
