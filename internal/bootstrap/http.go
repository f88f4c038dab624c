package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/txpay/txpay-admin/config"
	httpx "github.com/txpay/txpay-admin/internal/http"
)

// HTTPServerConfig carries what the console server is assembled from.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// NewHTTPServer builds the console server without starting it.
func NewHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cmpLogger(cfg.Logger)
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	addr := appCfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}
	writeTimeout := appCfg.HTTP.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 2 * time.Minute
	}

	return &http.Server{
		Addr:              addr,
		Handler:           consoleHandler(appCfg.HTTP, routerServices(appCfg, cfg.Services, logger), logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       2 * time.Minute,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
}

func routerServices(appCfg *config.AppConfig, svc ServiceContainer, logger *slog.Logger) httpx.RouterServices {
	rs := httpx.RouterServices{
		Reference:     svc.Reference,
		Audit:         svc.Audit,
		AuditLimit:    appCfg.Audit.RecentLimit,
		Transactions:  svc.Transactions,
		UI:            appCfg.UI,
		CookieDomain:  appCfg.HTTP.CookieDomain,
		SecureCookies: appCfg.HTTP.SecureCookies(),
		IsDev:         appCfg.IsDev,
		Logger:        logger,
	}
	// Typed nils must not leak into the interfaces.
	if svc.Auth != nil {
		rs.Auth = svc.Auth
	}
	if svc.API != nil {
		rs.API = svc.API
	}
	return rs
}

// consoleHandler wraps the router, outermost first: Recover, Logging,
// Compression. Logged sizes are the compressed ones.
func consoleHandler(cfg config.HTTPConfig, rs httpx.RouterServices, logger *slog.Logger) http.Handler {
	h := httpx.NewRouter(rs)
	if c := cfg.Compression; c.Enabled {
		logger.Info("gzip compression enabled", "level", c.Level, "min_size", c.MinSize)
		h = httpx.Compression(httpx.CompressionConfig{Level: c.Level, MinSize: c.MinSize, Logger: logger})(h)
	}
	return httpx.Recover(logger)(httpx.Logging(logger)(h))
}

// ShutdownHTTPServer drains srv until ctx is done. A nil server is a no-op.
func ShutdownHTTPServer(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	if srv == nil {
		return nil
	}
	logger = cmpLogger(logger)
	logger.InfoContext(ctx, "shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.InfoContext(ctx, "HTTP server stopped")
	return nil
}

func cmpLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
