package httpx

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/language"

	txpayadmin "github.com/txpay/txpay-admin"
	"github.com/txpay/txpay-admin/config"
	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	httpassets "github.com/txpay/txpay-admin/internal/http/assets"
	"github.com/txpay/txpay-admin/internal/i18n"
	"github.com/txpay/txpay-admin/internal/ports"
	"github.com/txpay/txpay-admin/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth AuthServiceInterface
	API  ports.TXPayConnector
	// Optional: merchant dropdown cache and audit trail.
	Reference  *service.ReferenceService
	Audit      *service.AuditService
	AuditLimit int
	// Optional: defaults to a TransactionService over Audit.
	Transactions *service.TransactionService
	// I18n defaults to the embedded catalogs.
	I18n *i18n.Bundle
	UI   config.UIConfig
	// Cookie attributes for session, CSRF and language cookies.
	CookieDomain  string
	SecureCookies bool
	// TemplateFS overrides the template source (tests). Optional.
	TemplateFS fs.FS
	IsDev      bool         // Development mode flag for hot reloading, etc.
	Logger     *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router with browser middleware.
// Order: Language -> error pages -> DetectClient -> NotFound -> mux.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	// GET patterns match HEAD too.
	mux.Handle("GET /healthz", healthCheck(services.API, logger))
	mux.Handle("GET /static/", staticWithFallback(services.IsDev, logger))

	uiHandlers := setupUIHandlers(services)
	if uiHandlers != nil {
		cfg := uiRouteConfig{
			Auth:          services.Auth,
			CookieDomain:  services.CookieDomain,
			SecureCookies: services.SecureCookies,
		}
		registerUIRoutes(mux, uiHandlers, cfg)
		if services.Auth != nil {
			registerAuthRoutes(mux, &AuthHandlers{
				Svc:           services.Auth,
				UI:            uiHandlers,
				CookieDomain:  services.CookieDomain,
				SecureCookies: services.SecureCookies,
				Logger:        logger,
			}, cfg)
		}
	}

	// Wrap with NotFound handler and browser detection middleware
	var handler http.Handler = &notFoundHandler{
		mux:        mux,
		uiHandlers: uiHandlers,
	}
	handler = DetectClient()(handler)
	handler = withErrorPages(uiHandlers)(handler)

	bundle := services.I18n
	if bundle == nil {
		var err error
		if bundle, err = i18n.Default(); err != nil {
			logger.Error("loading message catalogs failed", "error", err)
		}
	}
	return Language(LanguageConfig{
		Bundle:       bundle,
		Fallback:     language.Make(services.UI.DefaultLocale),
		CookieDomain: services.CookieDomain,
		Secure:       services.SecureCookies,
	})(handler)
}

// templateSource picks where templates and the asset manifest come from:
// disk in development so edits show up on reload, the embedded copy
// otherwise. A missing manifest degrades to logical asset names.
func templateSource(services RouterServices, logger *slog.Logger) (fs.FS, *httpassets.AssetResolver) {
	diskManifest := filepath.Join("frontend", "static", "manifest.json")
	fromDisk := func() *httpassets.AssetResolver {
		resolver, err := httpassets.NewAssetResolverFromDisk(diskManifest)
		if err != nil {
			logger.Warn("asset manifest unavailable; using logical asset names", "manifest", diskManifest, "error", err)
		}
		return resolver
	}

	if services.TemplateFS != nil {
		return services.TemplateFS, nil
	}
	if services.IsDev {
		return os.DirFS(TemplatePathFromRoot), fromDisk()
	}

	templateFS, err := fs.Sub(txpayadmin.TemplateFS, "frontend/templates")
	if err != nil {
		logger.Warn("embedded templates unavailable; reading from disk", "error", err)
		templateFS = os.DirFS(TemplatePathFromRoot)
	}
	staticFS, err := fs.Sub(txpayadmin.StaticFS, "frontend/static")
	if err != nil {
		return templateFS, fromDisk()
	}
	resolver, err := httpassets.NewAssetResolverFromFS(staticFS, "manifest.json")
	if err != nil {
		logger.Warn("embedded asset manifest unavailable", "error", err)
		return templateFS, fromDisk()
	}
	return templateFS, resolver
}

// setupUIHandlers builds the console handlers. It returns nil when the
// templates cannot be parsed; the router then serves only health and assets.
func setupUIHandlers(services RouterServices) *UIHandlers {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	templateFS, resolver := templateSource(services, logger)
	if resolver != nil {
		resolver.SetLogger(logger)
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Resolver:   resolver,
		Logger:     logger,
		Reload:     services.IsDev && services.TemplateFS == nil,
	})
	if err != nil {
		logger.Error("failed to create template renderer", slog.Any("error", err))
		return nil
	}

	transactions := services.Transactions
	if transactions == nil {
		transactions = service.NewTransactionService(services.Audit)
	}

	return &UIHandlers{
		T:             tr,
		API:           services.API,
		Reference:     services.Reference,
		Audit:         services.Audit,
		AuditLimit:    services.AuditLimit,
		Transactions:  transactions,
		UI:            services.UI,
		CookieDomain:  services.CookieDomain,
		SecureCookies: services.SecureCookies,
		IsDev:         services.IsDev,
		Logger:        services.Logger,
	}
}

// staticWithFallback serves /static/* assets.
// In dev mode (isDev=true), serves from disk for hot reloading.
// In production mode (isDev=false), serves from embedded FS.
func staticWithFallback(isDev bool, logger *slog.Logger) http.Handler {
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}

	staticSub, err := fs.Sub(txpayadmin.StaticFS, "frontend/static")
	if err != nil {
		logger.Warn("embedded static assets unavailable; serving from disk", "error", err)
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
}

// hashedFilePattern matches content-hashed filenames including optional .map
// (e.g., app.abc123ef.js, styles.def456ab.css, app.abc123ef.js.map).
var hashedFilePattern = regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`)

// staticWithCacheHeaders wraps a static file handler to add appropriate cache headers.
func staticWithCacheHeaders(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hashedFilePattern.MatchString(r.URL.Path) {
			// Hashed assets can be cached for a long time (1 year)
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}

		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler. Only requests the mux has no route for
// are buffered; every matched handler writes straight through so exports and
// flushes stream.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern != "" {
		h.mux.ServeHTTP(w, r)
		return
	}

	cw := newCaptureWriter(w)
	h.mux.ServeHTTP(cw, r)

	// 405 responses for known paths keep the mux answer.
	if cw.status != http.StatusNotFound {
		cw.flushTo(w)
		return
	}
	if strings.HasPrefix(r.URL.Path, "/static/") || h.uiHandlers == nil {
		cw.flushTo(w)
		return
	}
	h.uiHandlers.NotFound(w, r)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	_, _ = c.buf.WriteTo(w)
}

// uiRouteConfig holds configuration for UI route registration.
type uiRouteConfig struct {
	Auth          AuthServiceInterface
	CookieDomain  string
	SecureCookies bool
}

func (cfg uiRouteConfig) csrf() func(http.Handler) http.Handler {
	return CSRFProtection(CSRFConfig{CookieDomain: cfg.CookieDomain, Secure: cfg.SecureCookies})
}

// roleWrap returns CSRF protection plus RequireRole for role.
// Without an auth service only CSRF protection applies.
func (cfg uiRouteConfig) roleWrap(role domainauth.Role) func(http.Handler) http.Handler {
	csrf := cfg.csrf()
	if cfg.Auth == nil {
		return csrf
	}
	roleCheck := RequireRole(cfg.Auth, role)
	return func(h http.Handler) http.Handler {
		return roleCheck(csrf(h))
	}
}

// authWrap requires any signed-in console user.
func (cfg uiRouteConfig) authWrap() func(http.Handler) http.Handler {
	return cfg.roleWrap(domainauth.RolePartner)
}

// adminWrap requires an administrator.
func (cfg uiRouteConfig) adminWrap() func(http.Handler) http.Handler {
	return cfg.roleWrap(domainauth.RoleAdmin)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, cfg uiRouteConfig) {
	csrf := cfg.csrf()
	optional := LoadSession(cfg.Auth)
	mux.Handle("GET /login", optional(csrf(http.HandlerFunc(h.LoginPage))))
	mux.Handle("POST /login", optional(csrf(http.HandlerFunc(h.Login))))
	mux.Handle("POST /logout", cfg.authWrap()(http.HandlerFunc(h.Logout)))
}

// registerUIRoutes delegates to per-area UI route registration functions.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	registerUIDashboardRoutes(mux, h, cfg)
	registerUITransactionRoutes(mux, h, cfg)
	registerUIEntityRoutes(mux, h, cfg)

	wrap := cfg.authWrap()
	mux.Handle("GET /contact", wrap(http.HandlerFunc(h.ContactPage)))
	mux.Handle("POST /contact", wrap(http.HandlerFunc(h.ContactSubmit)))
}

// registerUIDashboardRoutes wires the tabbed dashboard and the filter endpoint.
func registerUIDashboardRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.authWrap()
	mux.Handle("GET /{$}", wrap(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET "+filterPath, wrap(http.HandlerFunc(h.ViewFilter)))
}

func registerUITransactionRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.authWrap()
	mux.Handle("GET /transactions/export", wrap(http.HandlerFunc(h.TransactionExport)))
	mux.Handle("GET /transactions/{id}", wrap(http.HandlerFunc(h.TransactionDetail)))
	mux.Handle("POST /transactions/{id}/{action}", wrap(http.HandlerFunc(h.TransactionAction)))
}

// registerUIEntityRoutes wires the create/edit/delete flows. Merchants and
// payment links are open to partners; partners and admin users to admins only.
func registerUIEntityRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	registerEntity(mux, "/merchants", entityHandlers(h, merchantForm()), cfg.authWrap())
	registerEntity(mux, "/payment-links", entityHandlers(h, paymentLinkForm()), cfg.authWrap())
	registerEntity(mux, "/partners", entityHandlers(h, partnerForm()), cfg.adminWrap())
	registerEntity(mux, "/admins", entityHandlers(h, adminUserForm()), cfg.adminWrap())
}

func registerEntity(mux *http.ServeMux, base string, routes entityRoutes, wrap func(http.Handler) http.Handler) {
	if base == "" {
		panic("registerEntity: base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	mux.Handle("GET "+base+"/new", wrap(routes.New))
	mux.Handle("GET "+base+"/{id}/edit", wrap(routes.Edit))
	mux.Handle("POST "+base, wrap(routes.Create))
	mux.Handle("POST "+base+"/{id}", wrap(routes.Update))
	mux.Handle("POST "+base+"/{id}/delete", wrap(routes.Delete))
}
