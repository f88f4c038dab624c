package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/txpay/txpay-admin/config"
	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	"github.com/txpay/txpay-admin/internal/http/ui/viewmodel"
	"github.com/txpay/txpay-admin/internal/i18n"
	"github.com/txpay/txpay-admin/internal/ports"
	"github.com/txpay/txpay-admin/internal/service"
	"github.com/txpay/txpay-admin/internal/viewstate"
)

// AuthService backs the login handlers.
var _ AuthServiceInterface = (*service.AuthService)(nil)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T            *TemplateRenderer
	API          ports.TXPayConnector
	Reference    *service.ReferenceService // optional
	Audit        *service.AuditService     // optional
	AuditLimit   int                       // entries on the configuration tab
	Transactions *service.TransactionService
	UI           config.UIConfig
	// CookieDomain and SecureCookies apply to the session cookie.
	CookieDomain  string
	SecureCookies bool
	IsDev         bool // Development mode flag for enhanced error reporting
	Logger        *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) pageSize() int {
	if h.UI.PageSize > 0 {
		return h.UI.PageSize
	}
	return 20
}

// apiFor returns the remote API bound to the request session token.
func (h *UIHandlers) apiFor(r *http.Request) ports.TXPayAPI {
	token := ""
	if s := SessionFrom(r.Context()); s != nil {
		token = s.APIToken
	}
	return h.API.ForToken(token)
}

// actor returns the request session, or a guest placeholder.
func actor(r *http.Request) domainauth.Session {
	if s := SessionFrom(r.Context()); s != nil {
		return *s
	}
	return domainauth.Session{Role: domainauth.RoleGuest}
}

// loc returns the request localizer. A nil localizer returns keys verbatim.
func loc(r *http.Request) *i18n.Localizer {
	return i18n.FromContext(r.Context())
}

// dashboardTab is the tab opened when the URL names none.
const dashboardTab = viewstate.TabTransactions

// triggerToast sends a standardized HX-Trigger payload for toast notifications.
func triggerToast(w http.ResponseWriter, message, toastType string) {
	if w == nil || strings.TrimSpace(message) == "" {
		return
	}
	SetHXTrigger(w, "showToast", map[string]any{
		"message": message,
		"type":    strings.TrimSpace(toastType),
	})
}

// redirect sends HTMX requests an HX-Redirect and everything else a 303.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		SetHXRedirect(w, target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// PageMeta names the page being rendered. Title gets the app name appended
// for the document title; PageTitle is the visible heading.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// basePageData holds what the layout reads on every page: titles, the
// localizer under "L", language options and the signed-in user.
// CSRFToken and User are only set when present.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	l := loc(r)
	title := l.T("app.title")
	if meta.Title != "" {
		title = meta.Title + " · " + title
	}
	data := map[string]any{
		"L":               l,
		"Title":           title,
		"PageTitle":       meta.PageTitle,
		"CurrentPage":     meta.CurrentPage,
		"Locale":          l.Locale(),
		"Languages":       l.LanguageOptions(r),
		"IsAuthenticated": false,
		"IsAdmin":         false,
	}
	if token := GetCSRFToken(r); token != "" {
		data["CSRFToken"] = token
	}
	if s, ok := signedIn(r.Context()); ok {
		data["IsAuthenticated"] = true
		data["IsAdmin"] = s.IsAdmin()
		data["User"] = &viewmodel.User{Name: s.Name, Email: s.Email, Role: string(s.Role)}
	}
	return data
}
