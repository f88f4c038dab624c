package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	apperrors "github.com/txpay/txpay-admin/internal/errors"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc AuthServiceInterface
	// UI renders the login page inside the console layout.
	UI            *UIHandlers
	CookieDomain  string
	SecureCookies bool
	Logger        *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage renders the sign-in form.
// GET /login?redirect_uri=<optional>&signed_out=1.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	if _, ok := signedIn(r.Context()); ok {
		http.Redirect(w, r, redirectURI, http.StatusSeeOther)
		return
	}

	data := h.loginData(r, redirectURI, "")
	if r.URL.Query().Get("signed_out") != "" {
		data["Notice"] = loc(r).T("login.signed_out")
	}
	h.UI.renderDashboardPage(w, r, data)
}

// Login authenticates the submitted credentials.
// POST /login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	redirectURI := safeRedirectPath(r.PostFormValue("redirect_uri"))

	session, err := h.Svc.Login(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		h.logger().InfoContext(r.Context(), "login failed", "email", email, "error", err)
		h.renderLoginError(w, r, email, redirectURI, err)
		return
	}

	h.setSessionCookie(w, r, session)
	h.logger().InfoContext(r.Context(), "login", "user_id", session.UserID, "role", session.Role)
	redirect(w, r, redirectURI)
}

// renderLoginError keeps the email and redirect so the user can retry.
// Rejected credentials and validation errors read as a plain failed sign-in.
func (h *AuthHandlers) renderLoginError(w http.ResponseWriter, r *http.Request, email, redirectURI string, err error) {
	l := loc(r)
	msg := l.T("login.failed")
	status := http.StatusUnauthorized
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeUnauthorized, apperrors.ErrCodeValidation, apperrors.ErrCodeForbidden, apperrors.ErrCodeNotFound:
	default:
		msg = ErrorMessage(l, err)
		status = DetermineErrorStatus(err)
	}

	data := h.loginData(r, redirectURI, email)
	data["Error"] = true
	data["ErrorMessage"] = msg
	if IsHTMX(r) {
		status = http.StatusOK
	}
	h.UI.renderStatusPage(w, r, status, data)
}

func (h *AuthHandlers) loginData(r *http.Request, redirectURI, email string) map[string]any {
	l := loc(r)
	return NewTemplateData(r, PageMeta{
		Title:       l.T("login.title"),
		PageTitle:   l.T("login.title"),
		CurrentPage: PageLogin,
	}).
		With("RedirectURI", redirectURI).
		With("Email", email).
		Build()
}

// Logout ends the session and returns to the sign-in page.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionCookie, err := r.Cookie(SessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), sessionCookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	h.clearCookie(w, r, SessionCookieName)

	u := url.URL{Path: "/login"}
	q := url.Values{}
	q.Set("signed_out", "1")
	u.RawQuery = q.Encode()
	redirect(w, r, u.String())
}

func (h *AuthHandlers) secure(r *http.Request) bool {
	return h.SecureCookies || isHTTPS(r)
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.secure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.secure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}
