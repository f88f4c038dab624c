package httpx

import (
	"net/http"
	"net/url"
	"time"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
)

// LoadSession puts the caller's session, when there is a live one, into the
// request context. Requests without one continue anonymously.
func LoadSession(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess := sessionFromCookie(r, authSvc); sess != nil {
				r = r.WithContext(WithSession(r.Context(), sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sessionFromCookie resolves the session cookie. Lookup failures and expired
// sessions both read as signed out.
func sessionFromCookie(r *http.Request, authSvc AuthServiceInterface) *domainauth.Session {
	if authSvc == nil {
		return nil
	}
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	sess, err := authSvc.GetSession(r.Context(), c.Value)
	if err != nil || sess == nil {
		return nil
	}
	if !sess.ExpiresAt.IsZero() && time.Now().After(sess.ExpiresAt) {
		return nil
	}
	return sess
}

// RequireSignedIn admits any partner or administrator.
func RequireSignedIn(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return RequireRole(authSvc, domainauth.RolePartner)
}

// RequireRole admits sessions holding at least role. Browsers without a
// session go to the login page and get the access denied page when the role
// is too low; API clients get 401 and 403 JSON bodies.
func RequireRole(authSvc AuthServiceInterface, role domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessionFromCookie(r, authSvc)
			if sess == nil || sess.IsGuest() {
				if IsBrowserRequest(r) {
					redirectToLogin(w, r)
					return
				}
				writeJSONError(w, r, http.StatusUnauthorized, "authentication_required", "authentication required")
				return
			}

			r = r.WithContext(WithSession(r.Context(), sess))
			if !sess.Role.AtLeast(role) {
				if IsBrowserRequest(r) {
					showAccessDenied(w, r)
					return
				}
				writeJSONError(w, r, http.StatusForbidden, "insufficient_permissions", "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// redirectToLogin sends the browser to the login page, remembering where it
// was so the dashboard view survives the round trip.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login?redirect_uri=" + url.QueryEscape(loginReturnPath(r))
	if IsHTMX(r) {
		// Swapping the login form into a list region would be wrong.
		SetHXRedirect(w, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// loginReturnPath is the same-origin path to come back to after login. HTMX
// requests return to the page that issued them, not the fragment endpoint.
func loginReturnPath(r *http.Request) string {
	if IsHTMX(r) {
		for _, raw := range []string{HXCurrentURL(r), r.Header.Get("Referer")} {
			if p := browserPath(raw); p != "" {
				return p
			}
		}
	}
	if r.Method != http.MethodGet {
		return "/"
	}
	return safeRedirectPath(r.URL.RequestURI())
}

// showAccessDenied renders the localized 403 page. HTMX requests get a toast
// and keep the current page.
func showAccessDenied(w http.ResponseWriter, r *http.Request) {
	msg := loc(r).T("error.access_denied")
	if IsHTMX(r) {
		keepPage(w, http.StatusForbidden, msg)
		return
	}
	renderStatusMessage(w, r, http.StatusForbidden, msg)
}
