package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultCSRFCookieName is also the form field carrying the token.
	DefaultCSRFCookieName = "csrf_token"
	// DefaultCSRFHeaderName is sent by htmx through hx-headers on <body>.
	DefaultCSRFHeaderName = "X-Csrf-Token"

	csrfTokenBytes = 32
	csrfCookieTTL  = 12 * time.Hour
)

// CSRFConfig configures CSRFProtection.
type CSRFConfig struct {
	CookieDomain string
	// Secure forces the Secure attribute. TLS requests and requests forwarded
	// as https get it regardless.
	Secure bool
}

// CSRFProtection implements double-submit cookies. Every request gets a token
// in its context for templates; unsafe methods must echo the cookie in the
// X-Csrf-Token header or the csrf_token form field. Browsers announcing a
// cross-site request through Sec-Fetch-Site are rejected outright.
func CSRFProtection(cfg CSRFConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := csrfCookie(r)
			if token == "" {
				fresh, err := newCSRFToken()
				if err != nil {
					http.Error(w, "unable to generate CSRF token", http.StatusInternalServerError)
					return
				}
				token = fresh
				http.SetCookie(w, &http.Cookie{
					Name:   DefaultCSRFCookieName,
					Value:  token,
					Path:   "/",
					Domain: cfg.CookieDomain,
					// htmx never reads the cookie; the token is rendered into the page.
					HttpOnly: true,
					Secure:   cfg.Secure || isHTTPS(r),
					SameSite: http.SameSiteStrictMode,
					MaxAge:   int(csrfCookieTTL / time.Second),
				})
			}
			r = r.WithContext(context.WithValue(r.Context(), csrfTokenKey{}, token))

			if isUnsafeMethod(r.Method) && (isCrossSite(r) || !csrfTokenMatches(r, token)) {
				rejectCSRF(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// rejectCSRF answers a failed token check. HTMX requests keep the page and
// get a toast asking for a reload.
func rejectCSRF(w http.ResponseWriter, r *http.Request) {
	msg := loc(r).T("error.csrf")
	if IsHTMX(r) {
		SetHXReswap(w, "none")
		triggerToast(w, msg, "error")
	}
	http.Error(w, msg, http.StatusForbidden)
}

func isUnsafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	}
	return true
}

func isCrossSite(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Sec-Fetch-Site"), "cross-site")
}

func csrfCookie(r *http.Request) string {
	c, err := r.Cookie(DefaultCSRFCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// newCSRFToken fails closed when the system randomness source does.
func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// isHTTPS reports TLS, directly or behind a proxy setting X-Forwarded-Proto
// (possibly a comma-separated chain).
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

// csrfTokenMatches compares the submitted token in constant time. The form is
// only parsed for form encodings so JSON bodies are left untouched.
func csrfTokenMatches(r *http.Request, want string) bool {
	got := r.Header.Get(DefaultCSRFHeaderName)
	if got == "" {
		ct := r.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "application/x-www-form-urlencoded") && !strings.HasPrefix(ct, "multipart/form-data") {
			return false
		}
		if err := r.ParseForm(); err != nil {
			return false
		}
		got = r.PostFormValue(DefaultCSRFCookieName)
	}
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

type csrfTokenKey struct{}

// GetCSRFToken returns the token templates render into forms and hx-headers.
func GetCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenKey{}).(string)
	return token
}
