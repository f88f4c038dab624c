package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	apperrors "github.com/txpay/txpay-admin/internal/errors"
)

func authHandlersForTest(t *testing.T, svc AuthServiceInterface) *AuthHandlers {
	t.Helper()
	return &AuthHandlers{Svc: svc, UI: CreateUIHandlersForTest(t, nil)}
}

func loginRequest(form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return WithTestContext(r, nil)
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func TestLoginPage(t *testing.T) {
	h := authHandlersForTest(t, &stubAuthService{})
	w := httptest.NewRecorder()

	h.LoginPage(w, WithTestContext(httptest.NewRequest(http.MethodGet, "/login?redirect_uri=%2F%3Ftab%3Dmerchants", nil), nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `name="email"`)
	assert.Contains(t, body, `name="password"`)
	assert.Contains(t, body, `value="/?tab=merchants"`)
}

func TestLoginPage_SignedOutNotice(t *testing.T) {
	h := authHandlersForTest(t, &stubAuthService{})
	w := httptest.NewRecorder()

	h.LoginPage(w, WithTestContext(httptest.NewRequest(http.MethodGet, "/login?signed_out=1", nil), nil))

	assert.Contains(t, w.Body.String(), "You have been signed out.")
}

func TestLoginPage_SignedInRedirects(t *testing.T) {
	h := authHandlersForTest(t, &stubAuthService{})
	w := httptest.NewRecorder()
	r := WithTestContext(httptest.NewRequest(http.MethodGet, "/login?redirect_uri=%2F%3Ftab%3Dmerchants", nil), TestSession(domainauth.RolePartner))

	h.LoginPage(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?tab=merchants", w.Header().Get("Location"))
}

func TestLogin_Success(t *testing.T) {
	var gotEmail, gotPassword string
	svc := &stubAuthService{
		loginFunc: func(_ context.Context, email, password string) (domainauth.Session, error) {
			gotEmail, gotPassword = email, password
			return domainauth.Session{
				ID: "new-session", UserID: "u1", Role: domainauth.RoleAdmin,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
	h := authHandlersForTest(t, svc)
	w := httptest.NewRecorder()

	h.Login(w, loginRequest(url.Values{
		"email": {" ada@txpay.example "}, "password": {"s3cret"}, "redirect_uri": {"/?tab=partners"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?tab=partners", w.Header().Get("Location"))
	assert.Equal(t, "ada@txpay.example", gotEmail)
	assert.Equal(t, "s3cret", gotPassword)

	c := sessionCookie(t, w)
	require.NotNil(t, c)
	assert.Equal(t, "new-session", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Positive(t, c.MaxAge)
}

func TestLogin_UnsafeRedirectFallsBackToRoot(t *testing.T) {
	svc := &stubAuthService{
		loginFunc: func(context.Context, string, string) (domainauth.Session, error) {
			return domainauth.Session{ID: "s", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	h := authHandlersForTest(t, svc)
	w := httptest.NewRecorder()

	h.Login(w, loginRequest(url.Values{
		"email": {"a@b.example"}, "password": {"x"}, "redirect_uri": {"//evil.example/"},
	}))

	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLogin_SecureCookieBehindTLSProxy(t *testing.T) {
	svc := &stubAuthService{
		loginFunc: func(context.Context, string, string) (domainauth.Session, error) {
			return domainauth.Session{ID: "s", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	h := authHandlersForTest(t, svc)
	r := loginRequest(url.Values{"email": {"a@b.example"}, "password": {"x"}})
	r.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()

	h.Login(w, r)

	c := sessionCookie(t, w)
	require.NotNil(t, c)
	assert.True(t, c.Secure)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		htmx     bool
		wantCode int
		wantMsg  string
	}{
		{
			name: "bad credentials", err: apperrors.Unauthorized("invalid credentials"),
			wantCode: http.StatusUnauthorized, wantMsg: "Invalid email or password.",
		},
		{
			name: "missing fields", err: apperrors.Validation("email and password are required"),
			wantCode: http.StatusUnauthorized, wantMsg: "Invalid email or password.",
		},
		{
			name: "api down", err: apperrors.Unavailable("connection refused"),
			wantCode: http.StatusBadGateway, wantMsg: "The TX Pay API is unavailable. Please try again.",
		},
		{
			name: "htmx keeps 200", err: apperrors.Unauthorized("invalid credentials"), htmx: true,
			wantCode: http.StatusOK, wantMsg: "Invalid email or password.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAuthService{
				loginFunc: func(context.Context, string, string) (domainauth.Session, error) {
					return domainauth.Session{}, tt.err
				},
			}
			h := authHandlersForTest(t, svc)
			r := loginRequest(url.Values{"email": {"ada@txpay.example"}, "password": {"nope"}, "redirect_uri": {"/?tab=merchants"}})
			if tt.htmx {
				r.Header.Set("Hx-Request", "true")
			}
			w := httptest.NewRecorder()

			h.Login(w, r)

			assert.Equal(t, tt.wantCode, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, tt.wantMsg)
			assert.Contains(t, body, `value="ada@txpay.example"`, "email is kept")
			assert.Nil(t, sessionCookie(t, w))
		})
	}
}

func TestLogout(t *testing.T) {
	var loggedOut string
	svc := &stubAuthService{
		logoutFunc: func(_ context.Context, id string) error {
			loggedOut = id
			return errors.New("redis unavailable")
		},
	}
	h := &AuthHandlers{Svc: svc, CookieDomain: "admin.txpay.example"}
	r := withSessionCookie(httptest.NewRequest(http.MethodPost, "/logout", nil), "sess-1")
	w := httptest.NewRecorder()

	h.Logout(w, r)

	assert.Equal(t, "sess-1", loggedOut)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?signed_out=1", w.Header().Get("Location"))
	c := sessionCookie(t, w)
	require.NotNil(t, c, "session cookie must be cleared even when the store fails")
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
	assert.Equal(t, "admin.txpay.example", c.Domain)
}

func TestLogout_HTMX(t *testing.T) {
	h := &AuthHandlers{Svc: &stubAuthService{}}
	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.Header.Set("Hx-Request", "true")
	w := httptest.NewRecorder()

	h.Logout(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "/login?signed_out=1", w.Header().Get("Hx-Redirect"))
}
