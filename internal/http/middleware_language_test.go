package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/txpay/txpay-admin/internal/i18n"
)

func languageMiddleware(t *testing.T) func(http.Handler) http.Handler {
	t.Helper()
	bundle, err := i18n.Default()
	require.NoError(t, err)
	return Language(LanguageConfig{Bundle: bundle, Fallback: language.Make("en-US")})
}

func echoLocale() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := loc(r)
		_, _ = w.Write([]byte(l.Locale() + "|" + l.T("tab.transactions")))
	})
}

func TestLanguage_AcceptLanguage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "es-MX,es;q=0.9,en;q=0.5")
	w := httptest.NewRecorder()

	languageMiddleware(t)(echoLocale()).ServeHTTP(w, r)

	assert.Equal(t, "es-MX|Transacciones", w.Body.String())
	assert.Equal(t, "es-MX", w.Header().Get("Content-Language"))
}

func TestLanguage_FallbackForUnsupported(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "ja-JP")
	w := httptest.NewRecorder()

	languageMiddleware(t)(echoLocale()).ServeHTTP(w, r)

	assert.Equal(t, "en-US|Transactions", w.Body.String())
}

func TestLanguage_CookieBeatsHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "en-US")
	r.AddCookie(&http.Cookie{Name: i18n.LangCookieName, Value: "es-MX"})
	w := httptest.NewRecorder()

	languageMiddleware(t)(echoLocale()).ServeHTTP(w, r)

	assert.Equal(t, "es-MX|Transacciones", w.Body.String())
}

func TestLanguage_QuerySelectionPersistsAndRedirects(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?lang=es-MX&status=CAPTURED&tab=transactions", nil)
	w := httptest.NewRecorder()

	languageMiddleware(t)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("a plain GET selection must redirect first")
	})).ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?status=CAPTURED&tab=transactions", w.Header().Get("Location"))
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == i18n.LangCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, "es-MX", cookie.Value)
}

func TestLanguage_HTMXSelectionServesDirectly(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?lang=es-MX", nil)
	r.Header.Set("Hx-Request", "true")
	w := httptest.NewRecorder()

	languageMiddleware(t)(echoLocale()).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "es-MX|Transacciones", w.Body.String())
}

func TestLanguage_NilBundlePassesThrough(t *testing.T) {
	w := httptest.NewRecorder()
	Language(LanguageConfig{})(echoLocale()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "en-US|tab.transactions", w.Body.String())
}

func TestWithoutLangParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?lang=en-US", nil)
	assert.Equal(t, "/", withoutLangParam(r.URL))
}
