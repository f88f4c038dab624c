package httpx

import (
	"net/http"
	"net/url"

	"golang.org/x/text/language"

	"github.com/txpay/txpay-admin/internal/i18n"
)

// LanguageConfig configures the Language middleware.
type LanguageConfig struct {
	Bundle   *i18n.Bundle
	Fallback language.Tag
	// CookieDomain and Secure apply to the language cookie.
	CookieDomain string
	Secure       bool
}

// Language resolves the request language and stores its Localizer in the context.
// A ?lang=<tag> selection is persisted in a cookie; plain GET navigations are then
// redirected to the same URL without the parameter so it never lingers in
// bookmarks or view state.
func Language(cfg LanguageConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Bundle == nil {
				next.ServeHTTP(w, r)
				return
			}

			tag, selected := cfg.Bundle.ResolveTag(r, cfg.Fallback)
			if selected {
				i18n.SetLanguageCookie(w, tag, cfg.CookieDomain, cfg.Secure || isHTTPS(r))
				if r.Method == http.MethodGet && !IsHTMX(r) {
					http.Redirect(w, r, withoutLangParam(r.URL), http.StatusSeeOther)
					return
				}
			}

			l := i18n.NewLocalizer(cfg.Bundle, tag)
			w.Header().Set("Content-Language", l.Locale())
			next.ServeHTTP(w, r.WithContext(i18n.WithLocalizer(r.Context(), l)))
		})
	}
}

func withoutLangParam(u *url.URL) string {
	q := u.Query()
	q.Del(i18n.LangParam)
	out := url.URL{Path: u.Path, RawQuery: q.Encode()}
	if out.Path == "" {
		out.Path = "/"
	}
	return out.String()
}
