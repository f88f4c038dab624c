package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "txpay_lang"
)

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// ResolveTag picks the request language: the lang query parameter, then the
// language cookie, then Accept-Language, then fallback. The bool reports
// whether the query parameter selected it and should be persisted.
func (b *Bundle) ResolveTag(r *http.Request, fallback language.Tag) (language.Tag, bool) {
	if r == nil {
		return b.Match(fallback), false
	}
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if tag, ok := b.Parse(v); ok {
			return tag, true
		}
	}
	if c, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := b.Parse(c.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := b.matcher.Match(tags...)
			if conf != language.No {
				return b.tags[idx], false
			}
		}
	}
	return b.Match(fallback), false
}

// SetLanguageCookie persists the selected language for a year.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag, domain string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		Domain:   domain,
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// LanguageURL returns path with the lang parameter set to tag and the rest of the query kept.
func LanguageURL(path, rawQuery, tag string) string {
	if strings.TrimSpace(path) == "" {
		path = "/"
	}
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		q = url.Values{}
	}
	q.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: q.Encode()}).String()
}

// LanguageOptions lists the supported languages for a switcher rendered on r.
// Labels come from the "lang.<tag>" keys of each language's own catalog.
func (b *Bundle) LanguageOptions(r *http.Request, active language.Tag) []LanguageOption {
	out := make([]LanguageOption, 0, len(b.tags))
	for _, tag := range b.tags {
		label, ok := b.Message(tag.String(), "lang."+tag.String())
		if !ok {
			label = tag.String()
		}
		opt := LanguageOption{Tag: tag.String(), Label: label, Active: tag == active}
		if r != nil {
			opt.URL = LanguageURL(r.URL.Path, r.URL.RawQuery, tag.String())
		}
		out = append(out, opt)
	}
	return out
}

// LanguageOptions lists the switcher entries for r with l's language marked active.
// A nil Localizer has no switcher.
func (l *Localizer) LanguageOptions(r *http.Request) []LanguageOption {
	if l == nil {
		return nil
	}
	return l.bundle.LanguageOptions(r, l.tag)
}
