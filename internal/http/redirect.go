package httpx

import (
	"net/url"
	"strings"
)

// localPath accepts raw only when it is a path on this host: a leading single
// slash, no scheme and no authority. "//host" and "/\host" are scheme-relative
// to browsers and are rejected.
func localPath(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, `/\`) {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	return raw, true
}

// safeRedirectPath is localPath with "/" as the fallback.
func safeRedirectPath(raw string) string {
	if p, ok := localPath(raw); ok {
		return p
	}
	return "/"
}

// browserPath reduces a full browser URL (Hx-Current-Url, Referer) to its
// path and query. It returns "" for anything unusable.
func browserPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || raw == "" {
		return ""
	}
	if u.IsAbs() {
		raw = u.RequestURI()
	}
	p, _ := localPath(raw)
	return p
}
