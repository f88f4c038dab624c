package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// HTTPConfig configures the console listener and its cookies.
type HTTPConfig struct {
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the public origin, e.g. https://admin.txpay.example. An https
	// origin marks session and CSRF cookies Secure.
	BaseURL      string `env:"APP_BASE_URL"      envDefault:"http://localhost:8080"`
	CookieDomain string `env:"APP_COOKIE_DOMAIN"`

	// WriteTimeout bounds a whole response. Exports stream through it.
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Compression CompressionConfig `envPrefix:"HTTP_COMPRESSION_"`
}

// CompressionConfig controls gzip for HTML fragments and JSON.
type CompressionConfig struct {
	Enabled bool `env:"ENABLED"  envDefault:"false"`
	Level   int  `env:"LEVEL"    envDefault:"6"`
	MinSize int  `env:"MIN_SIZE" envDefault:"512"`
}

func (h *HTTPConfig) Sanitize() {
	h.BaseURL = strings.TrimRight(strings.TrimSpace(h.BaseURL), "/")
	h.CookieDomain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(h.CookieDomain)), ".")
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = 2 * time.Minute
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
	h.Compression.Level = min(max(h.Compression.Level, 1), 9)
	h.Compression.MinSize = max(h.Compression.MinSize, 0)
}

// SecureCookies reports whether the console is served over https.
func (h *HTTPConfig) SecureCookies() bool {
	return strings.HasPrefix(strings.ToLower(h.BaseURL), "https://")
}

// ValidateCookieDomain rejects a CookieDomain that is itself a public suffix
// ("com", "com.mx", "github.io"). Browsers refuse such cookies or share them
// with every site under the suffix. Empty means host-only cookies.
func (h *HTTPConfig) ValidateCookieDomain() error {
	if h.CookieDomain == "" {
		return nil
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(h.CookieDomain); err != nil {
		return fmt.Errorf("APP_COOKIE_DOMAIN %q is a public suffix: %w", h.CookieDomain, err)
	}
	return nil
}
