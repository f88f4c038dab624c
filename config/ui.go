package config

import (
	"strings"
	"time"
)

// FallbackCountry is used when neither the environment nor the build sets a default country.
const FallbackCountry = "US"

// BuildDefaultCountry is set at build time:
//
//	go build -ldflags "-X github.com/txpay/txpay-admin/config.BuildDefaultCountry=MX"
var BuildDefaultCountry = ""

// UIConfig holds dashboard defaults.
type UIConfig struct {
	// DefaultCountry pre-fills the merchant country field.
	DefaultCountry string `env:"TXPAY_DEFAULT_COUNTRY"`

	// PageSize is the limit sent with every list request.
	PageSize int `env:"UI_PAGE_SIZE" envDefault:"20"`

	// FilterDebounce is the idle window before a typed filter is committed.
	FilterDebounce time.Duration `env:"UI_FILTER_DEBOUNCE" envDefault:"400ms"`

	// DefaultLocale is used when the request carries no language preference.
	DefaultLocale string `env:"UI_DEFAULT_LOCALE" envDefault:"en-US"`
}

// Sanitize resolves the default country and clamps paging values.
func (u *UIConfig) Sanitize() {
	u.DefaultCountry = resolveCountry(u.DefaultCountry)
	if u.PageSize < 1 {
		u.PageSize = 20
	}
	if u.PageSize > 100 {
		u.PageSize = 100
	}
	if u.FilterDebounce <= 0 {
		u.FilterDebounce = 400 * time.Millisecond
	}
	if strings.TrimSpace(u.DefaultLocale) == "" {
		u.DefaultLocale = "en-US"
	}
}

func resolveCountry(fromEnv string) string {
	for _, c := range []string{fromEnv, BuildDefaultCountry} {
		c = strings.ToUpper(strings.TrimSpace(c))
		if len(c) == 2 {
			return c
		}
	}
	return FallbackCountry
}
