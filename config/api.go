package config

import (
	"strings"
	"time"
)

const defaultAPITimeout = 15 * time.Second

// APIConfig configures the client for the remote TX Pay API.
type APIConfig struct {
	// BaseURL is the root of the TX Pay REST API, e.g. "https://api.txpay.example/v1".
	BaseURL string `env:"TXPAY_API_URL" envDefault:"http://localhost:3000/api"`

	// Timeout bounds every API call. There are no retries.
	Timeout time.Duration `env:"TXPAY_API_TIMEOUT" envDefault:"15s"`

	UserAgent string `env:"TXPAY_API_USER_AGENT" envDefault:"txpay-admin"`
}

// Sanitize trims the base URL and enforces a positive timeout.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout <= 0 {
		a.Timeout = defaultAPITimeout
	}
	if strings.TrimSpace(a.UserAgent) == "" {
		a.UserAgent = "txpay-admin"
	}
}
