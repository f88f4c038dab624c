package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// AuthMode selects how staff sign in.
type AuthMode string

const (
	// AuthModeAPI signs in through the TX Pay API login endpoint.
	AuthModeAPI AuthMode = "api"
	// AuthModeMock signs everyone in as the DEV_AUTH_* identity. Dev only.
	AuthModeMock AuthMode = "mock"
)

//nolint:gochecknoglobals // read-only
var authModes = []AuthMode{AuthModeAPI, AuthModeMock}

const defaultSessionTTL = 8 * time.Hour

func (a *AuthMode) UnmarshalText(text []byte) error {
	mode := AuthMode(strings.ToLower(strings.TrimSpace(string(text))))
	if !slices.Contains(authModes, mode) {
		return fmt.Errorf("invalid AUTH_MODE %q (want one of %v)", mode, authModes)
	}
	*a = mode
	return nil
}

// DevAuthConfig is the identity used when AUTH_MODE=mock.
type DevAuthConfig struct {
	UserID    string `env:"USER_ID"    envDefault:"dev-admin"`
	Name      string `env:"NAME"       envDefault:"Dev Admin"`
	Email     string `env:"EMAIL"      envDefault:"dev@txpay.example"`
	Role      string `env:"ROLE"       envDefault:"admin"`
	PartnerID string `env:"PARTNER_ID" envDefault:""`
	// APIToken is sent to the API on behalf of the dev identity.
	APIToken string `env:"API_TOKEN" envDefault:""`
}

type AuthConfig struct {
	Mode AuthMode `env:"AUTH_MODE" envDefault:"api"`
	// SessionTTL caps every session and applies alone when the token has no exp.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"8h"`
	DevAuth    DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize restores the default TTL and lower-cases the dev role.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = defaultSessionTTL
	}
	a.DevAuth.Role = strings.ToLower(strings.TrimSpace(a.DevAuth.Role))
}
