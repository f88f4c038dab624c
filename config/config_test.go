package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("AUTH_MODE", "MOCK")
	t.Setenv("AUTH_SESSION_TTL", "2h")
	t.Setenv("DEV_AUTH_USER_ID", "u-1")
	t.Setenv("DEV_AUTH_NAME", "Dana Dev")
	t.Setenv("DEV_AUTH_EMAIL", "dana@txpay.example")
	t.Setenv("DEV_AUTH_ROLE", "partner")
	t.Setenv("DEV_AUTH_PARTNER_ID", "p-9")
	t.Setenv("DEV_AUTH_API_TOKEN", "dev-token")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expected := AuthConfig{
		Mode:       AuthModeMock,
		SessionTTL: 2 * time.Hour,
		DevAuth: DevAuthConfig{
			UserID:    "u-1",
			Name:      "Dana Dev",
			Email:     "dana@txpay.example",
			Role:      "partner",
			PartnerID: "p-9",
			APIToken:  "dev-token",
		},
	}

	if !reflect.DeepEqual(cfg.Auth, expected) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Auth)
	}
}

func TestAppConfig_InvalidAuthMode(t *testing.T) {
	t.Setenv("AUTH_MODE", "oauth")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatalf("expected error for unsupported auth mode")
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModeAPI {
		t.Errorf("expected api auth mode, got %q", cfg.Auth.Mode)
	}
	if cfg.UI.FilterDebounce != 400*time.Millisecond {
		t.Errorf("expected 400ms debounce, got %s", cfg.UI.FilterDebounce)
	}
	if cfg.UI.PageSize != 20 {
		t.Errorf("expected page size 20, got %d", cfg.UI.PageSize)
	}
	if cfg.Cache.ReferenceTTL != 5*time.Minute {
		t.Errorf("expected reference ttl 5m, got %s", cfg.Cache.ReferenceTTL)
	}
	if cfg.Redis.Configured() {
		t.Errorf("expected redis to be unconfigured by default")
	}
	if cfg.AuditEnabled() {
		t.Errorf("expected audit to be disabled by default")
	}
}

func TestUIConfig_DefaultCountry(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		build    string
		expected string
	}{
		{name: "env wins", env: "mx", build: "CA", expected: "MX"},
		{name: "build default", env: "", build: "ca", expected: "CA"},
		{name: "invalid env falls through", env: "USA", build: "", expected: FallbackCountry},
		{name: "hard-coded fallback", env: "", build: "", expected: FallbackCountry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := BuildDefaultCountry
			BuildDefaultCountry = tt.build
			t.Cleanup(func() { BuildDefaultCountry = prev })

			cfg := UIConfig{DefaultCountry: tt.env}
			cfg.Sanitize()

			if cfg.DefaultCountry != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, cfg.DefaultCountry)
			}
		})
	}
}

func TestUIConfig_Sanitize(t *testing.T) {
	cfg := UIConfig{PageSize: 1000, FilterDebounce: -1}
	cfg.Sanitize()

	if cfg.PageSize != 100 {
		t.Errorf("expected page size clamped to 100, got %d", cfg.PageSize)
	}
	if cfg.FilterDebounce != 400*time.Millisecond {
		t.Errorf("expected debounce reset to 400ms, got %s", cfg.FilterDebounce)
	}
	if cfg.DefaultLocale != "en-US" {
		t.Errorf("expected en-US locale, got %q", cfg.DefaultLocale)
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{
		BaseURL:     " https://admin.txpay.example/ ",
		Compression: CompressionConfig{Level: 42, MinSize: -1},
	}
	cfg.Sanitize()

	if cfg.Compression.Level != 9 || cfg.Compression.MinSize != 0 {
		t.Errorf("compression = %+v, want level 9 and min size 0", cfg.Compression)
	}
	if cfg.BaseURL != "https://admin.txpay.example" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.WriteTimeout != 2*time.Minute || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("timeouts = %s / %s", cfg.WriteTimeout, cfg.ShutdownTimeout)
	}
	if !cfg.SecureCookies() {
		t.Errorf("expected secure cookies for https base url")
	}
}

func TestLoadHTTPConfig_CompressionFromEnv(t *testing.T) {
	t.Setenv("HTTP_COMPRESSION_ENABLED", "true")
	t.Setenv("HTTP_COMPRESSION_LEVEL", "0")

	var cfg HTTPConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatal(err)
	}
	cfg.Sanitize()

	if !cfg.Compression.Enabled || cfg.Compression.Level != 1 || cfg.Compression.MinSize != 512 {
		t.Errorf("compression = %+v", cfg.Compression)
	}
}

func TestAPIConfig_Sanitize(t *testing.T) {
	cfg := APIConfig{BaseURL: "https://api.txpay.example/v1/", Timeout: 0}
	cfg.Sanitize()

	if cfg.BaseURL != "https://api.txpay.example/v1" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.Timeout != defaultAPITimeout {
		t.Errorf("expected default timeout, got %s", cfg.Timeout)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
}

func TestObservabilityMetricsConfig_PrefixDots(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Prefix: " txpay_admin. "}
	cfg.Sanitize()
	if cfg.Prefix != "txpay_admin" {
		t.Fatalf("prefix = %q, want txpay_admin", cfg.Prefix)
	}
}

func TestLoggingConfig_Sanitize(t *testing.T) {
	for in, want := range map[string]string{"Text": LogFormatText, "json": LogFormatJSON, "logfmt": LogFormatJSON, "": LogFormatJSON} {
		cfg := LoggingConfig{Format: in}
		cfg.Sanitize()
		if cfg.Format != want {
			t.Errorf("Format %q sanitized to %q, want %q", in, cfg.Format, want)
		}
	}
}

func TestHTTPConfig_ValidateCookieDomain(t *testing.T) {
	tests := []struct {
		domain  string
		wantErr bool
	}{
		{domain: ""},
		{domain: ".TXPay.example"},
		{domain: "admin.txpay.com.mx"},
		{domain: "com", wantErr: true},
		{domain: " .com.mx ", wantErr: true},
		{domain: "github.io", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			cfg := HTTPConfig{CookieDomain: tt.domain}
			cfg.Sanitize()
			err := cfg.ValidateCookieDomain()
			if tt.wantErr && (err == nil || !strings.Contains(err.Error(), "public suffix")) {
				t.Fatalf("ValidateCookieDomain(%q) = %v, want public suffix error", tt.domain, err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("ValidateCookieDomain(%q) = %v, want nil", tt.domain, err)
			}
		})
	}
}

func TestHTTPConfig_SanitizeCookieDomain(t *testing.T) {
	cfg := HTTPConfig{CookieDomain: "  .Admin.TXPay.example "}
	cfg.Sanitize()
	if cfg.CookieDomain != "admin.txpay.example" {
		t.Fatalf("CookieDomain = %q, want admin.txpay.example", cfg.CookieDomain)
	}
}
