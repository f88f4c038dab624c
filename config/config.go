// Package config holds the console configuration, parsed from the environment
// with caarlos0/env. Each concern lives in its own file and owns a Sanitize
// method that clamps or defaults what the environment got wrong.
package config

import (
	"os"
	"strings"
)

// AppConfig is the root of the configuration tree.
type AppConfig struct {
	// IsDev reads templates and static files from disk and reloads templates
	// on every request. NODE_ENV=development also turns it on.
	IsDev bool `env:"DEV" envDefault:"false"`

	API  APIConfig
	Auth AuthConfig

	// Audit needs Postgres; without it console actions are not recorded.
	Audit    AuditConfig
	Postgres DBConfig `envPrefix:"DB_"`

	// Redis backs sessions and the reference cache when configured.
	Redis RedisConfig `envPrefix:"REDIS_"`
	Cache CacheConfig

	HTTP          HTTPConfig
	UI            UIConfig
	Observability ObservabilityConfig
}

// Sanitize runs every section's guardrails. Call it once after parsing.
func (c *AppConfig) Sanitize() {
	for _, s := range []interface{ Sanitize() }{
		&c.HTTP, &c.API, &c.Auth, &c.Cache, &c.UI, &c.Observability,
	} {
		s.Sanitize()
	}
	if !c.IsDev {
		switch strings.ToLower(os.Getenv("NODE_ENV")) {
		case "development", "dev":
			c.IsDev = true
		}
	}
}

// AuditEnabled reports whether console actions are recorded in Postgres.
func (c *AppConfig) AuditEnabled() bool {
	return c.Audit.Enabled
}
