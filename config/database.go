package config

import "time"

// AuditConfig toggles the Postgres-backed audit trail of console actions.
type AuditConfig struct {
	Enabled bool `env:"AUDIT_ENABLED" envDefault:"false"`
	// RecentLimit caps the entries shown on the configuration tab.
	RecentLimit int `env:"AUDIT_RECENT_LIMIT" envDefault:"20"`
}

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"txpay"`
	Password string `env:"PASSWORD"                envDefault:"txpay"`
	Name     string `env:"NAME"                    envDefault:"txpay_admin"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration.
// An empty URI disables Redis; sessions then live in process memory.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:""`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// Configured reports whether any Redis topology is configured.
func (r *RedisConfig) Configured() bool {
	return r.URI != "" || (r.UseSentinel && len(r.SentinelNodes) > 0) || (r.UseCluster && len(r.ClusterNodes) > 0)
}

// CacheConfig contains reference-data cache configuration (Redis-based).
type CacheConfig struct {
	// ReferenceTTL is the TTL for cached dropdown options (merchants).
	ReferenceTTL time.Duration `env:"CACHE_REFERENCE_TTL" envDefault:"5m"`
	// KeyPrefix namespaces every cache key.
	KeyPrefix string `env:"CACHE_KEY_PREFIX" envDefault:"txpay:ref:"`
}

// Sanitize enforces a positive TTL.
func (c *CacheConfig) Sanitize() {
	if c.ReferenceTTL <= 0 {
		c.ReferenceTTL = 5 * time.Minute
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "txpay:ref:"
	}
}
