// Package testutil provides Postgres and Redis fixtures for integration tests.
// Tests skip when the service is unreachable unless TEST_REQUIRE_INFRA (or the
// per-service TEST_REQUIRE_DB / TEST_REQUIRE_REDIS) is set.
package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	// Registers the pgx driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/txpay/txpay-admin/internal/migrate"
)

// DBConfig locates the test Postgres. The defaults match the docker compose
// test profile; CI overrides them through TEST_DB_* variables.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     string `env:"PORT"     envDefault:"55432"`
	User     string `env:"USER"     envDefault:"txpay"`
	Password string `env:"PASSWORD" envDefault:"txpay"`
	Name     string `env:"NAME"     envDefault:"txpay_admin"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`
}

// LoadDBConfig reads TEST_DB_* variables.
func LoadDBConfig() (DBConfig, error) {
	var cfg DBConfig
	err := env.ParseWithOptions(&cfg, env.Options{Prefix: "TEST_DB_"})
	return cfg, err
}

// DSN renders a pgx connection URL. A non-empty schema is put first on the search path.
func (c DBConfig) DSN(schema string) string {
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	if schema != "" {
		q.Set("search_path", schema+",public")
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// WithAutoDB runs fn against a fresh schema with all migrations applied.
// The schema is dropped when the test ends.
func WithAutoDB(t testing.TB, fn func(*sql.DB)) {
	t.Helper()
	fn(NewSchemaDB(t))
}

// NewSchemaDB opens a connection scoped to a new, migrated schema.
func NewSchemaDB(t testing.TB) *sql.DB {
	t.Helper()
	cfg, err := LoadDBConfig()
	if err != nil {
		t.Fatalf("test db config: %v", err)
	}

	admin := openPinged(t, cfg.DSN(""), requireEnv("TEST_REQUIRE_DB"))
	schema := schemaName()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := admin.ExecContext(ctx, "CREATE SCHEMA "+schema); err != nil {
		_ = admin.Close()
		t.Fatalf("create schema %s: %v", schema, err)
	}

	db := openPinged(t, cfg.DSN(schema), true)
	t.Cleanup(func() {
		_ = db.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := admin.ExecContext(ctx, "DROP SCHEMA IF EXISTS "+schema+" CASCADE"); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
		_ = admin.Close()
	})

	mctx, mcancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer mcancel()
	if _, err := migrate.Run(mctx, db, slog.New(slog.DiscardHandler)); err != nil {
		t.Fatalf("migrate schema %s: %v", schema, err)
	}
	return db
}

// openPinged opens dsn and skips (or fails, when required) if it does not answer.
func openPinged(t testing.TB, dsn string, required bool) *sql.DB {
	t.Helper()
	db, err := sql.Open("pgx", dsn)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err = db.PingContext(ctx)
		cancel()
		if err != nil {
			_ = db.Close()
		}
	}
	if err != nil {
		if required || requireEnv("TEST_REQUIRE_INFRA") {
			t.Fatalf("test database not available: %v", err)
		}
		t.Skipf("test database not available: %v", err)
	}
	return db
}

func schemaName() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "t_" + strings.ReplaceAll(time.Now().Format("150405.000000"), ".", "")
	}
	return "t_" + hex.EncodeToString(b)
}

func requireEnv(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
