// Package migrate applies the audit trail schema. Migrations are embedded SQL
// files applied in name order, each in its own transaction.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/txpay/txpay-admin/internal/data/pgxutil"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// lockKey serializes migrations across replicas starting at the same time.
const lockKey = 727_001

const createLedger = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Versions lists the embedded migrations in apply order.
func Versions() ([]string, error) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, strings.TrimSuffix(path.Base(name), ".sql"))
	}
	slices.Sort(out)
	return out, nil
}

// Pending lists the embedded migrations db has not recorded yet.
func Pending(ctx context.Context, db *sql.DB) ([]string, error) {
	all, err := Versions()
	if err != nil {
		return nil, err
	}
	if _, err = db.ExecContext(ctx, createLedger); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	applied, err := pgxutil.Collect(ctx, db, pgxutil.Strings, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	return slices.DeleteFunc(all, func(v string) bool { return slices.Contains(applied, v) }), nil
}

// Run applies every pending migration and returns the versions it applied.
// Running it again is a no-op.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := db.ExecContext(ctx, createLedger); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	versions, err := Versions()
	if err != nil {
		return nil, err
	}
	var applied []string
	for _, v := range versions {
		ok, err := apply(ctx, db, v)
		if err != nil {
			return applied, err
		}
		if ok {
			logger.InfoContext(ctx, "applied migration", "version", v)
			applied = append(applied, v)
		}
	}
	return applied, nil
}

// apply runs one migration under the advisory lock. It reports false when
// another process recorded the version first.
func apply(ctx context.Context, db *sql.DB, version string) (bool, error) {
	body, err := migrationsFS.ReadFile("migrations/" + version + ".sql")
	if err != nil {
		return false, fmt.Errorf("read migration %s: %w", version, err)
	}

	var ran bool
	err = pgxutil.InTx(ctx, db, nil, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, lockKey); err != nil {
			return fmt.Errorf("lock migrations: %w", err)
		}
		var done bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&done)
		if err != nil || done {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			return fmt.Errorf("exec migration %s: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", version, err)
		}
		ran = true
		return nil
	})
	return ran, err
}
