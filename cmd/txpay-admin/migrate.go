package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/txpay/txpay-admin/internal/bootstrap"
	"github.com/txpay/txpay-admin/internal/migrate"
)

const migrateTimeout = 2 * time.Minute

func (a *app) connectDB(ctx context.Context) (*sql.DB, error) {
	if a.openDB != nil {
		return a.openDB(ctx)
	}
	return bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: a.cfg.Postgres, Logger: a.logger})
}

func newMigrateCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the audit trail schema",
		Long: `Create or upgrade the audit trail schema in the DB_* database.

Migrations are also applied by the web server when DB_RUN_MIGRATIONS_ON_START
is set. With --dry-run the pending versions are listed and nothing changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()

			db, err := a.connectDB(ctx)
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			defer func() { _ = db.Close() }()

			verb, versions := "applied", []string(nil)
			if dryRun {
				verb = "pending"
				versions, err = migrate.Pending(ctx, db)
			} else {
				versions, err = migrate.Run(ctx, db, a.logger)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.output == "json" {
				if versions == nil {
					versions = []string{}
				}
				return writeJSON(out, map[string][]string{verb: versions})
			}
			if len(versions) == 0 {
				_, err = fmt.Fprintln(out, "schema is up to date")
				return err
			}
			for _, v := range versions {
				if _, err = fmt.Fprintln(out, verb, v); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list pending migrations without applying them")
	return cmd
}
