// Package pgxutil bridges the database/sql pool the console holds and the
// native pgx API used for row collection.
package pgxutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// InTx runs fn in a transaction. It commits when fn returns nil and rolls
// back otherwise; a rollback failure is joined to fn's error.
func InTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rerr))
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Collect runs query on a pgx connection borrowed from db and hands the rows
// to collect, typically pgx.CollectRows or pgx.CollectOneRow. The rows are
// closed before the connection returns to the pool.
func Collect[T any](ctx context.Context, db *sql.DB, collect func(pgx.Rows) (T, error), query string, args ...any) (T, error) {
	var out T
	conn, err := db.Conn(ctx)
	if err != nil {
		return out, fmt.Errorf("acquire conn: %w", err)
	}
	defer func() { _ = conn.Close() }()

	err = conn.Raw(func(driverConn any) error {
		std, ok := driverConn.(*stdlib.Conn)
		if !ok {
			return fmt.Errorf("driver connection is %T, not *stdlib.Conn", driverConn)
		}
		rows, qerr := std.Conn().Query(ctx, query, args...)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = collect(rows)
		return qerr
	})
	return out, err
}

// Strings collects a single text column.
func Strings(rows pgx.Rows) ([]string, error) {
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
