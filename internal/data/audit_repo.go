package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/txpay/txpay-admin/internal/data/pgxutil"
	apperrors "github.com/txpay/txpay-admin/internal/errors"
	"github.com/txpay/txpay-admin/internal/ports"
)

// maxRecentAudit caps Recent regardless of the requested limit.
const maxRecentAudit = 200

// auditColumns defines the column list for audit SELECT queries to ensure consistent field mapping.
const auditColumns = `id, actor_id, actor_name, action, entity, entity_id, detail, outcome, created_at`

// AuditRepo stores console audit entries in Postgres.
type AuditRepo struct {
	DB  *sql.DB
	now func() time.Time
}

var _ ports.AuditRepository = (*AuditRepo)(nil)

// NewAuditRepo creates a new AuditRepo instance with the given database connection.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{DB: db, now: time.Now}
}

// NewAuditRepoWithClock creates an AuditRepo that stamps entries with now.
func NewAuditRepoWithClock(db *sql.DB, now func() time.Time) *AuditRepo {
	return &AuditRepo{DB: db, now: now}
}

func collectOne(rows pgx.Rows) (ports.AuditEntry, error) {
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[ports.AuditEntry])
}

func collectAll(rows pgx.Rows) ([]ports.AuditEntry, error) {
	return pgx.CollectRows(rows, pgx.RowToStructByName[ports.AuditEntry])
}

// Insert stores e and returns it with its id and timestamp.
func (r *AuditRepo) Insert(ctx context.Context, e ports.AuditEntry) (ports.AuditEntry, error) {
	if strings.TrimSpace(e.ActorID) == "" {
		return ports.AuditEntry{}, apperrors.ValidationField("actor_id", "actor is required")
	}
	if e.Action == "" || e.Entity == "" {
		return ports.AuditEntry{}, apperrors.Validation("action and entity are required")
	}

	query := `
		INSERT INTO audit_entries (actor_id, actor_name, action, entity, entity_id, detail, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + auditColumns

	out, err := pgxutil.Collect(ctx, r.DB, collectOne, query,
		e.ActorID, e.ActorName, e.Action, e.Entity, e.EntityID, e.Detail, e.Outcome,
		r.now().UTC(),
	)
	if err != nil {
		return ports.AuditEntry{}, fmt.Errorf("insert audit entry: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// Recent returns the newest entries first.
func (r *AuditRepo) Recent(ctx context.Context, limit int) ([]ports.AuditEntry, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	limit = min(limit, maxRecentAudit)

	query := `SELECT ` + auditColumns + ` FROM audit_entries ORDER BY created_at DESC, id DESC LIMIT $1`

	out, err := pgxutil.Collect(ctx, r.DB, collectAll, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// Prune deletes entries older than the newest keep rows and reports how many were removed.
func (r *AuditRepo) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, errors.New("keep must not be negative")
	}
	var deleted int64
	err := pgxutil.InTx(ctx, r.DB, nil, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM audit_entries
			WHERE id NOT IN (SELECT id FROM audit_entries ORDER BY created_at DESC, id DESC LIMIT $1)`, keep)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("prune audit entries: %w", apperrors.MapDBError(err))
	}
	return deleted, nil
}
