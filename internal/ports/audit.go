package ports

import (
	"context"
	"time"
)

// AuditEntry records one mutating console action.
type AuditEntry struct {
	ID        int64     `db:"id"`
	ActorID   string    `db:"actor_id"`
	ActorName string    `db:"actor_name"`
	Action    string    `db:"action"`
	Entity    string    `db:"entity"`
	EntityID  string    `db:"entity_id"`
	Detail    string    `db:"detail"`
	Outcome   string    `db:"outcome"`
	CreatedAt time.Time `db:"created_at"`
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, e AuditEntry) (AuditEntry, error)
	Recent(ctx context.Context, limit int) ([]AuditEntry, error)
}
