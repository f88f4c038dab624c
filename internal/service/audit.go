package service

import (
	"context"
	"log/slog"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	"github.com/txpay/txpay-admin/internal/observability/statsd"
	"github.com/txpay/txpay-admin/internal/ports"
)

// Audit outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// AuditEvent describes one mutating console action.
type AuditEvent struct {
	Action   string
	Entity   string
	EntityID string
	Detail   string
	Err      error
}

// AuditService records console actions. A nil repository disables persistence.
type AuditService struct {
	repo    ports.AuditRepository
	metrics statsd.Sink
	logger  *slog.Logger
}

// AuditServiceOptions groups dependencies for AuditService.
type AuditServiceOptions struct {
	Repo    ports.AuditRepository // optional
	Metrics statsd.Sink
	Logger  *slog.Logger
}

// NewAuditService constructs an AuditService.
func NewAuditService(opts AuditServiceOptions) *AuditService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditService{repo: opts.Repo, metrics: statsd.OrNop(opts.Metrics), logger: logger}
}

// Enabled reports whether entries are persisted.
func (s *AuditService) Enabled() bool { return s != nil && s.repo != nil }

// Record persists ev for actor. Failures are logged and never returned:
// the action itself already happened upstream.
func (s *AuditService) Record(ctx context.Context, actor domainauth.Session, ev AuditEvent) {
	if s == nil {
		return
	}
	outcome := OutcomeOK
	if ev.Err != nil {
		outcome = OutcomeFailed
	}
	s.metrics.Count("console.actions", 1, map[string]string{
		"action":  ev.Action,
		"entity":  ev.Entity,
		"outcome": outcome,
	})
	if s.repo == nil {
		return
	}

	entry := ports.AuditEntry{
		ActorID:   actor.UserID,
		ActorName: actor.Name,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Detail:    ev.Detail,
		Outcome:   outcome,
	}
	if ev.Err != nil && entry.Detail == "" {
		entry.Detail = ev.Err.Error()
	}
	if _, err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "audit insert failed",
			"error", err, "action", ev.Action, "entity", ev.Entity, "entity_id", ev.EntityID)
	}
}

// Recent returns the latest entries, newest first. It returns nothing when disabled.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]ports.AuditEntry, error) {
	if !s.Enabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.Recent(ctx, limit)
}
