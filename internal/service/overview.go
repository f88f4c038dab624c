package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/ports"
)

// Overview is the content of the configuration tab.
type Overview struct {
	Profile     model.Profile
	Health      model.Health
	HealthErr   error
	Audit       []ports.AuditEntry
	AuditActive bool
}

// LoadOverview fetches the caller profile, API health and recent audit entries concurrently.
// Only a profile failure is returned; health and audit failures are reported inline.
func LoadOverview(ctx context.Context, api ports.TXPayAPI, audit *AuditService, auditLimit int) (Overview, error) {
	var ov Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := api.Profile(gctx)
		if err != nil {
			return err
		}
		ov.Profile = p
		return nil
	})
	g.Go(func() error {
		ov.Health, ov.HealthErr = api.Health(gctx)
		return nil
	})
	g.Go(func() error {
		if !audit.Enabled() {
			return nil
		}
		entries, err := audit.Recent(gctx, auditLimit)
		if err != nil {
			slog.WarnContext(gctx, "audit recent failed", "error", err)
			return nil
		}
		ov.Audit = entries
		ov.AuditActive = true
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return ov, nil
}
