// Package devauth signs everyone in as one configured identity. It backs
// AUTH_MODE=mock for local work against a sandbox API.
package devauth

import (
	"cmp"
	"context"
	"errors"
	"time"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	apperrors "github.com/txpay/txpay-admin/internal/errors"
)

const defaultSessionDuration = 8 * time.Hour

// Config is the dev identity. APIToken is sent to the API as is, so it must
// be a token the target API accepts.
type Config struct {
	UserID          string
	Name            string // defaults to Email
	Email           string
	Role            string // API role name, mapped like a real login
	PartnerID       string
	APIToken        string
	SessionDuration time.Duration
}

func (c Config) validate() error {
	var errs []error
	if c.UserID == "" {
		errs = append(errs, errors.New("dev auth: UserID is required"))
	}
	if c.Email == "" {
		errs = append(errs, errors.New("dev auth: Email is required"))
	}
	return errors.Join(errs...)
}

// Provider answers every login with the configured identity. The password is
// not checked, only required.
type Provider struct {
	identity domainauth.Identity
	ttl      time.Duration
	now      func() time.Time
}

func NewProvider(cfg Config) (*Provider, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Provider{
		identity: domainauth.Identity{
			UserID:    cfg.UserID,
			Name:      cmp.Or(cfg.Name, cfg.Email),
			Email:     cfg.Email,
			APIRole:   cfg.Role,
			PartnerID: cfg.PartnerID,
			APIToken:  cfg.APIToken,
		},
		ttl: cmp.Or(cfg.SessionDuration, defaultSessionDuration),
		now: time.Now,
	}, nil
}

func (p *Provider) Authenticate(_ context.Context, email, password string) (domainauth.Identity, error) {
	if email == "" || password == "" {
		return domainauth.Identity{}, apperrors.Unauthorized("invalid credentials")
	}
	id := p.identity
	id.ExpiresAt = p.now().Add(p.ttl)
	return id, nil
}

// Revoke has nothing to revoke.
func (p *Provider) Revoke(context.Context, string) error { return nil }
