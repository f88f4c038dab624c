package ports

// Package ports defines interfaces (hexagonal ports) for the console's collaborators.
// Implementations live in internal/adapters and internal/txpay; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
)

// AuthProvider authenticates staff credentials and manages the resulting API token.
type AuthProvider interface {
	// Authenticate verifies credentials and returns the identity with its API token.
	Authenticate(ctx context.Context, email, password string) (domainauth.Identity, error)

	// Revoke ends the API-side session for token. Implementations may treat it as best-effort.
	Revoke(ctx context.Context, token string) error
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleMapper maps the API-reported role to a console role.
type RoleMapper interface {
	Map(apiRole string) domainauth.Role
}
