package txpay

import (
	"context"
	"log/slog"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	"github.com/txpay/txpay-admin/internal/ports"
)

// AuthProvider authenticates staff against the API login endpoint.
type AuthProvider struct {
	client *Client
	logger *slog.Logger
}

var _ ports.AuthProvider = (*AuthProvider)(nil)

// NewAuthProvider wraps an unauthenticated client.
func NewAuthProvider(client *Client, logger *slog.Logger) *AuthProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthProvider{client: client, logger: logger}
}

// Authenticate implements ports.AuthProvider.
func (p *AuthProvider) Authenticate(ctx context.Context, email, password string) (domainauth.Identity, error) {
	resp, err := p.client.Login(ctx, email, password)
	if err != nil {
		return domainauth.Identity{}, err
	}

	id := domainauth.Identity{
		UserID:    resp.User.ID,
		Name:      resp.User.Name,
		Email:     resp.User.Email,
		APIRole:   resp.User.Role,
		PartnerID: resp.User.PartnerID,
		APIToken:  resp.AccessToken,
	}

	claims, err := ParseTokenClaims(resp.AccessToken)
	if err != nil {
		// Opaque tokens are valid; the session falls back to the configured TTL.
		p.logger.DebugContext(ctx, "access token is not a JWT", "error", err)
		return id, nil
	}
	id.ExpiresAt = claims.ExpiresAt
	if id.UserID == "" {
		id.UserID = claims.Subject
	}
	if id.Email == "" {
		id.Email = claims.Email
	}
	if id.APIRole == "" {
		id.APIRole = claims.Role
	}
	if id.PartnerID == "" {
		id.PartnerID = claims.PartnerID
	}
	return id, nil
}

// Revoke implements ports.AuthProvider.
func (p *AuthProvider) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return p.client.WithToken(token).Logout(ctx)
}
