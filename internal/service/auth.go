package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	apperrors "github.com/txpay/txpay-admin/internal/errors"
	"github.com/txpay/txpay-admin/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	Roles    ports.RoleMapper
	// SessionTTL applies when the provider reports no expiry.
	SessionTTL time.Duration
	Logger     *slog.Logger
	// Now overrides the clock (tests).
	Now func() time.Time
}

// AuthService signs staff in against the API and keeps their console sessions.
type AuthService struct {
	provider ports.AuthProvider
	sessions ports.SessionStore
	roles    ports.RoleMapper
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

var errSessionExpired = errors.New("session expired")

const defaultSessionTTL = 8 * time.Hour

func NewAuthService(opts AuthServiceOptions) *AuthService {
	s := &AuthService{
		provider: opts.Provider,
		sessions: opts.Sessions,
		roles:    opts.Roles,
		ttl:      cmp.Or(max(opts.SessionTTL, 0), defaultSessionTTL),
		logger:   cmp.Or(opts.Logger, slog.Default()),
		now:      opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Login authenticates credentials, maps the API role and persists a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (domainauth.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domainauth.Session{}, apperrors.Validation("email and password are required")
	}

	identity, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("authenticate: %w", err)
	}

	expires, ok := s.expiry(identity.ExpiresAt)
	if !ok {
		return domainauth.Session{}, apperrors.Unauthorized("the API issued an expired token")
	}

	email = cmp.Or(identity.Email, email)
	session := domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    identity.UserID,
		Name:      cmp.Or(identity.Name, email),
		Email:     email,
		Role:      s.roles.Map(identity.APIRole),
		PartnerID: identity.PartnerID,
		APIToken:  identity.APIToken,
		ExpiresAt: expires,
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if s.now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout revokes the API token (best-effort) and always removes the session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if session, err := s.sessions.Get(ctx, sessionID); err == nil && session.APIToken != "" {
		if revokeErr := s.provider.Revoke(ctx, session.APIToken); revokeErr != nil {
			s.logger.WarnContext(ctx, "api logout failed", "error", revokeErr, "user_id", session.UserID)
		}
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Profile returns the caller's profile from the API.
func (s *AuthService) Profile(ctx context.Context, api ports.TXPayAPI) (ProfileView, error) {
	p, err := api.Profile(ctx)
	if err != nil {
		return ProfileView{}, err
	}
	return ProfileView{Profile: p, Role: s.roles.Map(p.Role)}, nil
}

// expiry caps the token expiry at the session TTL. A token without exp gets
// the full TTL; one already expired is refused.
func (s *AuthService) expiry(token time.Time) (time.Time, bool) {
	now := s.now()
	limit := now.Add(s.ttl)
	if token.IsZero() || token.After(limit) {
		return limit, true
	}
	return token, token.After(now)
}
