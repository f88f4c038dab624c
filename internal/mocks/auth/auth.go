// Package auth holds func-field fakes for the auth ports. Service tests use
// them where a gomock expectation would only restate the happy path.
package auth

import (
	"context"
	"errors"
	"maps"
	"strings"
	"sync"
	"time"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	"github.com/txpay/txpay-admin/internal/ports"
)

var (
	_ ports.AuthProvider = (*Provider)(nil)
	_ ports.SessionStore = (*SessionStore)(nil)
	_ ports.RoleMapper   = RoleTable(nil)
)

// ErrNotFound is returned by SessionStore.Get for unknown ids.
var ErrNotFound = errors.New("session not found")

// Staff is the identity Provider returns when AuthenticateFunc is unset.
func Staff() domainauth.Identity {
	return domainauth.Identity{
		UserID:   "staff-1",
		Name:     "Sam Staff",
		Email:    "sam@txpay.test",
		APIRole:  "ADMIN",
		APIToken: "staff-token",
	}
}

// Provider stands in for the API login endpoint.
type Provider struct {
	AuthenticateFunc func(ctx context.Context, email, password string) (domainauth.Identity, error)
	RevokeFunc       func(ctx context.Context, token string) error

	mu      sync.Mutex
	revoked []string
}

// NewProvider signs every caller in as Staff for an hour.
func NewProvider() *Provider { return &Provider{} }

func (p *Provider) Authenticate(ctx context.Context, email, password string) (domainauth.Identity, error) {
	if p.AuthenticateFunc != nil {
		return p.AuthenticateFunc(ctx, email, password)
	}
	id := Staff()
	id.ExpiresAt = time.Now().Add(time.Hour)
	return id, nil
}

func (p *Provider) Revoke(ctx context.Context, token string) error {
	p.mu.Lock()
	p.revoked = append(p.revoked, token)
	p.mu.Unlock()
	if p.RevokeFunc == nil {
		return nil
	}
	return p.RevokeFunc(ctx, token)
}

// Revoked returns the tokens seen by Revoke, oldest first.
func (p *Provider) Revoked() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.revoked...)
}

// SessionStore keeps sessions in a map. Expiry is left to the service.
type SessionStore struct {
	mu   sync.Mutex
	byID map[string]domainauth.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{byID: map[string]domainauth.Session{}}
}

func (s *SessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session id is empty")
	}
	s.mu.Lock()
	s.byID[sess.ID] = sess
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.byID[id]; ok {
		return sess, nil
	}
	return domainauth.Session{}, ErrNotFound
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()
	return nil
}

// Len reports how many sessions are stored.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Snapshot copies the stored sessions.
func (s *SessionStore) Snapshot() map[string]domainauth.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.byID)
}

// RoleTable maps upper-cased API roles; anything else is a guest.
type RoleTable map[string]domainauth.Role

func (t RoleTable) Map(apiRole string) domainauth.Role {
	if r, ok := t[strings.ToUpper(apiRole)]; ok {
		return r
	}
	return domainauth.RoleGuest
}
