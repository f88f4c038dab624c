// Package redis provides Redis-backed adapters for console sessions and the
// reference cache.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
)

// DefaultSessionPrefix namespaces console sessions in a shared Redis.
const DefaultSessionPrefix = "txpay:session:"

// sessionFormat is bumped whenever the stored record changes shape. Records of
// another format read as missing, which sends the user back to the login page.
const sessionFormat = 2

// ErrNotFound is returned when a session is absent, expired or unreadable.
var ErrNotFound = errors.New("session not found")

type sessionRecord struct {
	Format  int                `json:"v"`
	Session domainauth.Session `json:"session"`
}

// SessionStore keeps sessions as JSON records that expire with the session.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewSessionStore creates a store using DefaultSessionPrefix.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, DefaultSessionPrefix)
}

// NewSessionStoreWithPrefix creates a store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{client: client, prefix: prefix, now: time.Now}
}

func (s *SessionStore) key(id string) string {
	return s.prefix + id
}

// Save writes sess with an absolute expiry at sess.ExpiresAt.
func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if !sess.ExpiresAt.After(s.now()) {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sessionRecord{Format: sessionFormat, Session: sess})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	err = s.client.SetArgs(ctx, s.key(sess.ID), data, redis.SetArgs{ExpireAt: sess.ExpiresAt}).Err()
	if err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Get loads a live session. Unreadable records are deleted.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domainauth.Session{}, ErrNotFound
	}
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var rec sessionRecord
	if jsonErr := json.Unmarshal(data, &rec); jsonErr != nil || rec.Format != sessionFormat {
		if delErr := s.Delete(ctx, id); delErr != nil {
			return domainauth.Session{}, fmt.Errorf("drop unreadable session: %w", delErr)
		}
		return domainauth.Session{}, ErrNotFound
	}

	// The key normally expires first; this covers clock skew with Redis.
	if s.now().After(rec.Session.ExpiresAt) {
		if delErr := s.Delete(ctx, id); delErr != nil {
			return domainauth.Session{}, fmt.Errorf("drop expired session: %w", delErr)
		}
		return domainauth.Session{}, ErrNotFound
	}
	return rec.Session, nil
}

// Delete removes a session. Unknown ids are not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
