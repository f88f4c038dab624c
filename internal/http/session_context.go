package httpx

import (
	"context"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
)

type sessionKey struct{}

// WithSession returns ctx carrying s. A nil session leaves ctx unchanged.
func WithSession(ctx context.Context, s *domainauth.Session) context.Context {
	if s == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session attached by the auth middleware, or nil.
func SessionFrom(ctx context.Context) *domainauth.Session {
	s, _ := ctx.Value(sessionKey{}).(*domainauth.Session)
	return s
}

// signedIn returns the session when it belongs to a signed-in (non-guest) user.
func signedIn(ctx context.Context) (*domainauth.Session, bool) {
	s := SessionFrom(ctx)
	if s == nil || s.IsGuest() {
		return nil, false
	}
	return s, true
}
