package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
)

func TestSessionContext(t *testing.T) {
	assert.Nil(t, SessionFrom(context.Background()))
	assert.Equal(t, context.Background(), WithSession(context.Background(), nil))

	sess := &domainauth.Session{ID: "abc", Role: domainauth.RolePartner}
	assert.Same(t, sess, SessionFrom(WithSession(context.Background(), sess)))
}

func TestSignedIn(t *testing.T) {
	tests := []struct {
		name string
		sess *domainauth.Session
		want bool
	}{
		{name: "anonymous", sess: nil, want: false},
		{name: "guest", sess: &domainauth.Session{ID: "g", Role: domainauth.RoleGuest}, want: false},
		{name: "partner", sess: &domainauth.Session{ID: "p", Role: domainauth.RolePartner}, want: true},
		{name: "admin", sess: &domainauth.Session{ID: "a", Role: domainauth.RoleAdmin}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := signedIn(WithSession(context.Background(), tt.sess))
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Same(t, tt.sess, s)
			} else {
				assert.Nil(t, s)
			}
		})
	}
}
