package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txpay/txpay-admin/config"
	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	"github.com/txpay/txpay-admin/internal/txpay"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildAuthService_MockModeUsesMemorySessions(t *testing.T) {
	svc, err := BuildAuthService(AuthConfig{
		Auth: config.AuthConfig{
			Mode:       config.AuthModeMock,
			SessionTTL: time.Hour,
			DevAuth: config.DevAuthConfig{
				UserID: "dev", Name: "Dev", Email: "dev@txpay.example", Role: "partner", APIToken: "dev-token",
			},
		},
		Logger: discardLogger(),
	})
	require.NoError(t, err)

	sess, err := svc.Login(context.Background(), "anyone@txpay.example", "whatever")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RolePartner, sess.Role)
	assert.Equal(t, "dev-token", sess.APIToken)

	got, err := svc.GetSession(context.Background(), sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "dev@txpay.example", got.Email)
}

func TestBuildAuthService_Errors(t *testing.T) {
	tests := []struct {
		name string
		auth config.AuthConfig
	}{
		{name: "api mode without client", auth: config.AuthConfig{Mode: config.AuthModeAPI}},
		{name: "mock mode without identity", auth: config.AuthConfig{Mode: config.AuthModeMock}},
		{name: "unknown mode", auth: config.AuthConfig{Mode: "oauth"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := BuildAuthService(AuthConfig{Auth: tt.auth, Logger: discardLogger()})
			require.Error(t, err)
			assert.Nil(t, svc)
		})
	}
}

func TestBuildAuthService_APIMode(t *testing.T) {
	api, err := txpay.New(txpay.Options{BaseURL: "https://api.txpay.example"})
	require.NoError(t, err)

	svc, err := BuildAuthService(AuthConfig{Auth: config.AuthConfig{Mode: config.AuthModeAPI}, API: api, Logger: discardLogger()})

	require.NoError(t, err)
	assert.NotNil(t, svc)
}
