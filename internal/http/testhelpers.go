package httpx

import (
	"context"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	"github.com/txpay/txpay-admin/internal/i18n"
	"github.com/txpay/txpay-admin/internal/ports"
)

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
// This centralizes the common pattern of template guard checks in tests.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// ContainsAll checks if a string contains all the given substrings.
// This is a common utility function used in template rendering tests.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// CreateUIHandlersForTest creates UIHandlers with a template renderer for testing.
// api may be nil for handlers that never reach the remote API.
func CreateUIHandlersForTest(t *testing.T, api ports.TXPayAPI) *UIHandlers {
	t.Helper()
	tr := RequireTemplateRenderer(t)
	if tr == nil {
		return nil
	}
	h := &UIHandlers{T: tr}
	if api != nil {
		h.API = ports.TXPayConnectorFunc(func(string) ports.TXPayAPI { return api })
	}
	return h
}

// TestSession returns a signed-in session with role that expires in an hour.
func TestSession(role domainauth.Role) *domainauth.Session {
	return &domainauth.Session{
		ID:        "sess-" + string(role),
		UserID:    "user-" + string(role),
		Name:      "Test " + string(role),
		Email:     string(role) + "@txpay.example",
		Role:      role,
		APIToken:  "token-" + string(role),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// WithTestContext attaches session (may be nil) and an English localizer to r,
// the way the router middleware would.
func WithTestContext(r *http.Request, session *domainauth.Session) *http.Request {
	ctx := i18n.WithLocalizer(r.Context(), i18n.NewLocalizer(i18n.MustDefault(), language.Make(i18n.BaseLocale)))
	if session != nil {
		ctx = WithSession(ctx, session)
	}
	return r.WithContext(ctx)
}

// stubAuthService is a func-field AuthServiceInterface for router and middleware tests.
type stubAuthService struct {
	loginFunc      func(ctx context.Context, email, password string) (domainauth.Session, error)
	getSessionFunc func(ctx context.Context, id string) (*domainauth.Session, error)
	logoutFunc     func(ctx context.Context, id string) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (domainauth.Session, error) {
	if s.loginFunc == nil {
		return domainauth.Session{}, nil
	}
	return s.loginFunc(ctx, email, password)
}

func (s *stubAuthService) GetSession(ctx context.Context, id string) (*domainauth.Session, error) {
	if s.getSessionFunc == nil {
		return nil, nil
	}
	return s.getSessionFunc(ctx, id)
}

func (s *stubAuthService) Logout(ctx context.Context, id string) error {
	if s.logoutFunc == nil {
		return nil
	}
	return s.logoutFunc(ctx, id)
}

// sessionsAuth resolves the given sessions by id.
func sessionsAuth(sessions ...*domainauth.Session) *stubAuthService {
	byID := make(map[string]*domainauth.Session, len(sessions))
	for _, s := range sessions {
		byID[s.ID] = s
	}
	return &stubAuthService{
		getSessionFunc: func(_ context.Context, id string) (*domainauth.Session, error) {
			if s, ok := byID[id]; ok {
				return s, nil
			}
			return nil, nil
		},
	}
}
