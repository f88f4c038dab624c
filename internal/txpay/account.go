package txpay

import (
	"context"
	"net/http"
	"strings"

	"github.com/txpay/txpay-admin/internal/domain/model"
	apperrors "github.com/txpay/txpay-admin/internal/errors"
)

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (model.LoginResponse, error) {
	var out model.LoginResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/auth/login",
		endpoint: "auth.login",
		body:     model.LoginRequest{Email: strings.TrimSpace(email), Password: password},
	}, &out)
	if err != nil {
		return model.LoginResponse{}, err
	}
	if out.AccessToken == "" {
		return model.LoginResponse{}, apperrors.Internal("login response carried no access token")
	}
	return out, nil
}

// Logout ends the API session of the client's token.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, call{method: http.MethodPost, path: "/auth/logout", endpoint: "auth.logout"}, nil)
}

// Profile returns the caller's profile.
func (c *Client) Profile(ctx context.Context) (model.Profile, error) {
	var out model.Profile
	err := c.do(ctx, call{method: http.MethodGet, path: "/auth/profile", endpoint: "auth.profile"}, &out)
	return out, err
}

// SendContact submits a support message.
func (c *Client) SendContact(ctx context.Context, msg model.ContactMessage) error {
	return c.do(ctx, call{method: http.MethodPost, path: "/contact", endpoint: "contact", body: msg}, nil)
}

// Health reports API liveness. A 2xx response without a JSON body counts as ok.
func (c *Client) Health(ctx context.Context) (model.Health, error) {
	resp, err := c.send(ctx, call{method: http.MethodGet, path: "/health", endpoint: "health"})
	if err != nil {
		return model.Health{}, err
	}
	defer resp.Body.Close()

	h := model.Health{Status: "ok"}
	var body model.Health
	if decodeErr := decodeJSON(resp, &body); decodeErr == nil && body.Status != "" {
		h = body
	}
	return h, nil
}
