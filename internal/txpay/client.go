// Package txpay is the REST client for the remote TX Pay API.
//
// The console owns no business data: every list, mutation and lifecycle action
// goes through this client. Calls are never retried.
package txpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	apperrors "github.com/txpay/txpay-admin/internal/errors"
	"github.com/txpay/txpay-admin/internal/observability/statsd"
	"github.com/txpay/txpay-admin/internal/ports"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "txpay-admin"
	maxErrorBody     = 64 << 10
)

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Metrics   statsd.Sink
	Logger    *slog.Logger

	// Transport overrides the base round tripper (tests).
	Transport http.RoundTripper
}

// Client calls the TX Pay API. A Client without a token can only reach the
// public endpoints (login, health); use WithToken for everything else.
type Client struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	base      http.RoundTripper
	http      *http.Client
	metrics   statsd.Sink
	logger    *slog.Logger
}

var (
	_ ports.TXPayAPI       = (*Client)(nil)
	_ ports.TXPayConnector = (*Client)(nil)
)

// New creates an unauthenticated client.
func New(opts Options) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid TX Pay API base URL %q", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:   raw,
		userAgent: ua,
		timeout:   timeout,
		base:      base,
		http:      &http.Client{Timeout: timeout, Transport: base},
		metrics:   statsd.OrNop(opts.Metrics),
		logger:    logger,
	}, nil
}

// WithToken returns a copy that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	cp.http = &http.Client{
		Timeout:   c.timeout,
		Transport: &oauth2.Transport{Source: src, Base: c.base},
	}
	return &cp
}

// ForToken implements ports.TXPayConnector.
func (c *Client) ForToken(token string) ports.TXPayAPI {
	return c.WithToken(token)
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type call struct {
	method   string
	path     string
	endpoint string // metric tag, e.g. "merchants.list"
	query    url.Values
	body     any
	header   http.Header
}

func (c *Client) do(ctx context.Context, in call, out any) error {
	resp, err := c.send(ctx, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "read %s response", in.endpoint)
	}
	if err := decodeEntity(body, out); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "decode %s response", in.endpoint)
	}
	return nil
}

// send performs the request and returns a response with a 2xx status. The caller closes the body.
func (c *Client) send(ctx context.Context, in call) (*http.Response, error) {
	req, err := c.newRequest(ctx, in)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.observe(in, status, time.Since(start))

	if err != nil {
		return nil, transportError(in.endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := decodeAPIError(resp)
		c.logger.DebugContext(ctx, "txpay api error",
			"endpoint", in.endpoint,
			"status", apiErr.Status,
			"message", apiErr.Message)
		return nil, apiErr.AppError()
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, in call) (*http.Request, error) {
	target := c.baseURL + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}

	var body io.Reader
	if in.body != nil {
		buf, err := json.Marshal(in.body)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "encode %s request", in.endpoint)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, target, body)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "build %s request", in.endpoint)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range in.header {
		req.Header[k] = append([]string(nil), vs...)
	}
	return req, nil
}

func (c *Client) observe(in call, status int, elapsed time.Duration) {
	tags := map[string]string{
		"endpoint": in.endpoint,
		"method":   in.method,
		"status":   statsd.StatusClass(status),
	}
	c.metrics.Timing("api.request", elapsed, tags)
	c.metrics.Count("api.requests", 1, tags)
}

func transportError(endpoint string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return apperrors.Wrapf(err, apperrors.ErrCodeCanceled, "%s canceled", endpoint)
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "The TX Pay API did not respond in time.")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "The TX Pay API is unreachable.")
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// decodeEntity accepts both a bare object and a {"data": {...}} envelope.
func decodeEntity(body []byte, out any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil {
		// List envelopes carry an array under "data" and decode as a whole.
		if trimmed := bytes.TrimSpace(env.Data); len(trimmed) > 0 && trimmed[0] == '{' {
			return json.Unmarshal(trimmed, out)
		}
	}
	return json.Unmarshal(body, out)
}

func escapeID(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}

func decodeJSON(resp *http.Response, out any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return decodeEntity(body, out)
}
