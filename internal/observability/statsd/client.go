// Package statsd emits console metrics (API call timings, action counters) as
// DogStatsD datagrams.
package statsd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Sink is the metrics surface used by the API client and services.
type Sink interface {
	Count(name string, value int64, tags map[string]string)
	Timing(name string, value time.Duration, tags map[string]string)
}

// Nop discards every metric.
type Nop struct{}

func (Nop) Count(string, int64, map[string]string) {}

func (Nop) Timing(string, time.Duration, map[string]string) {}

// OrNop returns s, or Nop when s is nil or a nil *Client.
func OrNop(s Sink) Sink {
	if c, ok := s.(*Client); s == nil || ok && c == nil {
		return Nop{}
	}
	return s
}

// Config locates the agent. An empty Address yields a client that drops
// everything.
type Config struct {
	Address string
	Prefix  string
	Tags    map[string]string
	Logger  *slog.Logger
}

// Client writes "name:value|type|#k:v,..." datagrams. It is safe for
// concurrent use.
type Client struct {
	prefix string
	tags   map[string]string
	logger *slog.Logger

	mu   sync.Mutex
	conn net.Conn
}

var _ Sink = (*Client)(nil)

const dialTimeout = 5 * time.Second

// NewClient dials cfg.Address over UDP.
func NewClient(cfg Config) (*Client, error) {
	c := &Client{
		prefix: strings.Trim(strings.TrimSpace(cfg.Prefix), "."),
		tags:   cleanTags(cfg.Tags),
		logger: cfg.Logger,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	addr := strings.TrimSpace(cfg.Address)
	if addr == "" {
		return c, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	conn, err := new(net.Dialer).DialContext(ctx, "udp", addr)
	if err != nil {
		return nil, fmt.Errorf("statsd dial %s: %w", addr, err)
	}
	c.conn = conn
	return c, nil
}

// Enabled reports whether datagrams are being sent.
func (c *Client) Enabled() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *Client) Count(name string, value int64, tags map[string]string) {
	c.send(name, strconv.FormatInt(value, 10), "c", tags)
}

// Timing reports value in fractional milliseconds.
func (c *Client) Timing(name string, value time.Duration, tags map[string]string) {
	ms := value.Seconds() * 1e3
	c.send(name, strconv.FormatFloat(ms, 'f', -1, 64), "ms", tags)
}

// Close is idempotent.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	conn := c.conn
	c.conn = nil
	if conn == nil {
		return nil
	}
	return conn.Close()
}

func (c *Client) send(name, value, kind string, tags map[string]string) {
	if !c.Enabled() {
		return
	}
	metric := MetricName(c.prefix, name)
	if metric == "" {
		return
	}
	datagram := metric + ":" + value + "|" + kind + formatTags(c.tags, tags)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return
	}
	if _, err := c.conn.Write([]byte(datagram)); err != nil {
		c.logger.Debug("statsd write failed", "metric", metric, "error", err)
	}
}

//nolint:gochecknoglobals // read-only
var protocolChars = strings.NewReplacer(" ", "_", "/", "_", ":", "_", "|", "_", "#", "_")

// MetricName sanitizes name for the line protocol, collapses empty dot
// segments and prepends prefix.
func MetricName(prefix, name string) string {
	parts := strings.FieldsFunc(protocolChars.Replace(strings.TrimSpace(name)), func(r rune) bool { return r == '.' })
	if len(parts) == 0 {
		return ""
	}
	if prefix != "" {
		parts = append([]string{prefix}, parts...)
	}
	return strings.Join(parts, ".")
}

// formatTags renders global overlaid with local, sorted by key.
func formatTags(global, local map[string]string) string {
	merged := cleanTags(global)
	maps.Copy(merged, cleanTags(local))
	if len(merged) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(merged))
	for _, k := range slices.Sorted(maps.Keys(merged)) {
		pairs = append(pairs, k+":"+merged[k])
	}
	return "|#" + strings.Join(pairs, ",")
}

func cleanTags(tags map[string]string) map[string]string {
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		if k = strings.TrimSpace(k); k != "" {
			out[k] = strings.TrimSpace(v)
		}
	}
	return out
}

// StatusClass buckets an HTTP status ("2xx", "4xx"). Zero or less is a
// transport error.
func StatusClass(code int) string {
	if code <= 0 {
		return "error"
	}
	return strconv.Itoa(code/100) + "xx"
}
