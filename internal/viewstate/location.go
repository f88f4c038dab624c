package viewstate

import (
	"net/http"
	"net/url"
	"strings"
	"sync"

	apperrors "github.com/txpay/txpay-admin/internal/errors"
)

// Location is the address bar the manager reads from and writes to.
// Query returns a copy; callers may mutate it freely.
type Location interface {
	Query() url.Values
	Navigate(q url.Values)
}

// MemoryLocation is an in-process Location with a navigation history.
// It backs the CLI browse shell and link builders.
type MemoryLocation struct {
	mu      sync.Mutex
	path    string
	query   url.Values
	history []string
}

// NewMemoryLocation creates a location at path with the given initial query.
func NewMemoryLocation(path string, q url.Values) *MemoryLocation {
	if path == "" {
		path = "/"
	}
	return &MemoryLocation{path: path, query: cloneValues(q)}
}

// Query implements Location.
func (m *MemoryLocation) Query() url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneValues(m.query)
}

// Navigate implements Location.
func (m *MemoryLocation) Navigate(q url.Values) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, encodeURL(m.path, m.query))
	m.query = cloneValues(q)
}

// Back restores the previous location. It reports false when there is no history.
func (m *MemoryLocation) Back() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.history) == 0 {
		return false
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	if u, err := url.Parse(prev); err == nil {
		m.query = u.Query()
	}
	return true
}

// History returns the URLs navigated away from, oldest first.
func (m *MemoryLocation) History() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.history))
	copy(out, m.history)
	return out
}

// String renders the current URL.
func (m *MemoryLocation) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return encodeURL(m.path, m.query)
}

// RequestLocation is a Location seeded from an incoming request. Navigation is
// recorded so the handler can redirect to, or push, the resulting URL.
type RequestLocation struct {
	path      string
	query     url.Values
	navigated bool
}

// NewRequestLocation creates a location from the request URL.
func NewRequestLocation(r *http.Request) *RequestLocation {
	return &RequestLocation{path: r.URL.Path, query: r.URL.Query()}
}

// ParseLocation creates a location from a same-origin relative URL such as the
// "from" parameter of a filter request. Absolute and protocol-relative URLs are rejected.
func ParseLocation(raw string) (*RequestLocation, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "/"
	}
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return nil, apperrors.ValidationField("from", "location must be a relative path")
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return nil, apperrors.ValidationField("from", "location must be a relative path")
	}
	return &RequestLocation{path: u.Path, query: u.Query()}, nil
}

// Query implements Location.
func (l *RequestLocation) Query() url.Values {
	return cloneValues(l.query)
}

// Navigate implements Location.
func (l *RequestLocation) Navigate(q url.Values) {
	l.query = cloneValues(q)
	l.navigated = true
}

// Navigated reports whether any mutation has been applied.
func (l *RequestLocation) Navigated() bool {
	return l.navigated
}

// Path returns the location path.
func (l *RequestLocation) Path() string {
	return l.path
}

// URL renders the current URL.
func (l *RequestLocation) URL() string {
	return encodeURL(l.path, l.query)
}

func encodeURL(path string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

func cloneValues(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
