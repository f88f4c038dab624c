// Package viewstate keeps dashboard view state (tab, page and filters) in the URL query.
//
// The query string is the only source of truth. The Manager never caches what
// it reads: every Read goes back to the Location and every mutation is written
// through Navigate.
package viewstate

import (
	"net/url"
	"strconv"
)

// Reserved query keys. Every other key is a filter.
const (
	KeyTab  = "tab"
	KeyPage = "page"
)

// State is the decoded view state.
type State struct {
	Tab     string
	Page    int
	Filters map[string]string
}

// HasFilters reports whether any filter is set to a non-empty value.
func (s State) HasFilters() bool {
	for _, v := range s.Filters {
		if v != "" {
			return true
		}
	}
	return false
}

// Manager reads and mutates view state on a Location.
type Manager struct {
	loc        Location
	defaultTab string
}

// New creates a Manager. defaultTab is reported when the query has no tab.
func New(loc Location, defaultTab string) *Manager {
	return &Manager{loc: loc, defaultTab: defaultTab}
}

// Location returns the underlying location.
func (m *Manager) Location() Location {
	return m.loc
}

// Read decodes the current query. A missing, non-numeric or non-positive page is 1.
func (m *Manager) Read() State {
	return decode(m.loc.Query(), m.defaultTab)
}

// SetTab replaces the whole query with the tab plus every non-empty filter.
func (m *Manager) SetTab(tab string, filters map[string]string) {
	q := url.Values{}
	q.Set(KeyTab, tab)
	for k, v := range filters {
		if v == "" || isReserved(k) {
			continue
		}
		q.Set(k, v)
	}
	m.loc.Navigate(q)
}

// SetPage sets the page. Pages of 1 or less remove the key.
func (m *Manager) SetPage(n int) {
	q := m.loc.Query()
	if n <= 1 {
		q.Del(KeyPage)
	} else {
		q.Set(KeyPage, strconv.Itoa(n))
	}
	m.loc.Navigate(q)
}

// SetFilter sets key to value, or deletes it when value is empty.
// The page is always reset. Reserved keys are ignored.
func (m *Manager) SetFilter(key, value string) {
	if key == "" || isReserved(key) {
		return
	}
	q := m.loc.Query()
	if value != "" {
		q.Set(key, value)
	} else {
		q.Del(key)
	}
	q.Del(KeyPage)
	m.loc.Navigate(q)
}

// ClearFilters keeps only the current tab.
func (m *Manager) ClearFilters() {
	q := url.Values{}
	q.Set(KeyTab, m.Read().Tab)
	m.loc.Navigate(q)
}

// URL renders the current location as a link for path.
func (m *Manager) URL(path string) string {
	return encodeURL(path, m.loc.Query())
}

// TabURL returns the link SetTab would navigate to.
func (m *Manager) TabURL(path, tab string, filters map[string]string) string {
	return m.preview(path, func(p *Manager) { p.SetTab(tab, filters) })
}

// PageURL returns the link SetPage would navigate to.
func (m *Manager) PageURL(path string, n int) string {
	return m.preview(path, func(p *Manager) { p.SetPage(n) })
}

// FilterURL returns the link SetFilter would navigate to.
func (m *Manager) FilterURL(path, key, value string) string {
	return m.preview(path, func(p *Manager) { p.SetFilter(key, value) })
}

// ClearURL returns the link ClearFilters would navigate to.
func (m *Manager) ClearURL(path string) string {
	return m.preview(path, func(p *Manager) { p.ClearFilters() })
}

func (m *Manager) preview(path string, mutate func(*Manager)) string {
	loc := NewMemoryLocation(path, m.loc.Query())
	mutate(New(loc, m.defaultTab))
	return loc.String()
}

// Canonical drops empty values, collapses repeated keys to their first
// non-empty value and removes page when it would decode to 1.
func Canonical(q url.Values) url.Values {
	out := url.Values{}
	for k, vs := range q {
		for _, v := range vs {
			if v != "" {
				out.Set(k, v)
				break
			}
		}
	}
	if p, err := strconv.Atoi(out.Get(KeyPage)); err != nil || p <= 1 {
		out.Del(KeyPage)
	}
	return out
}

// IsCanonical reports whether rawQuery is already in canonical form.
func IsCanonical(rawQuery string) bool {
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return false
	}
	return Canonical(q).Encode() == rawQuery
}

func decode(q url.Values, defaultTab string) State {
	s := State{Tab: q.Get(KeyTab), Page: 1, Filters: map[string]string{}}
	if s.Tab == "" {
		s.Tab = defaultTab
	}
	if p, err := strconv.Atoi(q.Get(KeyPage)); err == nil && p > 0 {
		s.Page = p
	}
	for k, vs := range q {
		if isReserved(k) || len(vs) == 0 {
			continue
		}
		s.Filters[k] = vs[0]
	}
	return s
}

func isReserved(key string) bool {
	return key == KeyTab || key == KeyPage
}
