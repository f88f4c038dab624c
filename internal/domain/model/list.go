//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"net/url"
	"sort"
	"strconv"
)

// ListMeta is the pagination envelope returned by every list endpoint.
type ListMeta struct {
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
}

// Page is one page of a list endpoint.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta ListMeta `json:"meta"`
}

// ListQuery is the request side of a list call: {page, limit, ...filters}.
type ListQuery struct {
	Page    int
	Limit   int
	Filters map[string]string
}

// Values encodes the query as URL parameters. Empty filters are omitted and
// filters never override page or limit.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == "page" || k == "limit" || q.Filters[k] == "" {
			continue
		}
		v.Set(k, q.Filters[k])
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Normalize fills in defaults and backfills metadata fields the API omitted.
func (m ListMeta) Normalize(q ListQuery, itemCount int) ListMeta {
	if m.Page <= 0 {
		m.Page = max(q.Page, 1)
	}
	if m.Limit <= 0 {
		m.Limit = q.Limit
	}
	if m.TotalPages <= 0 && m.Limit > 0 {
		m.TotalPages = (m.Total + m.Limit - 1) / m.Limit
	}
	if m.Total == 0 && itemCount > 0 {
		m.Total = itemCount
		if m.TotalPages == 0 {
			m.TotalPages = 1
		}
	}
	if !m.HasNextPage && m.Page < m.TotalPages {
		m.HasNextPage = true
	}
	if !m.HasPrevPage && m.Page > 1 {
		m.HasPrevPage = true
	}
	return m
}
