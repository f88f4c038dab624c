package service

import (
	"context"
	"errors"
	"sync"

	"github.com/txpay/txpay-admin/internal/domain/model"
)

// ErrStale is returned by Loader.Load when a newer load superseded the call.
// The superseded result is discarded.
var ErrStale = errors.New("stale list response discarded")

// FetchFunc loads one page for a query.
type FetchFunc[T any] func(ctx context.Context, q model.ListQuery) (model.Page[T], error)

// Loader fetches pages and keeps the last good one. Each Load supersedes
// (and cancels) the previous in-flight Load, so a late response can never
// overwrite the page of a view the user has since left.
type Loader[T any] struct {
	fetch FetchFunc[T]

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	current model.Page[T]
	loaded  bool
	query   model.ListQuery
	lastErr error
}

// NewLoader creates a Loader over fetch.
func NewLoader[T any](fetch FetchFunc[T]) *Loader[T] {
	return &Loader[T]{fetch: fetch}
}

// Load fetches q. On failure the previous page is returned with the error and
// stays current. A superseded call returns ErrStale.
func (l *Loader[T]) Load(ctx context.Context, q model.ListQuery) (model.Page[T], error) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	page, err := l.fetch(ctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	cancel()
	if gen != l.gen {
		return model.Page[T]{}, ErrStale
	}
	l.cancel = nil
	if err != nil {
		l.lastErr = err
		return l.current, err
	}
	l.current = page
	l.loaded = true
	l.query = q
	l.lastErr = nil
	return page, nil
}

// Current returns the last successfully loaded page and whether one exists.
func (l *Loader[T]) Current() (model.Page[T], bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current, l.loaded
}

// Query returns the query of the current page.
func (l *Loader[T]) Query() model.ListQuery {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// Err returns the error of the latest completed load, or nil after a success.
func (l *Loader[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Generation returns the number of loads started.
func (l *Loader[T]) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// Stop cancels any in-flight load and makes its result stale.
func (l *Loader[T]) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}
