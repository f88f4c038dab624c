package httpx

import (
	"net/http"

	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/service"
	"github.com/txpay/txpay-admin/internal/viewstate"
)

// DataEnricher is a function type for enriching template data after fetching a page.
// This allows tab-specific data enrichment (e.g., merchant options, export links).
type DataEnricher[T any] func(builder *TemplateDataBuilder, page model.Page[T])

// ListHandlerOpts contains all options needed for the generic list handler.
type ListHandlerOpts[T any] struct {
	// Handler is the UIHandlers instance for rendering (required)
	Handler *UIHandlers
	// W is the HTTP response writer (required)
	W http.ResponseWriter
	// R is the HTTP request (required)
	R *http.Request
	// Manager holds the view state the list is rendered for (required)
	Manager *viewstate.Manager
	// Fetch loads one page for a query (required)
	Fetch service.FetchFunc[T]
	// PageMeta contains page metadata for rendering
	PageMeta PageMeta
	// Base is shared page data (tabs, filter bar) computed by the caller
	Base map[string]any
	// EnrichData is an optional function to add custom data to the template after fetching
	EnrichData DataEnricher[T]
	// PushURL is sent as HX-Push-Url on successful HTMX renders. Optional.
	PushURL string
}

// HandleList renders one dashboard tab: it validates the view state against the
// tab schema, loads the page through a Loader and renders either the whole
// dashboard or, when htmx targets the list region, the list fragment alone.
//
// A failed load never replaces what the browser is showing: HTMX requests get
// an error toast with HX-Reswap: none and no history entry.
func HandleList[T any](opts ListHandlerOpts[T]) {
	// Defensive nil checks for required dependencies
	if !validateListHandlerDeps(opts) {
		return
	}

	h := opts.Handler
	state := opts.Manager.Read()
	q, err := service.ListQueryFor(state, h.pageSize())
	if err != nil {
		opts.renderListError(err)
		return
	}

	// One load per request. Superseded requests are dropped in the browser by
	// hx-sync="this:replace" on the list container.
	page, err := service.NewLoader(opts.Fetch).Load(opts.R.Context(), q)
	if err != nil {
		h.logger().WarnContext(opts.R.Context(), "list load failed",
			"tab", state.Tab, "page", q.Page, "error", err)
		opts.renderListError(err)
		return
	}

	page.Meta = page.Meta.Normalize(q, len(page.Data))
	builder := opts.newBuilder().
		WithPagination(page.Meta, opts.Manager).
		With("Items", page.Data)

	// Allow tab-specific data enrichment
	if opts.EnrichData != nil {
		opts.EnrichData(builder, page)
	}

	if IsHTMX(opts.R) && opts.PushURL != "" {
		SetHXPushURL(opts.W, opts.PushURL)
	}
	opts.render(builder.Build())
}

// validateListHandlerDeps checks required dependencies and returns false if any are nil.
func validateListHandlerDeps[T any](opts ListHandlerOpts[T]) bool {
	if opts.W == nil || opts.R == nil || opts.Handler == nil || opts.Manager == nil || opts.Fetch == nil {
		if opts.W != nil {
			http.Error(opts.W, "Internal configuration error", http.StatusInternalServerError)
		}
		return false
	}
	return true
}

func (lh *ListHandlerOpts[T]) newBuilder() *TemplateDataBuilder {
	return NewTemplateData(lh.R, lh.PageMeta).Merge(lh.Base)
}

// renderListError reports a failed load. HTMX requests keep the current list
// and get a toast; full page loads render the dashboard with an error banner.
func (lh *ListHandlerOpts[T]) renderListError(err error) {
	l := loc(lh.R)
	msg := l.T("error.list_failed")
	if field := invalidFilterField(err); field != "" {
		msg = l.T("error.invalid_filter", l.T("filter."+field))
	} else if detail := ErrorMessage(l, err); detail != "" {
		msg += " " + detail
	}

	if IsHTMX(lh.R) {
		keepPage(lh.W, http.StatusOK, msg)
		return
	}

	data := lh.newBuilder().
		With("Items", []T{}).
		WithError(msg).
		Build()
	lh.Handler.renderStatusPage(lh.W, lh.R, DetermineErrorStatus(err), data)
}

func (lh *ListHandlerOpts[T]) render(data map[string]any) {
	if IsHTMX(lh.R) && HXTarget(lh.R) == listTarget {
		if err := lh.Handler.T.RenderNamed(lh.W, listTemplate, data); err != nil {
			lh.Handler.logAndRenderTemplateError(lh.W, lh.R, err, "list fragment render")
		}
		return
	}
	lh.Handler.renderDashboardPage(lh.W, lh.R, data)
}
