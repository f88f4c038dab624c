package httpx

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/filterinput"
	"github.com/txpay/txpay-admin/internal/http/ui/viewmodel"
	"github.com/txpay/txpay-admin/internal/service"
	"github.com/txpay/txpay-admin/internal/viewstate"
)

const defaultAuditLimit = 20

// Dashboard renders the tabbed console for the view state in the query.
// Non-canonical queries (empty values, page=1, repeated keys) are redirected
// so every view has exactly one URL.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !viewstate.IsCanonical(r.URL.RawQuery) {
		target := r.URL.Path
		if q := viewstate.Canonical(r.URL.Query()).Encode(); q != "" {
			target += "?" + q
		}
		redirect(w, r, target)
		return
	}

	pushURL := ""
	if IsHTMX(r) && !IsHistoryRestore(r) {
		pushURL = r.URL.RequestURI()
	}
	h.serveDashboard(w, r, viewstate.NewRequestLocation(r), pushURL)
}

// ViewFilter applies one filter change to a dashboard view.
// GET /view/filter?from=<url>&key=<k>&value=<v>.
//
// For htmx requests the browser URL (HX-Current-Url) is the view being
// changed; it wins over the from parameter rendered into the form.
func (h *UIHandlers) ViewFilter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := strings.TrimSpace(q.Get("key"))
	if key == "" {
		http.Error(w, "missing filter key", http.StatusBadRequest)
		return
	}

	from := q.Get("from")
	if IsHTMX(r) {
		if current := browserPath(HXCurrentURL(r)); current != "" {
			from = current
		}
	}
	location, err := viewstate.ParseLocation(from)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mgr := viewstate.New(location, string(dashboardTab))
	mgr.SetFilter(key, q.Get("value"))
	target := location.URL()

	if !IsHTMX(r) {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	h.serveDashboard(w, r, location, target)
}

// serveDashboard renders the tab of loc. Unknown tabs fall back to the
// default tab; tabs the role may not open render the access denied page.
func (h *UIHandlers) serveDashboard(w http.ResponseWriter, r *http.Request, location viewstate.Location, pushURL string) {
	mgr := viewstate.New(location, string(dashboardTab))
	state := mgr.Read()
	tab := viewstate.ParseTab(state.Tab, dashboardTab)
	if string(tab) != state.Tab {
		q := location.Query()
		q.Set(viewstate.KeyTab, string(tab))
		location.Navigate(q)
	}

	sess := actor(r)
	if !service.CanOpen(sess.Role, tab) {
		showAccessDenied(w, r)
		return
	}

	l := loc(r)
	meta := PageMeta{
		Title:       l.T("tab." + string(tab)),
		PageTitle:   l.T("tab." + string(tab)),
		CurrentPage: PageDashboard,
	}
	base := h.dashboardBase(r, mgr, tab)
	api := h.apiFor(r)

	switch tab {
	case viewstate.TabTransactions:
		base["ExportURL"] = exportURL(mgr.Read().Filters)
		HandleList(ListHandlerOpts[model.Transaction]{
			Handler: h, W: w, R: r, Manager: mgr, PageMeta: meta, Base: base, PushURL: pushURL,
			Fetch: api.ListTransactions,
		})
	case viewstate.TabMerchants:
		base["NewURL"] = "/merchants/new"
		HandleList(ListHandlerOpts[model.Merchant]{
			Handler: h, W: w, R: r, Manager: mgr, PageMeta: meta, Base: base, PushURL: pushURL,
			Fetch: api.ListMerchants,
		})
	case viewstate.TabPaymentLinks:
		base["NewURL"] = "/payment-links/new"
		HandleList(ListHandlerOpts[model.PaymentLink]{
			Handler: h, W: w, R: r, Manager: mgr, PageMeta: meta, Base: base, PushURL: pushURL,
			Fetch: api.ListPaymentLinks,
		})
	case viewstate.TabPartners:
		base["NewURL"] = "/partners/new"
		HandleList(ListHandlerOpts[model.Partner]{
			Handler: h, W: w, R: r, Manager: mgr, PageMeta: meta, Base: base, PushURL: pushURL,
			Fetch: api.ListPartners,
		})
	case viewstate.TabAdmins:
		base["NewURL"] = "/admins/new"
		HandleList(ListHandlerOpts[model.AdminUser]{
			Handler: h, W: w, R: r, Manager: mgr, PageMeta: meta, Base: base, PushURL: pushURL,
			Fetch: api.ListAdminUsers,
		})
	case viewstate.TabConfiguration:
		h.renderConfiguration(w, r, meta, base, pushURL)
	}
}

// dashboardBase is the page data shared by every tab: tab links, filter bar
// and the links computed through the view state manager.
func (h *UIHandlers) dashboardBase(r *http.Request, mgr *viewstate.Manager, tab viewstate.Tab) map[string]any {
	l := loc(r)
	state := mgr.Read()
	bar := buildFilterBar(l, mgr, tab, h.merchantOptions(r, tab))

	return map[string]any{
		"Tab":            string(tab),
		"Tabs":           h.tabLinks(r, mgr, tab),
		"FilterFields":   bar.Fields,
		"ActiveFilters":  bar.Active,
		"HasFilters":     state.HasFilters(),
		"ClearURL":       mgr.ClearURL("/"),
		"CurrentURL":     mgr.URL("/"),
		"FilterPath":     filterPath,
		"FilterDebounce": h.filterDebounce(),
	}
}

func (h *UIHandlers) tabLinks(r *http.Request, mgr *viewstate.Manager, active viewstate.Tab) []viewmodel.Tab {
	l := loc(r)
	tabs := service.TabsFor(actor(r).Role)
	out := make([]viewmodel.Tab, 0, len(tabs))
	for _, t := range tabs {
		out = append(out, viewmodel.Tab{
			Key:    string(t),
			Label:  l.T("tab." + string(t)),
			URL:    mgr.TabURL("/", string(t), nil),
			Active: t == active,
		})
	}
	return out
}

// merchantOptions loads the merchant dropdown for tabs that filter by merchant.
// A failure degrades the filter to a free-text id input.
func (h *UIHandlers) merchantOptions(r *http.Request, tab viewstate.Tab) []model.MerchantOption {
	if h.Reference == nil {
		return nil
	}
	if _, ok := viewstate.SchemaFor(tab).Field("merchantId"); !ok {
		return nil
	}
	opts, err := h.Reference.MerchantOptions(r.Context(), actor(r).UserID, h.apiFor(r))
	if err != nil {
		h.logger().WarnContext(r.Context(), "merchant options unavailable", "error", err)
		return nil
	}
	return opts
}

// filterDebounce renders the debounce window in htmx delay syntax.
func (h *UIHandlers) filterDebounce() string {
	d := h.UI.FilterDebounce
	if d <= 0 {
		d = filterinput.DefaultDelay
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}

// exportURL carries the current transaction filters to the export endpoint.
func exportURL(filters map[string]string) string {
	q := url.Values{}
	for k, v := range filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	if enc := q.Encode(); enc != "" {
		return "/transactions/export?" + enc
	}
	return "/transactions/export"
}

// renderConfiguration shows the caller profile, API health, console settings
// and recent audit entries.
func (h *UIHandlers) renderConfiguration(w http.ResponseWriter, r *http.Request, meta PageMeta, base map[string]any, pushURL string) {
	limit := h.AuditLimit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	ov, err := service.LoadOverview(r.Context(), h.apiFor(r), h.Audit, limit)
	if err != nil {
		h.logger().WarnContext(r.Context(), "configuration overview failed", "error", err)
		RenderError(ErrorOpts{
			W: w, R: r, Err: err,
			Renderer:   h.renderDashboardPage,
			PageMeta:   meta,
			Data:       base,
			StatusCode: DetermineErrorStatus(err),
		})
		return
	}

	builder := NewTemplateData(r, meta).
		With("Overview", ov).
		With("Settings", h.UI).
		Merge(base)
	if pushURL != "" {
		SetHXPushURL(w, pushURL)
	}
	h.renderDashboardPage(w, r, builder.Build())
}
