package httpx

import (
	"maps"
	"net/http"

	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/http/ui/viewmodel"
	"github.com/txpay/txpay-admin/internal/viewstate"
)

// TemplateDataBuilder collects the data map handed to a page template. It
// starts from the layout fields every page needs.
type TemplateDataBuilder struct {
	data map[string]any
}

func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: basePageData(r, meta)}
}

// With sets one key.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Merge copies every key of extra, overwriting what is already set.
func (b *TemplateDataBuilder) Merge(extra map[string]any) *TemplateDataBuilder {
	maps.Copy(b.data, extra)
	return b
}

// WithPagination sets Pagination for a loaded page. Prev and next links keep
// the current filters and tab.
func (b *TemplateDataBuilder) WithPagination(meta model.ListMeta, mgr *viewstate.Manager) *TemplateDataBuilder {
	b.data["Pagination"] = pagination(meta, mgr)
	return b
}

func pagination(meta model.ListMeta, mgr *viewstate.Manager) viewmodel.Pagination {
	p := viewmodel.Pagination{
		Page:       meta.Page,
		TotalPages: max(meta.TotalPages, meta.Page),
		Total:      meta.Total,
	}
	if meta.HasPrevPage {
		p.PrevURL = mgr.PageURL("/", p.Page-1)
	}
	if meta.HasNextPage {
		p.NextURL = mgr.PageURL("/", p.Page+1)
	}
	return p
}

// WithError shows msg in the page banner.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	return b.With("Error", true).With("ErrorMessage", msg)
}

// WithFieldErrors sets Errors, keyed by form field name. Empty maps are skipped
// so templates can test for presence.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) == 0 {
		return b
	}
	return b.With("Errors", errs)
}

func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
