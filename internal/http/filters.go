package httpx

import (
	"errors"
	"sort"

	"github.com/txpay/txpay-admin/internal/domain/model"
	apperrors "github.com/txpay/txpay-admin/internal/errors"
	"github.com/txpay/txpay-admin/internal/http/ui/viewmodel"
	"github.com/txpay/txpay-admin/internal/i18n"
	"github.com/txpay/txpay-admin/internal/txpay"
	"github.com/txpay/txpay-admin/internal/viewstate"
)

const (
	filterTypeSearch = "search"
	filterTypeText   = "text"
	filterTypeSelect = "select"
	filterTypeDate   = "date"

	// filterPath is the endpoint every filter control submits to.
	filterPath = "/view/filter"
)

// filterBar describes the filter controls and active filter chips of a tab.
type filterBar struct {
	Fields []viewmodel.FilterField
	Active []viewmodel.ActiveFilter
}

// buildFilterBar derives the filter controls of tab from its schema. Values are
// taken verbatim from the URL so the inputs mirror what the user typed.
// merchants, when non-empty, turns the merchantId field into a select.
func buildFilterBar(l *i18n.Localizer, mgr *viewstate.Manager, tab viewstate.Tab, merchants []model.MerchantOption) filterBar {
	state := mgr.Read()
	schema := viewstate.SchemaFor(tab)

	bar := filterBar{Fields: make([]viewmodel.FilterField, 0, len(schema.Fields))}
	for _, f := range schema.Fields {
		bar.Fields = append(bar.Fields, filterField(l, f, state.Filters[f.Key], merchants))
	}
	bar.Active = activeFilters(l, mgr, state.Filters, merchants)
	return bar
}

func filterField(l *i18n.Localizer, f viewstate.Field, value string, merchants []model.MerchantOption) viewmodel.FilterField {
	field := viewmodel.FilterField{
		Key:   f.Key,
		Label: l.T("filter." + f.Key),
		Type:  filterTypeText,
		Value: value,
	}

	switch f.Kind {
	case viewstate.KindText:
		field.Type = filterTypeSearch
	case viewstate.KindEnum:
		field.Type = filterTypeSelect
		field.Options = selectOptions(l, f.Options, nil, value)
	case viewstate.KindCurrency:
		field.MaxLength = 3
	case viewstate.KindCountry:
		field.MaxLength = 2
	case viewstate.KindDate:
		field.Type = filterTypeDate
	case viewstate.KindID:
		if f.Key == "merchantId" && len(merchants) > 0 {
			values := make([]string, 0, len(merchants))
			labels := make(map[string]string, len(merchants))
			for _, m := range merchants {
				values = append(values, m.ID)
				labels[m.ID] = m.Name
			}
			field.Type = filterTypeSelect
			field.Options = selectOptions(l, values, labels, value)
		}
	}
	return field
}

// selectOptions prepends the "any" choice. A current value missing from the
// list is kept so the control never silently drops what the URL says.
func selectOptions(l *i18n.Localizer, values []string, labels map[string]string, current string) []viewmodel.Option {
	opts := make([]viewmodel.Option, 0, len(values)+2)
	opts = append(opts, viewmodel.Option{Value: "", Label: l.T("filter.any"), Selected: current == ""})

	found := current == ""
	for _, v := range values {
		label := v
		if lbl, ok := labels[v]; ok && lbl != "" {
			label = lbl
		}
		selected := v == current
		found = found || selected
		opts = append(opts, viewmodel.Option{Value: v, Label: label, Selected: selected})
	}
	if !found {
		opts = append(opts, viewmodel.Option{Value: current, Label: current, Selected: true})
	}
	return opts
}

// activeFilters lists every non-empty filter in key order, each with a link
// that removes it.
func activeFilters(l *i18n.Localizer, mgr *viewstate.Manager, filters map[string]string, merchants []model.MerchantOption) []viewmodel.ActiveFilter {
	keys := make([]string, 0, len(filters))
	for k, v := range filters {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]viewmodel.ActiveFilter, 0, len(keys))
	for _, k := range keys {
		label := k
		if l.Has("filter." + k) {
			label = l.T("filter." + k)
		}
		value := filters[k]
		if k == "merchantId" {
			value = merchantName(merchants, value)
		}
		out = append(out, viewmodel.ActiveFilter{
			Key:       k,
			Label:     label,
			Value:     value,
			RemoveURL: mgr.FilterURL("/", k, ""),
		})
	}
	return out
}

func merchantName(merchants []model.MerchantOption, id string) string {
	for _, m := range merchants {
		if m.ID == id && m.Name != "" {
			return m.Name
		}
	}
	return id
}

// invalidFilterField names the filter that failed local schema validation.
// Errors reported by the remote API are not filter errors and return "".
func invalidFilterField(err error) string {
	if err == nil || !apperrors.IsValidation(err) {
		return ""
	}
	var apiErr *txpay.APIError
	if errors.As(err, &apiErr) {
		return ""
	}
	return apperrors.GetField(err)
}
