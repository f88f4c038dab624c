package service

import (
	"github.com/txpay/txpay-admin/internal/domain/auth"
	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/viewstate"
)

// ListQueryFor validates the view state's filters against the tab schema and
// builds the API query for one page.
func ListQueryFor(state viewstate.State, pageSize int) (model.ListQuery, error) {
	filters, err := viewstate.SchemaFor(viewstate.Tab(state.Tab)).Validate(state.Filters)
	if err != nil {
		return model.ListQuery{}, err
	}
	page := state.Page
	if page < 1 {
		page = 1
	}
	return model.ListQuery{Page: page, Limit: pageSize, Filters: filters}, nil
}

// adminOnlyTabs are hidden from partner sessions.
var adminOnlyTabs = map[viewstate.Tab]bool{
	viewstate.TabPartners: true,
	viewstate.TabAdmins:   true,
}

// TabsFor lists the tabs a role may open, in display order.
func TabsFor(role auth.Role) []viewstate.Tab {
	if !role.AtLeast(auth.RolePartner) {
		return nil
	}
	var out []viewstate.Tab
	for _, t := range viewstate.Tabs() {
		if adminOnlyTabs[t] && !role.AtLeast(auth.RoleAdmin) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// CanOpen reports whether role may open tab.
func CanOpen(role auth.Role, tab viewstate.Tab) bool {
	for _, t := range TabsFor(role) {
		if t == tab {
			return true
		}
	}
	return false
}
