package httpx

import "slices"

// Page identifiers carried as CurrentPage. Each one has a "<page>-content"
// template rendered inside the layout.
const (
	PageDashboard   = "dashboard"
	PageEntityForm  = "entity-form"
	PageTransaction = "transaction"
	PageContact     = "contact"
	PageLogin       = "login"
)

// Template root relative to the module root, and to this package for tests.
const (
	TemplatePathFromRoot = "frontend/templates"
	TemplatePathFromTest = "../../frontend/templates"
)

const (
	// SessionCookieName holds the console session id.
	SessionCookieName = "txpay_session"
	// listTarget is the element id of the swappable list region; the
	// template that fills it carries the same name.
	listTarget   = "dashboard-list"
	listTemplate = listTarget
)

// FormMode tells an entity form whether it creates or edits.
type FormMode string

const (
	FormModeCreate FormMode = "create"
	FormModeEdit   FormMode = "edit"
)

//nolint:gochecknoglobals // read-only
var pages = []string{PageDashboard, PageEntityForm, PageTransaction, PageContact, PageLogin}

// ContentTemplateFor names the content template for page. Unknown pages get
// the dashboard.
func ContentTemplateFor(page string) string {
	if !slices.Contains(pages, page) {
		page = PageDashboard
	}
	return page + "-content"
}
