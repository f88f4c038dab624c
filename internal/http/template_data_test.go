package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/http/ui/viewmodel"
	"github.com/txpay/txpay-admin/internal/viewstate"
)

func TestNewTemplateData(t *testing.T) {
	r := WithTestContext(httptest.NewRequest(http.MethodGet, "/contact", nil), nil)
	meta := PageMeta{
		Title:       "Contact support",
		PageTitle:   "Contact support",
		CurrentPage: PageContact,
	}

	data := NewTemplateData(r, meta).Build()

	if data["Title"] != "Contact support · TX Pay Admin" {
		t.Errorf("Title = %v", data["Title"])
	}
	if data["PageTitle"] != "Contact support" {
		t.Errorf("PageTitle = %v, want %v", data["PageTitle"], "Contact support")
	}
	if data["CurrentPage"] != PageContact {
		t.Errorf("CurrentPage = %v, want %v", data["CurrentPage"], PageContact)
	}
	if data["IsAuthenticated"] != false {
		t.Errorf("IsAuthenticated = %v, want false", data["IsAuthenticated"])
	}
	if data["Locale"] != "en-US" {
		t.Errorf("Locale = %v, want en-US", data["Locale"])
	}
	if data["L"] == nil {
		t.Error("L (localizer) should be set")
	}
	if _, ok := data["User"]; ok {
		t.Error("User should not be set for anonymous requests")
	}
}

func TestNewTemplateData_EmptyTitleUsesAppName(t *testing.T) {
	r := WithTestContext(httptest.NewRequest(http.MethodGet, "/", nil), nil)
	data := NewTemplateData(r, PageMeta{}).Build()
	if data["Title"] != "TX Pay Admin" {
		t.Errorf("Title = %v, want TX Pay Admin", data["Title"])
	}
}

func TestNewTemplateData_AuthenticatedAdmin(t *testing.T) {
	sess := TestSession(domainauth.RoleAdmin)
	r := WithTestContext(httptest.NewRequest(http.MethodGet, "/", nil), sess)

	data := NewTemplateData(r, PageMeta{Title: "Transactions"}).Build()

	if data["IsAuthenticated"] != true || data["IsAdmin"] != true {
		t.Errorf("IsAuthenticated = %v, IsAdmin = %v", data["IsAuthenticated"], data["IsAdmin"])
	}
	user, ok := data["User"].(*viewmodel.User)
	if !ok {
		t.Fatalf("User = %T, want *viewmodel.User", data["User"])
	}
	if user.Email != sess.Email || user.Role != "admin" {
		t.Errorf("User = %+v", user)
	}
}

func paginationFor(t *testing.T, target string, meta model.ListMeta) viewmodel.Pagination {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	mgr := viewstate.New(viewstate.NewRequestLocation(r), "transactions")
	data := NewTemplateData(r, PageMeta{}).WithPagination(meta, mgr).Build()
	p, ok := data["Pagination"].(viewmodel.Pagination)
	if !ok {
		t.Fatalf("Pagination = %T", data["Pagination"])
	}
	return p
}

func TestTemplateDataBuilder_WithPagination_PrevAndNext(t *testing.T) {
	p := paginationFor(t, "/?page=2&status=CAPTURED&tab=transactions", model.ListMeta{
		Page: 2, TotalPages: 5, Total: 90, HasPrevPage: true, HasNextPage: true,
	})

	if p.Page != 2 || p.TotalPages != 5 || p.Total != 90 {
		t.Errorf("pagination = %+v", p)
	}
	if p.PrevURL != "/?status=CAPTURED&tab=transactions" {
		t.Errorf("PrevURL = %q", p.PrevURL)
	}
	if p.NextURL != "/?page=3&status=CAPTURED&tab=transactions" {
		t.Errorf("NextURL = %q", p.NextURL)
	}
}

func TestTemplateDataBuilder_WithPagination_NoPrev(t *testing.T) {
	p := paginationFor(t, "/?tab=merchants", model.ListMeta{Page: 1, TotalPages: 2, HasNextPage: true})

	if p.HasPrev() || p.PrevURL != "" {
		t.Errorf("PrevURL should be empty on the first page, got %q", p.PrevURL)
	}
	if p.NextURL != "/?page=2&tab=merchants" {
		t.Errorf("NextURL = %q", p.NextURL)
	}
}

func TestTemplateDataBuilder_WithPagination_NoNext(t *testing.T) {
	p := paginationFor(t, "/?page=4&tab=merchants", model.ListMeta{Page: 4, TotalPages: 4, HasPrevPage: true})

	if p.HasNext() || p.NextURL != "" {
		t.Errorf("NextURL should be empty on the last page, got %q", p.NextURL)
	}
	if p.PrevURL != "/?page=3&tab=merchants" {
		t.Errorf("PrevURL = %q", p.PrevURL)
	}
}

func TestTemplateDataBuilder_WithPagination_TotalPagesNeverBelowPage(t *testing.T) {
	p := paginationFor(t, "/?page=7&tab=merchants", model.ListMeta{Page: 7, TotalPages: 3})
	if p.TotalPages != 7 {
		t.Errorf("TotalPages = %d, want 7", p.TotalPages)
	}
}

func TestTemplateDataBuilder_WithError(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	data := NewTemplateData(r, PageMeta{}).WithError("Something went wrong").Build()

	if data["Error"] != true {
		t.Errorf("Error = %v, want true", data["Error"])
	}
	if data["ErrorMessage"] != "Something went wrong" {
		t.Errorf("ErrorMessage = %v", data["ErrorMessage"])
	}
}

func TestTemplateDataBuilder_WithFieldErrors(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	data := NewTemplateData(r, PageMeta{}).WithFieldErrors(map[string]string{"email": "invalid"}).Build()
	errs, ok := data["Errors"].(map[string]string)
	if !ok || errs["email"] != "invalid" {
		t.Errorf("Errors = %v", data["Errors"])
	}

	empty := NewTemplateData(r, PageMeta{}).WithFieldErrors(nil).Build()
	if _, ok := empty["Errors"]; ok {
		t.Error("Errors should not be set for an empty map")
	}
}

func TestTemplateDataBuilder_Chaining(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	data := NewTemplateData(r, PageMeta{CurrentPage: PageTransaction}).
		With("Transaction", model.Transaction{ID: "tx1"}).
		With("Actions", []string{"capture"}).
		WithError("declined").
		Build()

	if tx, ok := data["Transaction"].(model.Transaction); !ok || tx.ID != "tx1" {
		t.Errorf("Transaction = %v", data["Transaction"])
	}
	if data["ErrorMessage"] != "declined" || data["CurrentPage"] != PageTransaction {
		t.Errorf("data = %v", data)
	}
}
