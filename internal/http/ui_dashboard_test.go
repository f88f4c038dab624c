package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/mocks"
)

func adminRequest(method, target string) *http.Request {
	return WithTestContext(httptest.NewRequest(method, target, nil), TestSession(domainauth.RoleAdmin))
}

func TestDashboard_RedirectsToCanonicalURL(t *testing.T) {
	h := CreateUIHandlersForTest(t, nil)

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{name: "page one is dropped", target: "/?page=1&tab=merchants", want: "/?tab=merchants"},
		{name: "empty values are dropped", target: "/?search=&tab=merchants", want: "/?tab=merchants"},
		{name: "keys are sorted", target: "/?tab=merchants&status=ACTIVE", want: "/?status=ACTIVE&tab=merchants"},
		{name: "only empty values", target: "/?search=", want: "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Dashboard(w, partnerRequest(http.MethodGet, tt.target))
			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
		})
	}
}

func TestDashboard_DefaultTabListsTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q model.ListQuery) (model.Page[model.Transaction], error) {
			assert.Equal(t, 1, q.Page)
			assert.Empty(t, q.Filters)
			return model.Page[model.Transaction]{
				Data: testTransactions(1),
				Meta: model.ListMeta{Total: 1, Page: 1, Limit: 20},
			}, nil
		})
	h := CreateUIHandlersForTest(t, api)
	w := httptest.NewRecorder()

	h.Dashboard(w, partnerRequest(http.MethodGet, "/"))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "tx-a")
	assert.Contains(t, body, "/transactions/export")
	assert.NotContains(t, body, "tab=partners", "partners must not see the partners tab")
}

func TestDashboard_EmptyPageKeepsPager(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ListMerchants(gomock.Any(), gomock.Any()).
		Return(model.Page[model.Merchant]{Meta: model.ListMeta{Total: 25, Page: 5, Limit: 20}}, nil)
	h := CreateUIHandlersForTest(t, api)
	w := httptest.NewRecorder()

	h.Dashboard(w, partnerRequest(http.MethodGet, "/?page=5&tab=merchants"))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "No records match the current filters.")
	assert.Contains(t, body, "Page 5 of 5")
	assert.Contains(t, body, `href="/?page=4&amp;tab=merchants"`, "a bookmark past the end can step back")
}

func TestDashboard_EmptyFirstPageHasNoPager(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ListMerchants(gomock.Any(), gomock.Any()).Return(model.Page[model.Merchant]{}, nil)
	h := CreateUIHandlersForTest(t, api)
	w := httptest.NewRecorder()

	h.Dashboard(w, partnerRequest(http.MethodGet, "/?tab=merchants"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `class="pager"`)
}

func TestDashboard_HTMXPushesRequestURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ListMerchants(gomock.Any(), gomock.Any()).Return(model.Page[model.Merchant]{}, nil)
	h := CreateUIHandlersForTest(t, api)
	r := partnerRequest(http.MethodGet, "/?status=ACTIVE&tab=merchants")
	r.Header.Set("Hx-Request", "true")
	r.Header.Set("Hx-Target", "main-content")
	w := httptest.NewRecorder()

	h.Dashboard(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/?status=ACTIVE&tab=merchants", w.Header().Get("Hx-Push-Url"))
}

func TestDashboard_HistoryRestoreDoesNotPush(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ListMerchants(gomock.Any(), gomock.Any()).Return(model.Page[model.Merchant]{}, nil)
	h := CreateUIHandlersForTest(t, api)
	r := partnerRequest(http.MethodGet, "/?tab=merchants")
	r.Header.Set("Hx-Request", "true")
	r.Header.Set("Hx-History-Restore-Request", "true")
	w := httptest.NewRecorder()

	h.Dashboard(w, r)

	assert.Empty(t, w.Header().Get("Hx-Push-Url"))
}

func TestDashboard_PartnerCannotOpenAdminTabs(t *testing.T) {
	h := CreateUIHandlersForTest(t, mocks.NewMockTXPayAPI(gomock.NewController(t)))

	for _, tab := range []string{"partners", "admins"} {
		t.Run(tab, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Dashboard(w, partnerRequest(http.MethodGet, "/?tab="+tab))
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

func TestDashboard_UnknownTabFallsBackToTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(model.Page[model.Transaction]{}, nil)
	h := CreateUIHandlersForTest(t, api)
	w := httptest.NewRecorder()

	h.Dashboard(w, partnerRequest(http.MethodGet, "/?tab=reports"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No records match the current filters.")
}

func TestDashboard_Configuration(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().Profile(gomock.Any()).Return(model.Profile{Name: "Ada Admin", Email: "ada@txpay.example", Role: "ADMIN"}, nil)
	api.EXPECT().Health(gomock.Any()).Return(model.Health{Status: "UP", Version: "2.4.1"}, nil)
	h := CreateUIHandlersForTest(t, api)
	h.UI.DefaultCountry = "MX"
	w := httptest.NewRecorder()

	h.Dashboard(w, adminRequest(http.MethodGet, "/?tab=configuration"))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Ada Admin")
	assert.Contains(t, body, "2.4.1")
	assert.Contains(t, body, "Operational")
	assert.Contains(t, body, "The audit trail is disabled.")
}

func TestDashboard_ConfigurationProfileFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().Profile(gomock.Any()).Return(model.Profile{}, errors.New("boom"))
	api.EXPECT().Health(gomock.Any()).Return(model.Health{}, nil).AnyTimes()
	h := CreateUIHandlersForTest(t, api)
	w := httptest.NewRecorder()

	h.Dashboard(w, adminRequest(http.MethodGet, "/?tab=configuration"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `role="alert"`)
}

func TestViewFilter_MissingKey(t *testing.T) {
	h := CreateUIHandlersForTest(t, nil)
	w := httptest.NewRecorder()

	h.ViewFilter(w, partnerRequest(http.MethodGet, "/view/filter?value=x"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestViewFilter_RejectsAbsoluteFrom(t *testing.T) {
	h := CreateUIHandlersForTest(t, nil)
	w := httptest.NewRecorder()
	q := url.Values{"from": {"https://evil.example/?tab=merchants"}, "key": {"status"}, "value": {"ACTIVE"}}

	h.ViewFilter(w, partnerRequest(http.MethodGet, "/view/filter?"+q.Encode()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestViewFilter_BrowserRedirectsToNewView(t *testing.T) {
	h := CreateUIHandlersForTest(t, nil)
	w := httptest.NewRecorder()
	q := url.Values{"from": {"/?page=3&tab=merchants"}, "key": {"status"}, "value": {"ACTIVE"}}

	h.ViewFilter(w, partnerRequest(http.MethodGet, "/view/filter?"+q.Encode()))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?status=ACTIVE&tab=merchants", w.Header().Get("Location"))
}

func TestViewFilter_EmptyValueRemovesFilter(t *testing.T) {
	h := CreateUIHandlersForTest(t, nil)
	w := httptest.NewRecorder()
	q := url.Values{"from": {"/?search=acme&status=ACTIVE&tab=merchants"}, "key": {"search"}, "value": {""}}

	h.ViewFilter(w, partnerRequest(http.MethodGet, "/view/filter?"+q.Encode()))

	assert.Equal(t, "/?status=ACTIVE&tab=merchants", w.Header().Get("Location"))
}

func TestViewFilter_HTMXUsesCurrentURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().ListMerchants(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q model.ListQuery) (model.Page[model.Merchant], error) {
			assert.Equal(t, 1, q.Page, "a filter change resets the page")
			assert.Equal(t, map[string]string{"country": "MX", "search": "acme"}, q.Filters)
			return model.Page[model.Merchant]{}, nil
		})
	h := CreateUIHandlersForTest(t, api)
	q := url.Values{"from": {"/?tab=transactions"}, "key": {"search"}, "value": {"acme"}}
	r := partnerRequest(http.MethodGet, "/view/filter?"+q.Encode())
	r.Header.Set("Hx-Request", "true")
	r.Header.Set("Hx-Target", "dashboard-list")
	r.Header.Set("Hx-Current-Url", "https://admin.txpay.example/?country=MX&page=4&tab=merchants")
	w := httptest.NewRecorder()

	h.ViewFilter(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/?country=MX&search=acme&tab=merchants", w.Header().Get("Hx-Push-Url"))
}

func TestViewFilter_ReservedKeyIsIgnored(t *testing.T) {
	h := CreateUIHandlersForTest(t, nil)
	w := httptest.NewRecorder()
	q := url.Values{"from": {"/?page=2&tab=merchants"}, "key": {"tab"}, "value": {"admins"}}

	h.ViewFilter(w, partnerRequest(http.MethodGet, "/view/filter?"+q.Encode()))

	assert.Equal(t, "/?page=2&tab=merchants", w.Header().Get("Location"))
}

func TestExportURL(t *testing.T) {
	assert.Equal(t, "/transactions/export", exportURL(nil))
	assert.Equal(t, "/transactions/export?currency=USD&status=CAPTURED",
		exportURL(map[string]string{"status": "CAPTURED", "currency": "USD", "search": ""}))
}

func TestFilterDebounce(t *testing.T) {
	h := &UIHandlers{}
	assert.Equal(t, "400ms", h.filterDebounce())
}
