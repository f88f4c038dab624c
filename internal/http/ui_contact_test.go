package httpx

import (
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

func TestContactPage(t *testing.T) {
	h := CreateUIHandlersForTest(t, nil)

	t.Run("blank form", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ContactPage(w, partnerRequest(http.MethodGet, "/contact"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="subject"`)
		assert.NotContains(t, w.Body.String(), "Your message was sent.")
	})

	t.Run("after send", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ContactPage(w, partnerRequest(http.MethodGet, "/contact?sent=1"))
		assert.Contains(t, w.Body.String(), "Your message was sent.")
	})
}

func TestContactSubmit_Validation(t *testing.T) {
	h := CreateUIHandlersForTest(t, mocks.NewMockTXPayAPI(gomock.NewController(t)))
	w := httptest.NewRecorder()
	form := url.Values{"subject": {"  "}, "message": {"Refund stuck for order 42"}}

	h.ContactSubmit(w, formRequest(domainauth.RolePartner, "/contact", form))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "This field is required.")
	assert.Contains(t, body, "Refund stuck for order 42", "the message is kept")
}

func TestContactSubmit_Browser(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().SendContact(gomock.Any(), model.ContactMessage{Subject: "Refunds", Message: "Refund stuck"}).Return(nil)
	h := CreateUIHandlersForTest(t, api)
	w := httptest.NewRecorder()
	form := url.Values{"subject": {" Refunds "}, "message": {"Refund stuck"}}

	h.ContactSubmit(w, formRequest(domainauth.RolePartner, "/contact", form))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/contact?sent=1", w.Header().Get("Location"))
}

func TestContactSubmit_HTMXClearsForm(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().SendContact(gomock.Any(), gomock.Any()).Return(nil)
	h := CreateUIHandlersForTest(t, api)
	r := formRequest(domainauth.RolePartner, "/contact", url.Values{"subject": {"Refunds"}, "message": {"Refund stuck"}})
	r.Header.Set("Hx-Request", "true")
	w := httptest.NewRecorder()

	h.ContactSubmit(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Hx-Trigger"), "Your message was sent.")
	assert.NotContains(t, w.Body.String(), "Refund stuck")
}

func TestContactSubmit_APIFailureKeepsInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().SendContact(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
	h := CreateUIHandlersForTest(t, api)
	r := formRequest(domainauth.RolePartner, "/contact", url.Values{"subject": {"Refunds"}, "message": {"Refund stuck"}})
	r.Header.Set("Hx-Request", "true")
	w := httptest.NewRecorder()

	h.ContactSubmit(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Hx-Trigger"), "showToast")
	assert.Contains(t, w.Body.String(), "Refund stuck")
}
