package httpx

import (
	"net/http"
	"strings"

	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/http/validation"
	"github.com/txpay/txpay-admin/internal/service"
)

func contactMeta(r *http.Request) PageMeta {
	title := loc(r).T("contact.title")
	return PageMeta{Title: title, PageTitle: title, CurrentPage: PageContact}
}

// ContactPage renders the support form. GET /contact.
func (h *UIHandlers) ContactPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, contactMeta(r)).
		With("Subject", "").
		With("Message", "").
		With("Sent", r.URL.Query().Get("sent") != "").
		Build()
	h.renderDashboardPage(w, r, data)
}

// ContactSubmit sends a support message to TX Pay. POST /contact.
// On success the form is cleared and a toast confirms delivery.
func (h *UIHandlers) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	l := loc(r)
	msg := model.ContactMessage{
		Subject: strings.TrimSpace(r.PostFormValue("subject")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}
	keep := map[string]any{"Subject": msg.Subject, "Message": msg.Message}

	fv := validation.New().
		Validate("subject", msg.Subject, validation.Required(150)).
		Validate("message", msg.Message, validation.Required(5000))
	if !fv.Valid() {
		RenderError(ErrorOpts{
			W: w, R: r,
			FieldErrors: fv.Messages(l.T),
			Renderer:    h.renderDashboardPage,
			PageMeta:    contactMeta(r),
			Data:        keep,
			StatusCode:  formErrorStatus(r),
		})
		return
	}

	err := h.apiFor(r).SendContact(r.Context(), msg)
	h.Audit.Record(r.Context(), actor(r), service.AuditEvent{
		Action: "send", Entity: "contact", Detail: msg.Subject, Err: err,
	})
	if err != nil {
		h.logger().WarnContext(r.Context(), "contact send failed", "error", err)
		RenderError(ErrorOpts{
			W: w, R: r, Err: err,
			Renderer:   h.renderDashboardPage,
			PageMeta:   contactMeta(r),
			Data:       keep,
			StatusCode: formErrorStatus(r),
			ShowToast:  IsHTMX(r),
		})
		return
	}

	if !IsHTMX(r) {
		http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
		return
	}
	triggerToast(w, l.T("toast.contact_sent"), "success")
	data := NewTemplateData(r, contactMeta(r)).
		With("Subject", "").
		With("Message", "").
		With("Sent", true).
		Build()
	h.renderDashboardPage(w, r, data)
}
