package httpx

import (
	"html/template"
	"net/http"
)

// renderDashboardPage renders data as a full page, or as the navigation
// fragment for htmx requests. Fragments also fire nav:activate so the client
// can move the active nav marker.
func (h *UIHandlers) renderDashboardPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	render, stage := h.T.RenderFull, "page"
	if WantsPartial(r) {
		SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})
		render, stage = h.T.RenderPartial, "fragment"
	}
	if err := render(w, r, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, stage)
	}
}

// renderStatusPage renders like renderDashboardPage under a non-200 status,
// keeping the console chrome around a failure.
func (h *UIHandlers) renderStatusPage(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	if status != 0 && status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	h.renderDashboardPage(w, r, data)
}

var templateErrorPage = template.Must(template.New("template-error").Parse(
	`<div class="template-error"><h2>Template error</h2>` +
		`<p><strong>{{.Stage}}</strong> {{.Path}}</p><pre>{{.Err}}</pre></div>`))

// logAndRenderTemplateError answers a failed render with a 500. Dev mode shows
// the template error in the page.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, stage string) {
	h.logger().ErrorContext(r.Context(), "template rendering failed",
		"error", err, "stage", stage, "method", r.Method, "path", r.URL.Path)

	if !h.IsDev {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = templateErrorPage.Execute(w, map[string]string{"Stage": stage, "Path": r.URL.Path, "Err": err.Error()})
}
