package httpx

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
)

type uiHandlersKey struct{}

// withErrorPages makes h available to middleware that has to render a full
// error page (access denied) before any handler runs.
func withErrorPages(h *UIHandlers) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), uiHandlersKey{}, h)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func uiFromContext(ctx context.Context) *UIHandlers {
	h, _ := ctx.Value(uiHandlersKey{}).(*UIHandlers)
	return h
}

// renderStatusMessage renders the error page for status with msg. Without
// templates it falls back to plain text.
func renderStatusMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if h := uiFromContext(r.Context()); h != nil {
		h.renderErrorPage(w, r, status, msg)
		return
	}
	http.Error(w, msg, status)
}

// renderErrorPage renders the standalone error layout. The template is
// buffered so a failure never leaves a half-written page.
func (h *UIHandlers) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if h == nil || h.T == nil {
		http.Error(w, msg, status)
		return
	}

	session := SessionFrom(r.Context())
	isAuthenticated := session != nil && !session.IsGuest()

	data := basePageData(r, PageMeta{Title: msg})
	data["Code"] = strconv.Itoa(status)
	data["Message"] = msg
	data["ShowLogin"] = !isAuthenticated
	data["RedirectURI"] = safeRedirectPath(r.URL.RequestURI())

	var buf bytes.Buffer
	if err := h.T.RenderError(&bufferWriter{header: w.Header(), buf: &buf}, r, data); err != nil {
		h.logger().ErrorContext(r.Context(), "error page render failed", "error", err, "status", status)
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger().Error("failed to write error page", "error", err)
	}
}

// bufferWriter collects a rendered template before the status is committed.
type bufferWriter struct {
	header http.Header
	buf    *bytes.Buffer
}

func (b *bufferWriter) Header() http.Header         { return b.header }
func (b *bufferWriter) Write(p []byte) (int, error) { return b.buf.Write(p) }
func (b *bufferWriter) WriteHeader(int)             {}

// NotFound handles 404 errors with auth-aware behavior.
// For browser requests, it renders an HTML error page.
// For API requests, it returns a JSON error response.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		h.renderErrorPage(w, r, http.StatusNotFound, loc(r).T("error.page_not_found"))
		return
	}
	writeJSONError(w, r, http.StatusNotFound, "not_found", "not found")
}
