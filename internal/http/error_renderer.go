package httpx

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"strings"

	apperrors "github.com/txpay/txpay-admin/internal/errors"
	"github.com/txpay/txpay-admin/internal/i18n"
	"github.com/txpay/txpay-admin/internal/txpay"
)

// ErrorRenderer draws the page that reports an error, usually
// renderDashboardPage.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// ErrorOpts describes an error page. Err may be nil when only FieldErrors
// apply. StatusCode 0 leaves the status at 200, which htmx swaps.
type ErrorOpts struct {
	W           http.ResponseWriter
	R           *http.Request
	Err         error
	FieldErrors map[string]string
	Renderer    ErrorRenderer
	PageMeta    PageMeta
	Data        map[string]any
	StatusCode  int
	// ShowToast repeats a general error message as a toast.
	ShowToast bool
}

// DetermineErrorStatus is the status for a page reporting err, or 0 for nil.
func DetermineErrorStatus(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return apperrors.GetCode(err).HTTPStatus()
}

// ErrorMessage returns the display string for err. Business errors reported by
// the API (validation, conflict, not found) keep the server-supplied message;
// transport and internal failures use the localized "error.<code>" text.
func ErrorMessage(l *i18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return l.T("error.timeout")
	}
	if errors.Is(err, context.Canceled) {
		return l.T("error.canceled")
	}

	code := apperrors.GetCode(err)
	var apiErr *txpay.APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		switch code {
		case apperrors.ErrCodeValidation, apperrors.ErrCodeConflict,
			apperrors.ErrCodeNotFound, apperrors.ErrCodeForeignKey:
			return apiErr.Message
		}
	}
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	return l.T("error." + string(code))
}

// FieldErrorsFrom extracts per-field messages from err: every field the API
// named, or the single field carried by an application error.
func FieldErrorsFrom(err error) map[string]string {
	if fields := txpay.FieldErrors(err); len(fields) > 0 {
		return fields
	}
	if field := apperrors.GetField(err); field != "" {
		return map[string]string{field: apperrors.GetMessage(err)}
	}
	return nil
}

// RenderError redraws a page with err explained. Errors naming fields land
// next to those fields under a generic banner; anything else becomes the
// banner message. Caller-supplied FieldErrors win over those from err.
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}
	l := loc(opts.R)

	fields := maps.Clone(opts.FieldErrors)
	var banner string
	if opts.Err != nil {
		if fromErr := FieldErrorsFrom(opts.Err); len(fromErr) > 0 {
			if fields == nil {
				fields = make(map[string]string, len(fromErr))
			}
			for k, v := range fromErr {
				if _, set := fields[k]; !set {
					fields[k] = v
				}
			}
		} else {
			banner = ErrorMessage(l, opts.Err)
		}
	}

	builder := NewTemplateData(opts.R, opts.PageMeta).WithFieldErrors(fields)
	switch {
	case banner != "":
		builder.WithError(banner)
		if opts.ShowToast {
			triggerToast(opts.W, banner, "error")
		}
	case len(fields) > 0:
		builder.WithError(l.T("error.fix_below"))
	}
	builder.Merge(opts.Data)

	if opts.StatusCode != 0 {
		opts.W.Header().Set("Content-Type", "text/html; charset=utf-8")
		opts.W.WriteHeader(opts.StatusCode)
	}
	opts.Renderer(opts.W, opts.R, builder.Build())
}
