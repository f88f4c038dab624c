package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/txpay/txpay-admin/internal/http/uiutil"
	"github.com/txpay/txpay-admin/internal/i18n"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
// Translation helpers take the request localizer explicitly: {{t $.L "key" args...}}.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"sectionTmpl":  deps.ContentTemplateFor,
		"t":            translate,
		"money":        money,
		"number":       number,
		"friendlyTime": friendlyTime,
		"timeTag":      timeTag,
		"dateInput":    uiutil.DateInput,
		"add":          func(a, b int) int { return a + b },
		"sub":          func(a, b int) int { return a - b },
		"dict":         dict,
		"statusClass":  StatusClass,
		"truncateText": uiutil.Truncate,
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped during execution.
		return template.HTML(buf.String()), nil
	}

	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func translate(l *i18n.Localizer, key string, args ...any) string {
	return l.T(key, args...)
}

// money accepts json.Number, string or fmt.Stringer amounts.
func money(l *i18n.Localizer, amount any, currency string) string {
	return l.Money(fmt.Sprint(amount), currency)
}

func number(l *i18n.Localizer, n int) string {
	return l.Number(n)
}

// dict builds a map from alternating keys and values for passing several
// values into a nested template.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict requires key/value pairs")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

func timeOf(ts any) time.Time {
	switch v := ts.(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	}
	return time.Time{}
}

func friendlyTime(ts any) string {
	return uiutil.DisplayTime(timeOf(ts))
}

func timeTag(ts any) template.HTML {
	t0 := timeOf(ts)
	if t0.IsZero() {
		return ""
	}
	// #nosec G203 - built from formatted timestamps only, each escaped.
	return template.HTML(fmt.Sprintf(
		"<time datetime=\"%s\" title=\"%s\">%s</time>",
		t0.UTC().Format(time.RFC3339),
		template.HTMLEscapeString(t0.Local().Format(time.RFC1123)),
		template.HTMLEscapeString(uiutil.DisplayTime(t0)),
	))
}

// StatusClass maps entity and transaction statuses onto badge classes.
func StatusClass(status any) string {
	switch strings.ToUpper(fmt.Sprint(status)) {
	case "ACTIVE", "CAPTURED", "PAID", "OK", "SUCCESS", "TRUE":
		return "badge-success"
	case "PENDING", "AUTHORIZED":
		return "badge-info"
	case "REFUNDED", "VOIDED", "EXPIRED", "INACTIVE", "FALSE":
		return "badge-secondary"
	case "FAILED", "SUSPENDED", "CANCELLED", "ERROR":
		return "badge-danger"
	default:
		return "badge-light"
	}
}
