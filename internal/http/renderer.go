package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	httpassets "github.com/txpay/txpay-admin/internal/http/assets"
	corefuncs "github.com/txpay/txpay-admin/internal/http/templates/core"
)

var templatePatterns = []string{"*.tmpl", "pages/*.tmpl", "partials/*.tmpl"}

// TemplateRenderer renders the console's HTML templates. Output is buffered
// so a failed execution never sends half a page.
type TemplateRenderer struct {
	fsys     fs.FS
	resolver *httpassets.AssetResolver
	logger   *slog.Logger
	reload   bool

	mu sync.RWMutex
	t  *template.Template
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS                     // required
	Resolver   *httpassets.AssetResolver // hashed asset names; nil keeps logical names
	Logger     *slog.Logger
	// Reload re-parses the templates on every render (development).
	Reload bool
}

// NewTemplateRenderer parses the template set once up front, so a broken
// template fails startup even when Reload is set.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	r := &TemplateRenderer{
		fsys:     cfg.TemplateFS,
		resolver: cfg.Resolver,
		logger:   cfg.Logger,
		reload:   cfg.Reload,
	}
	t, err := r.parse()
	if err != nil {
		r.log().Error("template parsing failed", slog.Any("error", err))
		return nil, err
	}
	r.t = t
	return r, nil
}

func (r *TemplateRenderer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

func (r *TemplateRenderer) parse() (*template.Template, error) {
	var t *template.Template
	funcs := corefuncs.Funcs(corefuncs.Deps{Template: &t, ContentTemplateFor: ContentTemplateFor})
	funcs["asset"] = r.resolver.Resolve
	t, err := template.New("root").Funcs(funcs).ParseFS(r.fsys, templatePatterns...)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// current returns the template set, re-parsing it first in reload mode. A
// failed re-parse keeps serving the last good set.
func (r *TemplateRenderer) current() *template.Template {
	if r.reload {
		if t, err := r.parse(); err != nil {
			r.log().Warn("template reload failed; serving previous set", slog.Any("error", err))
		} else {
			r.mu.Lock()
			r.t = t
			r.mu.Unlock()
		}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.t
}

// RenderFull renders the full page (layout + page content).
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.execute(w, "layout", data)
}

// RenderPartial renders the htmx navigation fragment: the page content plus
// out-of-band title updates.
func (r *TemplateRenderer) RenderPartial(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.execute(w, "fragment", data)
}

// RenderNamed renders a single named template, used for HTMX fragments.
func (r *TemplateRenderer) RenderNamed(w http.ResponseWriter, name string, data any) error {
	return r.execute(w, name, data)
}

// RenderError renders the standalone error layout.
func (r *TemplateRenderer) RenderError(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.execute(w, "error-layout", data)
}

// Has reports whether a template with the given name was parsed.
func (r *TemplateRenderer) Has(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.t != nil && r.t.Lookup(name) != nil
}

var renderBuffers = sync.Pool{New: func() any { return new(bytes.Buffer) }}

func (r *TemplateRenderer) execute(w http.ResponseWriter, name string, data any) error {
	buf, _ := renderBuffers.Get().(*bytes.Buffer)
	buf.Reset()
	defer renderBuffers.Put(buf)

	if err := r.current().ExecuteTemplate(buf, name, data); err != nil {
		r.log().Error("template execution failed", slog.String("template", name), slog.Any("error", err))
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		r.log().Error("writing rendered template failed", slog.String("template", name), slog.Any("error", err))
		return err
	}
	return nil
}
