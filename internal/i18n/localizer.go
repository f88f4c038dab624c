package i18n

import (
	"context"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Localizer translates keys for one resolved language.
type Localizer struct {
	bundle  *Bundle
	tag     language.Tag
	locale  string
	printer *message.Printer
}

// NewLocalizer creates a Localizer for tag. Unsupported tags resolve to the closest supported one.
func NewLocalizer(b *Bundle, tag language.Tag) *Localizer {
	tag = b.Match(tag)
	return &Localizer{bundle: b, tag: tag, locale: tag.String(), printer: b.Printer(tag)}
}

// Tag returns the resolved language.
func (l *Localizer) Tag() language.Tag {
	if l == nil {
		return language.Make(BaseLocale)
	}
	return l.tag
}

// Locale returns the resolved locale identifier, e.g. "es-MX".
func (l *Localizer) Locale() string {
	if l == nil {
		return BaseLocale
	}
	return l.locale
}

// T formats the message for key. Unknown keys are returned verbatim.
func (l *Localizer) T(key string, args ...any) string {
	if l == nil {
		return key
	}
	if _, ok := l.bundle.Message(l.locale, key); !ok {
		return key
	}
	return l.printer.Sprintf(key, args...)
}

// Has reports whether key is defined.
func (l *Localizer) Has(key string) bool {
	if l == nil {
		return false
	}
	_, ok := l.bundle.Message(l.locale, key)
	return ok
}

type localizerKey struct{}

// WithLocalizer stores l in ctx.
func WithLocalizer(ctx context.Context, l *Localizer) context.Context {
	return context.WithValue(ctx, localizerKey{}, l)
}

// FromContext returns the request Localizer. Requests that skipped the
// language middleware get the base locale; nil only when the embedded
// catalogs failed to load, and a nil Localizer returns keys untranslated.
func FromContext(ctx context.Context) *Localizer {
	if l, ok := ctx.Value(localizerKey{}).(*Localizer); ok && l != nil {
		return l
	}
	return baseLocalizer()
}

//nolint:gochecknoglobals // built once from the embedded catalogs
var baseLocalizer = sync.OnceValue(func() *Localizer {
	b, err := Default()
	if err != nil {
		return nil
	}
	return NewLocalizer(b, language.Make(BaseLocale))
})
