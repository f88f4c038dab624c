// Package i18n loads the console's message catalogs and resolves the request language.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale. Every key must exist here.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

type localeCatalog struct {
	tag        language.Tag
	namespaces map[string]map[string]string
	messages   map[string]string
}

// Bundle holds every locale catalog and the x/text catalog built from them.
type Bundle struct {
	locales map[string]*localeCatalog
	tags    []language.Tag
	matcher language.Matcher
	builder *catalog.Builder
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
	errDefault    error
)

// Default returns the bundle loaded from the embedded catalogs.
func Default() (*Bundle, error) {
	defaultOnce.Do(func() {
		defaultBundle, errDefault = LoadFromFS(embeddedFS)
	})
	return defaultBundle, errDefault
}

// MustDefault is Default for callers that treat a broken embedded catalog as a build error.
func MustDefault() *Bundle {
	b, err := Default()
	if err != nil {
		panic(err)
	}
	return b
}

// LoadFromFS loads locales/<tag>/<namespace>.yaml files from fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]*localeCatalog{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.addFile(p, file); err != nil {
			return nil, err
		}
	}

	if _, ok := b.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	if err := b.build(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) addFile(p string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(p))
	namespaceFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))

	locale := strings.TrimSpace(file.Locale)
	if locale != localeFromPath {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, locale, localeFromPath)
	}
	namespace := strings.TrimSpace(file.Namespace)
	if namespace != namespaceFromPath {
		return fmt.Errorf("catalog %s: namespace %q must match filename %q", p, namespace, namespaceFromPath)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages map is required", p)
	}

	lc, ok := b.locales[locale]
	if !ok {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("catalog %s: parse locale %q: %w", p, locale, err)
		}
		lc = &localeCatalog{tag: tag, namespaces: map[string]map[string]string{}, messages: map[string]string{}}
		b.locales[locale] = lc
	}
	if _, exists := lc.namespaces[namespace]; exists {
		return fmt.Errorf("catalog %s: namespace %q already defined for %s", p, namespace, locale)
	}

	ns := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		if _, exists := lc.messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in %s", p, key, locale)
		}
		lc.messages[key] = value
		ns[key] = value
	}
	lc.namespaces[namespace] = ns
	return nil
}

// build registers every message in a private catalog. Regional tags also
// register their base language so "es" resolves to es-MX.
func (b *Bundle) build() error {
	base := b.locales[BaseLocale].tag
	b.builder = catalog.NewBuilder(catalog.Fallback(base))
	b.tags = []language.Tag{base}

	for _, locale := range b.Locales() {
		lc := b.locales[locale]
		if lc.tag != base {
			b.tags = append(b.tags, lc.tag)
		}
		tags := []language.Tag{lc.tag}
		if lang, conf := lc.tag.Base(); conf != language.No {
			if baseTag := language.Make(lang.String()); baseTag != lc.tag {
				tags = append(tags, baseTag)
			}
		}
		for key, value := range lc.messages {
			for _, t := range tags {
				if err := b.builder.SetString(t, key, value); err != nil {
					return fmt.Errorf("register %s %q: %w", locale, key, err)
				}
			}
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return nil
}

// Locales returns the loaded locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for l := range b.locales {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Supported returns the supported tags with the base locale first.
func (b *Bundle) Supported() []language.Tag {
	return append([]language.Tag(nil), b.tags...)
}

// Keys returns every key defined for locale.
func (b *Bundle) Keys(locale string) []string {
	lc, ok := b.locales[locale]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(lc.messages))
	for k := range lc.messages {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Message returns the raw (unformatted) message with base-locale fallback.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if lc, ok := b.locales[locale]; ok {
		if v, ok := lc.messages[key]; ok {
			return v, true
		}
	}
	if locale != BaseLocale {
		v, ok := b.locales[BaseLocale].messages[key]
		return v, ok
	}
	return "", false
}

// Match returns the supported tag closest to the requested ones, or the base locale.
func (b *Bundle) Match(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return b.tags[0]
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return b.tags[0]
	}
	return b.tags[idx]
}

// Parse returns the supported tag for s. It reports false when s is not a
// valid tag or matches no supported language.
func (b *Bundle) Parse(s string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return language.Und, false
	}
	_, idx, conf := b.matcher.Match(tag)
	if conf == language.No {
		return language.Und, false
	}
	return b.tags[idx], true
}

// Printer returns a message printer over this bundle's catalog.
func (b *Bundle) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(b.builder))
}
