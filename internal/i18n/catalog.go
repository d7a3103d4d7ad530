// Package i18n loads the panel's message catalogs and resolves which locale a
// request should be rendered in.
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

// BaseLocale is the source locale every other catalog falls back to.
const BaseLocale = "ru"

//go:embed locales/*.yaml
var embeddedFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle is an immutable set of locale catalogs.
type Bundle struct {
	tags     []language.Tag
	messages map[string]map[string]string
	builder  *catalog.Builder
	matcher  language.Matcher
}

var defaultBundle = sync.OnceValue(func() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return b
})

// Default returns the bundle built from the catalogs compiled into the binary.
func Default() *Bundle {
	return defaultBundle()
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	sub, err := fs.Sub(embeddedFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("open embedded locales: %w", err)
	}
	return Load(sub)
}

// Load reads every *.yaml / *.yml catalog at the root of fsys.
func Load(fsys fs.FS) (*Bundle, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob locale catalogs: %w", err)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	files := make(map[string]catalogFile, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		file, err := parseCatalogFile(p, data)
		if err != nil {
			return nil, err
		}
		if _, exists := files[file.Locale]; exists {
			return nil, fmt.Errorf("catalog %s: locale %q already defined", p, file.Locale)
		}
		files[file.Locale] = file
	}

	base, ok := files[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	return build(base, files)
}

func parseCatalogFile(p string, data []byte) (catalogFile, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return catalogFile{}, fmt.Errorf("parse catalog %s: %w", p, err)
	}

	file.Locale = strings.TrimSpace(file.Locale)
	if file.Locale == "" {
		return catalogFile{}, fmt.Errorf("catalog %s: locale is required", p)
	}
	stem := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if file.Locale != stem {
		return catalogFile{}, fmt.Errorf("catalog %s: locale %q must match file name %q", p, file.Locale, stem)
	}
	if _, err := language.Parse(file.Locale); err != nil {
		return catalogFile{}, fmt.Errorf("catalog %s: invalid locale %q: %w", p, file.Locale, err)
	}
	if len(file.Messages) == 0 {
		return catalogFile{}, fmt.Errorf("catalog %s: messages map is required", p)
	}

	messages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		trimmed := strings.TrimSpace(key)
		if trimmed == "" {
			return catalogFile{}, fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		messages[trimmed] = value
	}
	file.Messages = messages

	return file, nil
}

func build(base catalogFile, files map[string]catalogFile) (*Bundle, error) {
	baseTag := language.MustParse(base.Locale)

	locales := make([]string, 0, len(files))
	for locale := range files {
		if locale != base.Locale {
			locales = append(locales, locale)
		}
	}
	sort.Strings(locales)
	locales = append([]string{base.Locale}, locales...)

	b := &Bundle{
		tags:     make([]language.Tag, 0, len(locales)),
		messages: make(map[string]map[string]string, len(locales)),
		builder:  catalog.NewBuilder(catalog.Fallback(baseTag)),
	}

	for _, locale := range locales {
		file := files[locale]
		for key := range file.Messages {
			if _, ok := base.Messages[key]; !ok {
				return nil, fmt.Errorf("catalog %s: key %q is not defined in base locale %s", locale, key, base.Locale)
			}
		}

		messages := make(map[string]string, len(base.Messages))
		for key, value := range base.Messages {
			if translated, ok := file.Messages[key]; ok {
				value = translated
			}
			messages[key] = value
		}

		// Messages take no arguments; a literal % must survive Sprintf.
		tag := language.MustParse(locale)
		for key, value := range messages {
			if err := b.builder.SetString(tag, key, strings.ReplaceAll(value, "%", "%%")); err != nil {
				return nil, fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}

		b.tags = append(b.tags, tag)
		b.messages[locale] = messages
	}

	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Base returns the base locale tag.
func (b *Bundle) Base() language.Tag {
	return b.tags[0]
}

// Tags returns the supported tags, base locale first.
func (b *Bundle) Tags() []language.Tag {
	out := make([]language.Tag, len(b.tags))
	copy(out, b.tags)
	return out
}

// Locales returns the supported locale identifiers, base locale first.
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.tags))
	for i, tag := range b.tags {
		out[i] = tag.String()
	}
	return out
}

// Printer returns a printer that formats messages from this bundle.
func (b *Bundle) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(b.builder))
}

// Match picks the best supported tag for the preferred tags, or the base
// locale when nothing matches.
func (b *Bundle) Match(preferred ...language.Tag) language.Tag {
	_, idx, conf := b.matcher.Match(preferred...)
	if conf == language.No {
		return b.Base()
	}
	return b.tags[idx]
}

// Parse resolves a raw locale value to a supported tag.
func (b *Bundle) Parse(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, false
	}
	_, idx, conf := b.matcher.Match(tag)
	if conf == language.No {
		return language.Und, false
	}
	return b.tags[idx], true
}

// Message returns one message for locale, falling back to the base locale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if messages, ok := b.messages[strings.TrimSpace(locale)]; ok {
		value, ok := messages[key]
		return value, ok
	}
	value, ok := b.messages[b.Base().String()][key]
	return value, ok
}

// Messages returns a copy of the messages for locale.
func (b *Bundle) Messages(locale string) map[string]string {
	messages, ok := b.messages[strings.TrimSpace(locale)]
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(messages))
	for key, value := range messages {
		out[key] = value
	}
	return out
}
