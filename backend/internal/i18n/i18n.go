// Package i18n loads the embedded locale catalogs and resolves localization
// keys. The graph assembler only ever sees the translate func produced here;
// it never loads locale bundles itself.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/daddyparodz/nametag/backend/internal/constants"
)

// RelationshipDefaultsNamespace holds the localized labels for pristine
// default relationship types.
const RelationshipDefaultsNamespace = "relationshipTypes.defaults"

//go:embed locales/*.yaml
var localeFS embed.FS

type localeFile struct {
	Locale   string                       `yaml:"locale"`
	Messages map[string]map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale catalog and matches requested locales
// against them.
type Bundle struct {
	// locale -> namespace -> key -> message
	catalogs map[string]map[string]map[string]string
	codes    []string
	matcher  language.Matcher
}

// Load parses the embedded locale catalogs. The base locale must be present;
// other locales may be partial and fall back to it key by key.
func Load() (*Bundle, error) {
	paths, err := fs.Glob(localeFS, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale catalogs embedded")
	}
	sort.Strings(paths)

	b := &Bundle{catalogs: make(map[string]map[string]map[string]string)}
	for _, path := range paths {
		data, err := fs.ReadFile(localeFS, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file localeFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if file.Locale == "" {
			return nil, fmt.Errorf("catalog %s: locale is required", path)
		}
		b.catalogs[file.Locale] = file.Messages
	}

	if _, ok := b.catalogs[constants.DefaultLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not embedded", constants.DefaultLocale)
	}

	// Base locale first so the matcher falls back to it
	b.codes = append(b.codes, constants.DefaultLocale)
	for code := range b.catalogs {
		if code != constants.DefaultLocale {
			b.codes = append(b.codes, code)
		}
	}
	sort.Strings(b.codes[1:])

	tags := make([]language.Tag, 0, len(b.codes))
	for _, code := range b.codes {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("invalid locale code %s: %w", code, err)
		}
		tags = append(tags, tag)
	}
	b.matcher = language.NewMatcher(tags)

	return b, nil
}

// Supported returns the loaded locale codes, base locale first.
func (b *Bundle) Supported() []string {
	return b.codes
}

// Has reports whether a locale catalog is loaded.
func (b *Bundle) Has(locale string) bool {
	_, ok := b.catalogs[locale]
	return ok
}

// Match picks the best supported locale for the requested preferences, which
// may be locale codes or a full Accept-Language header value. Falls back to
// the base locale.
func (b *Bundle) Match(requested ...string) string {
	preferences := make([]string, 0, len(requested))
	for _, r := range requested {
		if strings.TrimSpace(r) != "" {
			preferences = append(preferences, r)
		}
	}
	if len(preferences) == 0 {
		return constants.DefaultLocale
	}
	_, index := language.MatchStrings(b.matcher, preferences...)
	return b.codes[index]
}

// Translator returns a translate func resolving keys in one namespace of one
// locale, falling back to the base locale and finally to the key itself.
func (b *Bundle) Translator(locale, namespace string) func(key string) string {
	messages := b.catalogs[locale][namespace]
	base := b.catalogs[constants.DefaultLocale][namespace]
	return func(key string) string {
		if msg, ok := messages[key]; ok {
			return msg
		}
		if msg, ok := base[key]; ok {
			return msg
		}
		return key
	}
}
