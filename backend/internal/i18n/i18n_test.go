package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := Load()
	require.NoError(t, err)
	return b
}

func TestLoad_SupportedLocales(t *testing.T) {
	b := loadBundle(t)

	assert.Equal(t, []string{"en", "es-ES", "it-IT"}, b.Supported())
	assert.True(t, b.Has("en"))
	assert.False(t, b.Has("fr"))
}

func TestTranslator_ResolvesLocalizedKey(t *testing.T) {
	b := loadBundle(t)

	translate := b.Translator("it-IT", RelationshipDefaultsNamespace)
	assert.Equal(t, "Genitore", translate("parent"))
	assert.Equal(t, "Fratello/Sorella", translate("sibling"))
}

func TestTranslator_FallsBackToBaseLocale(t *testing.T) {
	b := loadBundle(t)

	// Unknown locale: every key resolves through the base catalog
	translate := b.Translator("fr", RelationshipDefaultsNamespace)
	assert.Equal(t, "Parent", translate("parent"))
}

func TestTranslator_UnknownKeyReturnsKey(t *testing.T) {
	b := loadBundle(t)

	translate := b.Translator("en", RelationshipDefaultsNamespace)
	assert.Equal(t, "notAKey", translate("notAKey"))
}

func TestMatch_AcceptLanguage(t *testing.T) {
	b := loadBundle(t)

	assert.Equal(t, "it-IT", b.Match("it-IT,it;q=0.9,en;q=0.8"))
	assert.Equal(t, "es-ES", b.Match("es"))
	assert.Equal(t, "en", b.Match("de-DE"))
	assert.Equal(t, "en", b.Match(""))
	assert.Equal(t, "en", b.Match())
}
