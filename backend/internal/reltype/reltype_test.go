package reltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayLabel_CustomType(t *testing.T) {
	// No canonical name: the label is always shown verbatim
	typ := &Type{Label: "Climbing buddy"}
	translate := func(key string) string { return "translated:" + key }

	assert.Equal(t, "Climbing buddy", DisplayLabel(typ, translate))
	assert.Equal(t, "Climbing buddy", DisplayLabel(typ, nil))
}

func TestDisplayLabel_UnrecognizedName(t *testing.T) {
	typ := &Type{Name: "BEST_FRIEND", Label: "Best Friend"}
	translate := func(key string) string { return "translated:" + key }

	assert.Equal(t, "Best Friend", DisplayLabel(typ, translate))
}

func TestDisplayLabel_CustomizedDefault(t *testing.T) {
	// User renamed the PARENT type: their text wins in every locale
	typ := &Type{Name: "PARENT", Label: "Papa"}
	translate := func(key string) string { return "Padre" }

	assert.Equal(t, "Papa", DisplayLabel(typ, translate))
}

func TestDisplayLabel_PristineDefaultTranslated(t *testing.T) {
	typ := &Type{Name: "PARENT", Label: "Parent"}
	translate := func(key string) string {
		if key == "parent" {
			return "Padre"
		}
		return key
	}

	assert.Equal(t, "Padre", DisplayLabel(typ, translate))
}

func TestDisplayLabel_PristineDefaultNoTranslator(t *testing.T) {
	typ := &Type{Name: "SIBLING", Label: "Sibling"}

	assert.Equal(t, "Sibling", DisplayLabel(typ, nil))
}

func TestDisplayLabel_NameCaseInsensitive(t *testing.T) {
	typ := &Type{Name: "parent", Label: "Parent"}
	translate := func(key string) string { return "Padre" }

	assert.Equal(t, "Padre", DisplayLabel(typ, translate))
}

func TestDisplayLabel_Idempotent(t *testing.T) {
	typ := &Type{Name: "FRIEND", Label: "Friend"}
	translate := func(key string) string { return "Amico" }

	first := DisplayLabel(typ, translate)
	second := DisplayLabel(typ, translate)
	assert.Equal(t, first, second)
}

func TestDisplayLabel_NilType(t *testing.T) {
	assert.Equal(t, "", DisplayLabel(nil, nil))
}

func TestDefaultLabel(t *testing.T) {
	label, ok := DefaultLabel("parent")
	assert.True(t, ok)
	assert.Equal(t, "Parent", label)

	_, ok = DefaultLabel("NOT_A_TYPE")
	assert.False(t, ok)
}

func TestPreloaded_InversesResolve(t *testing.T) {
	byName := make(map[string]PreloadedType, len(Preloaded))
	for _, pt := range Preloaded {
		byName[pt.Name] = pt
	}

	for _, pt := range Preloaded {
		if pt.Symmetric {
			assert.Empty(t, pt.InverseName, "symmetric type %s must not name an inverse", pt.Name)
			continue
		}
		inverse, ok := byName[pt.InverseName]
		assert.True(t, ok, "inverse %s of %s must exist", pt.InverseName, pt.Name)
		assert.Equal(t, pt.Name, inverse.InverseName, "inverse of inverse of %s must be itself", pt.Name)
	}
}

func TestPreloaded_LabelsMatchDefaults(t *testing.T) {
	for _, pt := range Preloaded {
		label, ok := DefaultLabel(pt.Name)
		assert.True(t, ok, "preloaded type %s must have a default label", pt.Name)
		assert.Equal(t, pt.Label, label)
	}
}
