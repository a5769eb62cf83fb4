// Package reltype describes relationship types: the typed catalogue entries
// that give every relationship record its displayed label and color, the
// built-in default type set seeded for each user, and the rule that decides
// whether a label is shown verbatim or localized.
package reltype

import "strings"

// Type is one relationship type as stored for a user. Name is the optional
// canonical key (PARENT, SIBLING, ...) and is only meaningful for default
// types; fully custom types have an empty Name. Inverse points at the type
// that describes the same relationship from the other person's perspective,
// and symmetric types point at themselves.
type Type struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Label   string `json:"label"`
	Color   string `json:"color,omitempty"`
	Inverse *Type  `json:"inverse,omitempty"`
}

// TranslateFunc resolves a localization key to a localized string.
type TranslateFunc func(key string) string

// defaultLabels maps canonical type names to the built-in English labels.
// A stored label that still equals its entry here is a pristine default and
// eligible for localization.
var defaultLabels = map[string]string{
	"PARENT":         "Parent",
	"CHILD":          "Child",
	"GRANDPARENT":    "Grandparent",
	"GRANDCHILD":     "Grandchild",
	"AUNT_UNCLE":     "Aunt/Uncle",
	"NIECE_NEPHEW":   "Niece/Nephew",
	"COUSIN":         "Cousin",
	"STEP_PARENT":    "Step-Parent",
	"STEP_CHILD":     "Step-Child",
	"PARENT_IN_LAW":  "Parent-in-Law",
	"CHILD_IN_LAW":   "Child-in-Law",
	"SIBLING_IN_LAW": "Sibling-in-Law",
	"SIBLING":        "Sibling",
	"SPOUSE":         "Spouse",
	"PARTNER":        "Partner",
	"FRIEND":         "Friend",
	"COLLEAGUE":      "Colleague",
	"ACQUAINTANCE":   "Acquaintance",
	"OTHER":          "Other",
}

// defaultKeys maps canonical type names to their localization keys.
var defaultKeys = map[string]string{
	"PARENT":         "parent",
	"CHILD":          "child",
	"GRANDPARENT":    "grandparent",
	"GRANDCHILD":     "grandchild",
	"AUNT_UNCLE":     "auntUncle",
	"NIECE_NEPHEW":   "nieceNephew",
	"COUSIN":         "cousin",
	"STEP_PARENT":    "stepParent",
	"STEP_CHILD":     "stepChild",
	"PARENT_IN_LAW":  "parentInLaw",
	"CHILD_IN_LAW":   "childInLaw",
	"SIBLING_IN_LAW": "siblingInLaw",
	"SIBLING":        "sibling",
	"SPOUSE":         "spouse",
	"PARTNER":        "partner",
	"FRIEND":         "friend",
	"COLLEAGUE":      "colleague",
	"ACQUAINTANCE":   "acquaintance",
	"OTHER":          "other",
}

// DefaultLabel returns the built-in label for a canonical name, if any.
func DefaultLabel(name string) (string, bool) {
	label, ok := defaultLabels[strings.ToUpper(name)]
	return label, ok
}

// DisplayLabel decides what text a relationship type shows.
//
// Custom types (no recognized canonical name) and customized labels are
// returned verbatim: a user who edits a label always sees exactly what they
// typed, in any locale. Only a pristine default label is localized, and only
// when a translate func is supplied.
func DisplayLabel(t *Type, translate TranslateFunc) string {
	if t == nil {
		return ""
	}
	if t.Name == "" {
		return t.Label
	}

	name := strings.ToUpper(t.Name)
	defaultLabel, ok := defaultLabels[name]
	if !ok {
		return t.Label
	}
	if t.Label != defaultLabel {
		return t.Label
	}
	if translate == nil {
		return t.Label
	}
	return translate(defaultKeys[name])
}
