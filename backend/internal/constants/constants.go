package constants

// Display color fallbacks
const (
	// DefaultGroupColor is used for group badges without a stored color
	DefaultGroupColor = "#3B82F6"

	// DefaultEdgeColor is used for person-to-person edges without a type color
	DefaultEdgeColor = "#999999"

	// ViewerEdgeColor is used for person-to-viewer edges without a type color
	ViewerEdgeColor = "#9CA3AF"
)

// Graph constants
const (
	// ViewerNodePrefix prefixes the synthetic viewer node id so it can never
	// collide with a person id
	ViewerNodePrefix = "user-"

	// UnknownRelationshipLabel is shown when an edge has no resolvable type
	UnknownRelationshipLabel = "Unknown"
)

// Locale codes
const (
	LocaleEnglish = "en"
	LocaleSpanish = "es-ES"
	LocaleItalian = "it-IT"
)

// DefaultLocale is the base locale every catalog key must exist in
const DefaultLocale = LocaleEnglish
