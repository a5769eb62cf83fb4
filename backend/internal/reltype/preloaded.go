package reltype

// PreloadedType describes one entry of the default type set created for every
// new user. Symmetric types are their own inverse; asymmetric types name
// their counterpart. Each user gets an independent copy they can edit or
// delete.
type PreloadedType struct {
	Name        string
	Label       string
	Color       string
	InverseName string
	Symmetric   bool
}

// Preloaded is the default relationship type set.
var Preloaded = []PreloadedType{
	{Name: "PARENT", Label: "Parent", Color: "#F59E0B", InverseName: "CHILD"},
	{Name: "CHILD", Label: "Child", Color: "#F59E0B", InverseName: "PARENT"},
	{Name: "GRANDPARENT", Label: "Grandparent", Color: "#F97316", InverseName: "GRANDCHILD"},
	{Name: "GRANDCHILD", Label: "Grandchild", Color: "#FB923C", InverseName: "GRANDPARENT"},
	{Name: "AUNT_UNCLE", Label: "Aunt/Uncle", Color: "#A855F7", InverseName: "NIECE_NEPHEW"},
	{Name: "NIECE_NEPHEW", Label: "Niece/Nephew", Color: "#D946EF", InverseName: "AUNT_UNCLE"},
	{Name: "COUSIN", Label: "Cousin", Color: "#0EA5E9", Symmetric: true},
	{Name: "STEP_PARENT", Label: "Step-Parent", Color: "#EF4444", InverseName: "STEP_CHILD"},
	{Name: "STEP_CHILD", Label: "Step-Child", Color: "#F43F5E", InverseName: "STEP_PARENT"},
	{Name: "PARENT_IN_LAW", Label: "Parent-in-Law", Color: "#22C55E", InverseName: "CHILD_IN_LAW"},
	{Name: "CHILD_IN_LAW", Label: "Child-in-Law", Color: "#16A34A", InverseName: "PARENT_IN_LAW"},
	{Name: "SIBLING_IN_LAW", Label: "Sibling-in-Law", Color: "#06B6D4", Symmetric: true},
	{Name: "SIBLING", Label: "Sibling", Color: "#8B5CF6", Symmetric: true},
	{Name: "SPOUSE", Label: "Spouse", Color: "#EC4899", Symmetric: true},
	{Name: "PARTNER", Label: "Partner", Color: "#EC4899", Symmetric: true},
	{Name: "FRIEND", Label: "Friend", Color: "#3B82F6", Symmetric: true},
	{Name: "COLLEAGUE", Label: "Colleague", Color: "#10B981", Symmetric: true},
	{Name: "ACQUAINTANCE", Label: "Acquaintance", Color: "#14B8A6", Symmetric: true},
	{Name: "OTHER", Label: "Other", Color: "#6B7280", Symmetric: true},
}
