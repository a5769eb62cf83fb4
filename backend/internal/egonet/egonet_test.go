package egonet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daddyparodz/nametag/backend/internal/reltype"
)

const viewerID = "owner-1"

func symmetricType(name, label, color string) *reltype.Type {
	t := &reltype.Type{Name: name, Label: label, Color: color}
	t.Inverse = t
	return t
}

func parentChild() (*reltype.Type, *reltype.Type) {
	parent := &reltype.Type{Name: "PARENT", Label: "Parent", Color: "#F59E0B"}
	child := &reltype.Type{Name: "CHILD", Label: "Child", Color: "#F59E0B"}
	parent.Inverse = child
	child.Inverse = parent
	return parent, child
}

func nodeIDs(g *Graph) []string {
	ids := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestBuild_CenterAndViewerOnly(t *testing.T) {
	center := &Person{
		ID:                  "p1",
		Name:                "Alice",
		RelationshipToOwner: &reltype.Type{Label: "Friend"},
	}

	g := Build(center, viewerID, nil)

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "p1", g.Nodes[0].ID)
	assert.True(t, g.Nodes[0].IsCenter)
	assert.Equal(t, "user-owner-1", g.Nodes[1].ID)
	assert.Equal(t, "You", g.Nodes[1].Label)
	assert.False(t, g.Nodes[1].IsCenter)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, Edge{Source: "p1", Target: "user-owner-1", Type: "Friend", Color: "#9CA3AF"}, g.Edges[0])
}

func TestBuild_DisplayName(t *testing.T) {
	center := &Person{ID: "p1", Name: "Robert", Nickname: "Bob", Surname: "Smith"}

	g := Build(center, viewerID, nil)

	assert.Equal(t, `Robert "Bob" Smith`, g.Nodes[0].Label)
}

func TestBuild_GroupColorFallback(t *testing.T) {
	center := &Person{
		ID:   "p1",
		Name: "Alice",
		Groups: []Group{
			{Name: "Family", Color: "#8B5CF6"},
			{Name: "Book club"},
		},
	}

	g := Build(center, viewerID, nil)

	assert.Equal(t, []string{"Family", "Book club"}, g.Nodes[0].Groups)
	assert.Equal(t, []string{"#8B5CF6", "#3B82F6"}, g.Nodes[0].Colors)
}

func TestBuild_NoDuplicateNodes(t *testing.T) {
	friend := symmetricType("FRIEND", "Friend", "#3B82F6")
	related := &Person{ID: "p2", Name: "Bob"}
	center := &Person{
		ID:   "p1",
		Name: "Alice",
		Relationships: []Relation{
			{RelatedPersonID: "p2", Type: friend, RelatedPerson: related},
			{RelatedPersonID: "p2", Type: friend, RelatedPerson: related},
		},
	}

	g := Build(center, viewerID, nil)

	seen := make(map[string]bool)
	for _, id := range nodeIDs(g) {
		assert.False(t, seen[id], "duplicate node %s", id)
		seen[id] = true
	}
	assert.Len(t, g.Nodes, 3)
}

func TestBuild_PairDedup_BothDirectionsStored(t *testing.T) {
	// A -SIBLING-> B stored from the center, and B -SIBLING-> A stored from
	// the related person's side: exactly one edge survives.
	sibling := symmetricType("SIBLING", "Sibling", "#8B5CF6")
	related := &Person{
		ID:   "p2",
		Name: "Bob",
		Relationships: []Relation{
			{RelatedPersonID: "p1", Type: sibling},
		},
	}
	center := &Person{
		ID:   "p1",
		Name: "Alice",
		Relationships: []Relation{
			{RelatedPersonID: "p2", Type: sibling, RelatedPerson: related},
		},
	}

	g := Build(center, viewerID, nil)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, "p1", g.Edges[0].Source)
	assert.Equal(t, "p2", g.Edges[0].Target)
	assert.Equal(t, "Sibling", g.Edges[0].Type)
}

func TestBuild_SwappedDirectionUsesInverse(t *testing.T) {
	// Center "p9" relates PARENT to "p2". Canonical order puts p2 first, so
	// the edge reads from p2's side and must be worded with the inverse.
	parent, _ := parentChild()
	center := &Person{
		ID:   "p9",
		Name: "Carol",
		Relationships: []Relation{
			{RelatedPersonID: "p2", Type: parent, RelatedPerson: &Person{ID: "p2", Name: "Dan"}},
		},
	}

	g := Build(center, viewerID, nil)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, "p2", g.Edges[0].Source)
	assert.Equal(t, "p9", g.Edges[0].Target)
	assert.Equal(t, "Child", g.Edges[0].Type)
}

func TestBuild_UnswappedDirectionUsesOwnLabel(t *testing.T) {
	parent, _ := parentChild()
	center := &Person{
		ID:   "p1",
		Name: "Carol",
		Relationships: []Relation{
			{RelatedPersonID: "p2", Type: parent, RelatedPerson: &Person{ID: "p2", Name: "Dan"}},
		},
	}

	g := Build(center, viewerID, nil)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, "p1", g.Edges[0].Source)
	assert.Equal(t, "Parent", g.Edges[0].Type)
}

func TestBuild_SwappedWithoutInverseIsUnknown(t *testing.T) {
	noInverse := &reltype.Type{Name: "PARENT", Label: "Parent", Color: "#F59E0B"}
	center := &Person{
		ID:   "p9",
		Name: "Carol",
		Relationships: []Relation{
			{RelatedPersonID: "p2", Type: noInverse, RelatedPerson: &Person{ID: "p2", Name: "Dan"}},
		},
	}

	g := Build(center, viewerID, nil)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, "Unknown", g.Edges[0].Type)
	assert.Equal(t, "#F59E0B", g.Edges[0].Color)
}

func TestBuild_MissingTypeIsUnknown(t *testing.T) {
	center := &Person{
		ID:   "p1",
		Name: "Alice",
		Relationships: []Relation{
			{RelatedPersonID: "p2", RelatedPerson: &Person{ID: "p2", Name: "Bob"}},
		},
	}

	g := Build(center, viewerID, nil)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, "Unknown", g.Edges[0].Type)
	assert.Equal(t, "#999999", g.Edges[0].Color)
}

func TestBuild_SecondHopConnectsExistingNodesOnly(t *testing.T) {
	friend := symmetricType("FRIEND", "Friend", "#3B82F6")
	colleague := symmetricType("COLLEAGUE", "Colleague", "#10B981")

	bob := &Person{
		ID:   "p2",
		Name: "Bob",
		Relationships: []Relation{
			// p3 is also a direct relation of the center: edge expected
			{RelatedPersonID: "p3", Type: colleague},
			// p4 is a stranger to the center: no node, no edge
			{RelatedPersonID: "p4", Type: colleague},
		},
	}
	carol := &Person{ID: "p3", Name: "Carol"}
	center := &Person{
		ID:   "p1",
		Name: "Alice",
		Relationships: []Relation{
			{RelatedPersonID: "p2", Type: friend, RelatedPerson: bob},
			{RelatedPersonID: "p3", Type: friend, RelatedPerson: carol},
		},
	}

	g := Build(center, viewerID, nil)

	assert.ElementsMatch(t, []string{"p1", "user-owner-1", "p2", "p3"}, nodeIDs(g))

	var secondHop *Edge
	for i := range g.Edges {
		if g.Edges[i].Source == "p2" && g.Edges[i].Target == "p3" {
			secondHop = &g.Edges[i]
		}
		assert.NotEqual(t, "p4", g.Edges[i].Source)
		assert.NotEqual(t, "p4", g.Edges[i].Target)
	}
	require.NotNil(t, secondHop, "edge between two direct relations expected")
	assert.Equal(t, "Colleague", secondHop.Type)
}

func TestBuild_NoOrphanEdges(t *testing.T) {
	friend := symmetricType("FRIEND", "Friend", "#3B82F6")
	bob := &Person{
		ID:                  "p2",
		Name:                "Bob",
		RelationshipToOwner: &reltype.Type{Label: "Colleague"},
		Relationships: []Relation{
			{RelatedPersonID: "p1", Type: friend},
		},
	}
	center := &Person{
		ID:                  "p1",
		Name:                "Alice",
		RelationshipToOwner: &reltype.Type{Label: "Friend"},
		Relationships: []Relation{
			{RelatedPersonID: "p2", Type: friend, RelatedPerson: bob},
		},
	}

	g := Build(center, viewerID, nil)

	present := make(map[string]bool)
	for _, id := range nodeIDs(g) {
		present[id] = true
	}
	for _, e := range g.Edges {
		assert.True(t, present[e.Source], "edge source %s missing from nodes", e.Source)
		assert.True(t, present[e.Target], "edge target %s missing from nodes", e.Target)
	}
}

func TestBuild_ViewerEdgeForRelatedPerson(t *testing.T) {
	friend := symmetricType("FRIEND", "Friend", "#3B82F6")
	bob := &Person{
		ID:                  "p2",
		Name:                "Bob",
		RelationshipToOwner: &reltype.Type{Label: "Cousin", Color: "#0EA5E9"},
	}
	center := &Person{
		ID:   "p1",
		Name: "Alice",
		Relationships: []Relation{
			{RelatedPersonID: "p2", Type: friend, RelatedPerson: bob},
		},
	}

	g := Build(center, viewerID, nil)

	var viewerEdge *Edge
	for i := range g.Edges {
		if g.Edges[i].Target == "user-owner-1" {
			viewerEdge = &g.Edges[i]
		}
	}
	require.NotNil(t, viewerEdge)
	assert.Equal(t, "p2", viewerEdge.Source)
	assert.Equal(t, "Cousin", viewerEdge.Type)
	assert.Equal(t, "#0EA5E9", viewerEdge.Color)
}

func TestBuild_TranslatesPristineDefaultLabels(t *testing.T) {
	parent, _ := parentChild()
	translate := func(key string) string {
		switch key {
		case "parent":
			return "Genitore"
		case "friend":
			return "Amico"
		}
		return key
	}
	center := &Person{
		ID:                  "p1",
		Name:                "Alice",
		RelationshipToOwner: &reltype.Type{Name: "FRIEND", Label: "Friend"},
		Relationships: []Relation{
			{RelatedPersonID: "p2", Type: parent, RelatedPerson: &Person{ID: "p2", Name: "Bob"}},
		},
	}

	g := Build(center, viewerID, translate)

	require.Len(t, g.Edges, 2)
	assert.Equal(t, "Amico", g.Edges[0].Type)
	assert.Equal(t, "Genitore", g.Edges[1].Type)
}

func TestBuild_CustomizedLabelSurvivesTranslation(t *testing.T) {
	papa := symmetricType("PARENT", "Papa", "#F59E0B")
	translate := func(string) string { return "Padre" }
	center := &Person{
		ID:   "p1",
		Name: "Alice",
		Relationships: []Relation{
			{RelatedPersonID: "p2", Type: papa, RelatedPerson: &Person{ID: "p2", Name: "Bob"}},
		},
	}

	g := Build(center, viewerID, translate)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, "Papa", g.Edges[0].Type)
}

func TestBuild_FirstSeenWinsForConflictingRecords(t *testing.T) {
	colleague := symmetricType("COLLEAGUE", "Colleague", "#10B981")
	friend := symmetricType("FRIEND", "Friend", "#3B82F6")
	bob := &Person{
		ID:   "p2",
		Name: "Bob",
		Relationships: []Relation{
			{RelatedPersonID: "p1", Type: friend},
		},
	}
	center := &Person{
		ID:   "p1",
		Name: "Alice",
		Relationships: []Relation{
			{RelatedPersonID: "p2", Type: colleague, RelatedPerson: bob},
		},
	}

	g := Build(center, viewerID, nil)

	require.Len(t, g.Edges, 1)
	assert.Equal(t, "Colleague", g.Edges[0].Type)
}

func TestBuild_InsertionOrderIsStable(t *testing.T) {
	friend := symmetricType("FRIEND", "Friend", "#3B82F6")
	center := &Person{
		ID:   "p1",
		Name: "Alice",
		Relationships: []Relation{
			{RelatedPersonID: "p3", Type: friend, RelatedPerson: &Person{ID: "p3", Name: "Carol"}},
			{RelatedPersonID: "p2", Type: friend, RelatedPerson: &Person{ID: "p2", Name: "Bob"}},
		},
	}

	g := Build(center, viewerID, nil)

	assert.Equal(t, []string{"p1", "user-owner-1", "p3", "p2"}, nodeIDs(g))
}
