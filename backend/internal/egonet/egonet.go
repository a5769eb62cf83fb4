// Package egonet assembles the visualization graph for one person's ego
// network: the person, the viewing user, everyone directly related to the
// person, and every relationship among those nodes, deduplicated into
// undirected edges.
//
// Relationship records are directional for storage convenience (a PARENT
// record may be stored once, from the child's side), but the visualization is
// undirected. Each unordered pair is keyed by lexicographic id order so it
// yields exactly one edge no matter which side a record was stored from, and
// a record whose origin ends up on the target side of the canonical edge is
// re-worded through its type's inverse.
//
// The assembly is pure: it reads an already-materialized snapshot, performs
// no I/O, and shares no state between invocations.
package egonet

import (
	"strings"

	"github.com/daddyparodz/nametag/backend/internal/constants"
	"github.com/daddyparodz/nametag/backend/internal/reltype"
)

// Group is the slice of a group a node displays: name plus badge color.
type Group struct {
	Name  string
	Color string
}

// Relation is one directed relationship record as seen from its origin
// person. RelatedPerson is populated for the center person's direct
// relations and nil on the second hop.
type Relation struct {
	RelatedPersonID string
	Type            *reltype.Type
	RelatedPerson   *Person
}

// Person is the eagerly-fetched snapshot the assembler consumes. Soft-deleted
// people, groups and types must already be excluded by the data layer; the
// assembler treats its input as live data.
type Person struct {
	ID                  string
	Name                string
	Nickname            string
	Surname             string
	Groups              []Group
	RelationshipToOwner *reltype.Type
	Relationships       []Relation
}

// Node is one graph node, ready for JSON serialization.
type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Groups   []string `json:"groups"`
	Colors   []string `json:"colors"`
	IsCenter bool     `json:"isCenter"`
}

// Edge is one canonical undirected edge. Source and Target are ordered
// lexicographically; Type carries the resolved display label.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
	Color  string `json:"color"`
}

// Graph is the assembled ego network.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Build assembles the ego network for center, viewed by the user identified
// by viewerID. translate localizes pristine default type labels and may be
// nil.
func Build(center *Person, viewerID string, translate reltype.TranslateFunc) *Graph {
	b := &builder{
		translate: translate,
		nodeIDs:   make(map[string]bool),
		edgeKeys:  make(map[string]bool),
	}

	// Center node and the synthetic viewer node
	b.addNode(Node{
		ID:       center.ID,
		Label:    displayName(center),
		Groups:   groupNames(center.Groups),
		Colors:   groupColors(center.Groups),
		IsCenter: true,
	})
	viewerNodeID := constants.ViewerNodePrefix + viewerID
	b.addNode(Node{
		ID:     viewerNodeID,
		Label:  "You",
		Groups: []string{},
		Colors: []string{},
	})

	if center.RelationshipToOwner != nil {
		b.addViewerEdge(center.ID, viewerNodeID, center.RelationshipToOwner)
	}

	// Related people become nodes; their own relation to the viewer becomes
	// an edge the first time the node is seen.
	for _, rel := range center.Relationships {
		if rel.RelatedPerson == nil || b.nodeIDs[rel.RelatedPersonID] {
			continue
		}
		b.addNode(Node{
			ID:     rel.RelatedPersonID,
			Label:  displayName(rel.RelatedPerson),
			Groups: groupNames(rel.RelatedPerson.Groups),
			Colors: groupColors(rel.RelatedPerson.Groups),
		})
		if rel.RelatedPerson.RelationshipToOwner != nil {
			b.addViewerEdge(rel.RelatedPersonID, viewerNodeID, rel.RelatedPerson.RelationshipToOwner)
		}
	}

	// Edges from the center to its direct relations
	for _, rel := range center.Relationships {
		if b.nodeIDs[rel.RelatedPersonID] {
			b.addPairEdge(center.ID, rel.RelatedPersonID, rel.Type)
		}
	}

	// Second hop: relationships among already-discovered nodes. These never
	// introduce new nodes.
	for _, rel := range center.Relationships {
		if rel.RelatedPerson == nil {
			continue
		}
		for _, sub := range rel.RelatedPerson.Relationships {
			if b.nodeIDs[sub.RelatedPersonID] {
				b.addPairEdge(rel.RelatedPersonID, sub.RelatedPersonID, sub.Type)
			}
		}
	}

	return &Graph{Nodes: b.nodes, Edges: b.edges}
}

type builder struct {
	translate reltype.TranslateFunc
	nodes     []Node
	edges     []Edge
	nodeIDs   map[string]bool
	edgeKeys  map[string]bool
}

func (b *builder) addNode(n Node) {
	if b.nodeIDs[n.ID] {
		return
	}
	b.nodeIDs[n.ID] = true
	b.nodes = append(b.nodes, n)
}

// addViewerEdge emits a person-to-viewer edge. The stored relation is already
// in canonical person-to-viewer orientation, so no swap or inverse applies.
func (b *builder) addViewerEdge(personID, viewerNodeID string, t *reltype.Type) {
	key := personID + "-" + viewerNodeID
	if b.edgeKeys[key] {
		return
	}
	b.edgeKeys[key] = true

	color := t.Color
	if color == "" {
		color = constants.ViewerEdgeColor
	}
	b.edges = append(b.edges, Edge{
		Source: personID,
		Target: viewerNodeID,
		Type:   reltype.DisplayLabel(t, b.translate),
		Color:  color,
	})
}

// addPairEdge canonicalizes the directed record a->b and emits at most one
// edge per unordered pair per build. First seen wins; later records for the
// same pair are dropped.
func (b *builder) addPairEdge(a, c string, t *reltype.Type) {
	swapped := a > c
	source, target := a, c
	if swapped {
		source, target = c, a
	}
	key := source + "-" + target
	if b.edgeKeys[key] {
		return
	}
	b.edgeKeys[key] = true

	label := constants.UnknownRelationshipLabel
	color := constants.DefaultEdgeColor
	switch {
	case t == nil:
	case swapped && t.Inverse != nil:
		label = reltype.DisplayLabel(t.Inverse, b.translate)
		if t.Inverse.Color != "" {
			color = t.Inverse.Color
		}
	case swapped:
		// Record points the wrong way and its type has no inverse, so no
		// correct wording exists for this direction.
		if t.Color != "" {
			color = t.Color
		}
	default:
		label = reltype.DisplayLabel(t, b.translate)
		if t.Color != "" {
			color = t.Color
		}
	}

	b.edges = append(b.edges, Edge{Source: source, Target: target, Type: label, Color: color})
}

// displayName composes the node label from the person's name parts:
// given name, nickname in quotes when present, surname when present.
func displayName(p *Person) string {
	parts := make([]string, 0, 3)
	if p.Name != "" {
		parts = append(parts, p.Name)
	}
	if p.Nickname != "" {
		parts = append(parts, `"`+p.Nickname+`"`)
	}
	if p.Surname != "" {
		parts = append(parts, p.Surname)
	}
	return strings.Join(parts, " ")
}

func groupNames(groups []Group) []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names
}

func groupColors(groups []Group) []string {
	colors := make([]string, 0, len(groups))
	for _, g := range groups {
		color := g.Color
		if color == "" {
			color = constants.DefaultGroupColor
		}
		colors = append(colors, color)
	}
	return colors
}
