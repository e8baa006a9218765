// Package elements builds the node and edge dataset handed to a chart
// renderer.
//
// Each person becomes exactly one [Node] carrying its display label and
// computed generation. Relationships become [Edge] values with one rule:
// a person is drawn with at most one incoming child edge and at most one
// incoming descent edge, taken from the first such link in input order.
// Marriage and sibling links are always drawn.
package elements

import (
	"fmt"

	"github.com/matzehuels/lineage/pkg/core/family"
	"github.com/matzehuels/lineage/pkg/core/family/generation"
)

// Node is the display element of one person.
type Node struct {
	ID           string      `json:"id" bson:"id"`
	Label        string      `json:"label" bson:"label"`
	Name         string      `json:"name" bson:"name"`
	Year         family.Year `json:"year" bson:"year"`
	Chapter      string      `json:"chapter,omitempty" bson:"chapter,omitempty"`
	Role         string      `json:"role,omitempty" bson:"role,omitempty"`
	Portrait     string      `json:"portrait,omitempty" bson:"portrait,omitempty"`
	Page         string      `json:"page,omitempty" bson:"page,omitempty"`
	LinkToFamily string      `json:"link_to_family,omitempty" bson:"link_to_family,omitempty"`
	Generation   int         `json:"generation" bson:"generation"`
}

// IsLinkNode reports whether the node references another family chart.
func (n Node) IsLinkNode() bool { return n.LinkToFamily != "" }

// Edge is the display element of one relationship.
type Edge struct {
	ID      string          `json:"id" bson:"id"`
	Source  string          `json:"source" bson:"source"`
	Target  string          `json:"target" bson:"target"`
	Type    family.LinkType `json:"type" bson:"type"`
	Label   string          `json:"label,omitempty" bson:"label,omitempty"`
	Adopted bool            `json:"adopted,omitempty" bson:"adopted,omitempty"`
}

// Elements is the complete dataset for one chart.
type Elements struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Build creates one node per person, in input order, and the deduplicated
// edge list. Ids are not validated: an edge to an unknown person is kept
// and simply has no node to attach to.
func Build(people []family.Person, idx *family.Index, res generation.Result) Elements {
	out := Elements{
		Nodes: make([]Node, 0, len(people)),
	}

	for _, p := range people {
		out.Nodes = append(out.Nodes, Node{
			ID:           p.ID,
			Label:        Label(p),
			Name:         p.Name,
			Year:         p.Year,
			Chapter:      p.Chapter,
			Role:         p.Role,
			Portrait:     p.Portrait,
			Page:         p.Page,
			LinkToFamily: p.LinkToFamily,
			Generation:   res.Of(p.ID),
		})
	}

	drawn := map[family.LinkType]map[string]bool{
		family.LinkChild:   {},
		family.LinkDescent: {},
	}
	for _, l := range idx.Links() {
		if seen, dedup := drawn[l.Type]; dedup {
			if seen[l.Target] {
				continue
			}
			seen[l.Target] = true
		}
		out.Edges = append(out.Edges, Edge{
			ID:      EdgeID(l),
			Source:  l.Source,
			Target:  l.Target,
			Type:    l.Type,
			Label:   l.Label,
			Adopted: l.Adopted,
		})
	}

	return out
}

// Label returns the display text of a person: the name alone for link nodes
// and for unknown years, otherwise the name and an approximate year on a
// second line.
func Label(p family.Person) string {
	if p.IsLinkNode() || p.Year.Text == "" {
		return p.Name
	}
	return fmt.Sprintf("%s\nc. %s", p.Name, p.Year.Text)
}

// EdgeID is the identity of a display edge: source, target and type.
func EdgeID(l family.Link) string {
	return fmt.Sprintf("%s-%s-%s", l.Source, l.Target, l.Type)
}

// NodeMap indexes nodes by id.
func NodeMap(nodes []Node) map[string]Node {
	m := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		m[n.ID] = n
	}
	return m
}
