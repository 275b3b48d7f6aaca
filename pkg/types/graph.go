// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// NodeGroup distinguishes the queried paper from the papers it cites.
type NodeGroup string

const (
	GroupMain      NodeGroup = "main"
	GroupReference NodeGroup = "reference"
)

// GraphNode is one paper in a citation graph.
type GraphNode struct {
	// ID is the globally unique paper identifier (an OpenAlex work URI).
	ID string `json:"id"`

	// Label is "<first author's surname>, <year>".
	Label string `json:"label"`

	Title string    `json:"title"`
	Group NodeGroup `json:"group"`

	// Value is the citation weight, cited_by_count + 1.
	Value int `json:"value"`
}

// GraphEdge is a directed "cites" edge. Arrows is always "to", the form
// graph renderers expect for a directed edge.
type GraphEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Arrows string `json:"arrows"`
}

// CitationGraph is a one-hop star graph: one main node plus the reference
// nodes it cites. Every edge starts at the main node and ends at a node
// present in Nodes.
type CitationGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Main returns the main node, or false when the graph is empty.
func (g *CitationGraph) Main() (GraphNode, bool) {
	for _, n := range g.Nodes {
		if n.Group == GroupMain {
			return n, true
		}
	}
	return GraphNode{}, false
}

// HasNode reports whether a node with the given id is present.
func (g *CitationGraph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}
