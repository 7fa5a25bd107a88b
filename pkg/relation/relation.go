// Package relation builds the bipartite architect↔building graph from flat
// relation records.
//
// The input is a finite sequence of [Record] values, each naming a subject
// (an architect) and an object (a building) by stable id plus display label.
// [Build] converts the sequence into a [Graph]: one [Node] per distinct id,
// one [Edge] per record, in input order.
//
// # Invariants
//
// Every edge references node ids that exist in the graph; node creation
// happens before or at edge creation, never after. Node ids are unique: the
// second occurrence of an id resolves to the existing node. A node's
// NeighborLabels has exactly one entry per incident edge, in record order.
//
// Build is deterministic: the same input sequence yields the same node order
// (first appearance) and the same NeighborLabels order (record order).
//
// # Errors
//
// A record missing any of its four fields fails the entire build with a
// MALFORMED_RECORD error. No partial graph is returned; a half-built graph
// would break the edge-validity invariant for everything downstream.
package relation

import (
	"github.com/mlindqvist/arkigraf/pkg/errors"
)

// Node categories. The graph is bipartite: subjects are architects, objects
// are buildings.
const (
	CategoryArchitect = "architect"
	CategoryBuilding  = "building"
)

// Record is one raw relation from the data source: an architect (subject)
// linked to a building (object). All four fields are required.
type Record struct {
	Subject      string `json:"subject"`
	SubjectLabel string `json:"subjectLabel"`
	Object       string `json:"object"`
	ObjectLabel  string `json:"objectLabel"`
}

// Node is a graph vertex: an architect or a building.
//
// NeighborLabels records the display name of every relation partner, in
// record-encounter order. Duplicates are kept when the same pair recurs in
// the source data, so len(NeighborLabels) always equals the node's degree.
type Node struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	NeighborLabels []string `json:"neighborLabels,omitempty"`
}

// Degree returns the number of edges incident to the node.
func (n *Node) Degree() int { return len(n.NeighborLabels) }

// Edge links an architect to a building. One edge per input record; parallel
// edges are kept because multiplicity carries meaning for connection counts.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the deduplicated node set plus the full edge list.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []Edge  `json:"edges"`

	byID map[string]*Node
}

// Build converts raw relation records into a graph.
//
// For each record, in input order: resolve or create the subject node,
// resolve or create the object node, append one edge, then cross-append the
// partner labels. Any record missing a field aborts the whole build.
func Build(records []Record) (*Graph, error) {
	g := &Graph{byID: make(map[string]*Node)}

	for i, r := range records {
		if r.Subject == "" || r.SubjectLabel == "" || r.Object == "" || r.ObjectLabel == "" {
			return nil, errors.New(errors.ErrCodeMalformedRecord,
				"record %d: all of subject, subjectLabel, object, objectLabel are required", i)
		}

		subject := g.resolve(r.Subject, r.SubjectLabel, CategoryArchitect)
		object := g.resolve(r.Object, r.ObjectLabel, CategoryBuilding)

		g.Edges = append(g.Edges, Edge{Source: subject.ID, Target: object.ID})
		subject.NeighborLabels = append(subject.NeighborLabels, object.Name)
		object.NeighborLabels = append(object.NeighborLabels, subject.Name)
	}

	return g, nil
}

// resolve returns the node for id, creating it on first appearance.
// Re-encountering an id is idempotent; the first record's label wins.
func (g *Graph) resolve(id, name, category string) *Node {
	if n, ok := g.byID[id]; ok {
		return n
	}
	n := &Node{ID: id, Name: name, Category: category}
	g.byID[id] = n
	g.Nodes = append(g.Nodes, n)
	return n
}

// Node returns the node with the given id, or nil if unknown.
func (g *Graph) Node(id string) *Node {
	return g.byID[id]
}

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges (equal to the record count).
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Incident returns the indices of all edges touching the given node id,
// in edge order.
func (g *Graph) Incident(id string) []int {
	var out []int
	for i, e := range g.Edges {
		if e.Source == id || e.Target == id {
			out = append(out, i)
		}
	}
	return out
}

// Adjacent returns the set of node ids reachable over one edge from id,
// including id itself. This is the induced neighborhood used for
// focus highlighting.
func (g *Graph) Adjacent(id string) map[string]bool {
	out := map[string]bool{id: true}
	for _, e := range g.Edges {
		switch id {
		case e.Source:
			out[e.Target] = true
		case e.Target:
			out[e.Source] = true
		}
	}
	return out
}

// reindex rebuilds the id lookup after deserialization.
func (g *Graph) reindex() {
	g.byID = make(map[string]*Node, len(g.Nodes))
	for _, n := range g.Nodes {
		g.byID[n.ID] = n
	}
}
