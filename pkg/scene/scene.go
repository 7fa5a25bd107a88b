// Package scene maintains the visual representation of the graph: one shape
// and label per node, one line per edge, keyed by stable identity so
// re-renders update existing primitives instead of recreating them.
//
// The scene is a passive model. [Scene.Sync] copies the latest simulation
// positions into the primitives on every tick; the interaction layer flips
// highlight, dim, and label flags; sinks (terminal view, SVG, DOT) read the
// primitives and draw.
package scene

import (
	"github.com/mlindqvist/arkigraf/pkg/force"
	"github.com/mlindqvist/arkigraf/pkg/relation"
)

// Shape radii per category. Purely cosmetic; the physics collision radius is
// owned by the simulation.
const (
	ArchitectRadius = 8.0
	BuildingRadius  = 7.0
)

// NodeShape is the visual primitive for one node: a disc plus a text label.
// Labels are hidden unless the node is focused.
type NodeShape struct {
	ID       string
	Label    string
	Category string
	Radius   float64

	X, Y float64

	Highlighted  bool
	Dimmed       bool
	LabelVisible bool
}

// EdgeLine is the visual primitive for one edge, keyed by edge index. The
// endpoint coordinates are re-resolved from node positions on every sync.
type EdgeLine struct {
	Index          int
	SourceID       string
	TargetID       string
	X1, Y1, X2, Y2 float64

	Highlighted bool
	Dimmed      bool
}

// Scene holds all primitives for a graph.
type Scene struct {
	nodes []*NodeShape
	edges []*EdgeLine
	byID  map[string]*NodeShape
}

// New creates the primitives for a graph, one per node and per edge. They
// live for the rest of the run; later syncs and highlights mutate them in
// place.
func New(g *relation.Graph) *Scene {
	s := &Scene{byID: make(map[string]*NodeShape, g.NodeCount())}

	for _, n := range g.Nodes {
		r := BuildingRadius
		if n.Category == relation.CategoryArchitect {
			r = ArchitectRadius
		}
		shape := &NodeShape{ID: n.ID, Label: n.Name, Category: n.Category, Radius: r}
		s.nodes = append(s.nodes, shape)
		s.byID[n.ID] = shape
	}

	for i, e := range g.Edges {
		s.edges = append(s.edges, &EdgeLine{Index: i, SourceID: e.Source, TargetID: e.Target})
	}

	return s
}

// Nodes returns all node primitives in graph order.
func (s *Scene) Nodes() []*NodeShape { return s.nodes }

// Edges returns all edge primitives in edge order.
func (s *Scene) Edges() []*EdgeLine { return s.edges }

// Node returns the primitive for a node id, or nil if unknown.
func (s *Scene) Node(id string) *NodeShape { return s.byID[id] }

// Sync repositions every primitive to the simulation's latest coordinates.
// Called once per tick.
func (s *Scene) Sync(sim *force.Simulation) {
	for _, b := range sim.Bodies() {
		if shape := s.byID[b.ID]; shape != nil {
			shape.X, shape.Y = b.X, b.Y
		}
	}
	for _, e := range s.edges {
		if src := s.byID[e.SourceID]; src != nil {
			e.X1, e.Y1 = src.X, src.Y
		}
		if tgt := s.byID[e.TargetID]; tgt != nil {
			e.X2, e.Y2 = tgt.X, tgt.Y
		}
	}
}

// SyncLayout positions primitives from a precomputed layout snapshot, for
// static rendering without a live simulation.
func (s *Scene) SyncLayout(l force.Layout) {
	for _, p := range l.Positions {
		if shape := s.byID[p.ID]; shape != nil {
			shape.X, shape.Y = p.X, p.Y
		}
	}
	for _, e := range s.edges {
		if src := s.byID[e.SourceID]; src != nil {
			e.X1, e.Y1 = src.X, src.Y
		}
		if tgt := s.byID[e.TargetID]; tgt != nil {
			e.X2, e.Y2 = tgt.X, tgt.Y
		}
	}
}

// Highlight marks the induced neighborhood of a focused node: nodes and
// edges in the adjacency sets are highlighted, everything else is dimmed,
// and the focused node's label becomes visible. Any prior highlight state is
// replaced wholesale.
func (s *Scene) Highlight(focusID string, adjacentNodes map[string]bool, adjacentEdges map[int]bool) {
	for _, n := range s.nodes {
		n.Highlighted = adjacentNodes[n.ID] && n.ID != focusID
		n.Dimmed = !adjacentNodes[n.ID]
		n.LabelVisible = n.ID == focusID
	}
	for _, e := range s.edges {
		e.Highlighted = adjacentEdges[e.Index]
		e.Dimmed = !adjacentEdges[e.Index]
	}
}

// ClearHighlight resets every highlight, dim, and label flag to the idle
// baseline.
func (s *Scene) ClearHighlight() {
	for _, n := range s.nodes {
		n.Highlighted = false
		n.Dimmed = false
		n.LabelVisible = false
	}
	for _, e := range s.edges {
		e.Highlighted = false
		e.Dimmed = false
	}
}
