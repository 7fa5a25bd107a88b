// Package interact implements the pointer interaction state machine for the
// graph view.
//
// The controller consumes explicit transition calls (Focus, Defocus,
// DragStart, DragMove, DragEnd) from whatever surface translates raw pointer
// events, and applies their side effects to the scene (highlight flags) and
// the simulation (pins, reheats). Modeling the transitions directly keeps
// their legality and side effects testable without a live drawing surface.
//
// States: IDLE, FOCUSED(node), DRAGGING(node). Only one node may be focused
// or dragged at a time; a new focus or drag implicitly ends the prior one
// (last writer wins, no queuing). Drag transitions never touch highlight
// state.
package interact

import (
	"github.com/mlindqvist/arkigraf/pkg/force"
	"github.com/mlindqvist/arkigraf/pkg/relation"
	"github.com/mlindqvist/arkigraf/pkg/scene"
)

// State is the interaction machine's current mode.
type State int

const (
	Idle State = iota
	Focused
	Dragging
)

func (s State) String() string {
	switch s {
	case Focused:
		return "FOCUSED"
	case Dragging:
		return "DRAGGING"
	default:
		return "IDLE"
	}
}

// Controller owns the interaction state and pushes its side effects into the
// scene and the simulation. Drive it from the same loop that ticks the
// simulation; it is not safe for concurrent use.
type Controller struct {
	graph *relation.Graph
	sim   *force.Simulation
	scene *scene.Scene

	state   State
	focusID string
	dragID  string
	panel   Panel
}

// New creates a controller in the IDLE state with the placeholder panel.
func New(g *relation.Graph, sim *force.Simulation, sc *scene.Scene) *Controller {
	return &Controller{graph: g, sim: sim, scene: sc, panel: HintPanel()}
}

// State returns the current machine state.
func (c *Controller) State() State { return c.state }

// FocusedID returns the focused node id, or "" outside FOCUSED.
func (c *Controller) FocusedID() string { return c.focusID }

// DraggingID returns the dragged node id, or "" outside DRAGGING.
func (c *Controller) DraggingID() string { return c.dragID }

// Panel returns the current side panel content.
func (c *Controller) Panel() Panel { return c.panel }

// Focus handles pointer-enter over a node: compute the induced neighborhood,
// highlight it, dim everything else, reveal the node's label, and publish
// the summary panel. A focus during an active drag is ignored; motion while
// dragging is a drag-move, not a hover.
func (c *Controller) Focus(id string) {
	if c.state == Dragging {
		return
	}
	n := c.graph.Node(id)
	if n == nil {
		return
	}

	adjacentNodes := c.graph.Adjacent(id)
	adjacentEdges := make(map[int]bool)
	for _, i := range c.graph.Incident(id) {
		adjacentEdges[i] = true
	}

	c.scene.Highlight(id, adjacentNodes, adjacentEdges)
	c.panel = DetailPanel(n)
	c.state = Focused
	c.focusID = id
}

// Defocus handles pointer-leave: clear every highlight and dim flag, hide
// all labels, and reset the panel to its placeholder.
func (c *Controller) Defocus() {
	if c.state != Focused {
		return
	}
	c.reset()
}

// DragStart pins the node at its current coordinates and reheats the
// simulation so the constraint gets resolved. Unknown ids are ignored.
func (c *Controller) DragStart(id string) {
	b := c.sim.Body(id)
	if b == nil {
		return
	}
	c.sim.Pin(id, b.X, b.Y)
	c.sim.Reheat()
	c.state = Dragging
	c.dragID = id
	// Focus is irrelevant during a drag; highlights stay as they are.
	c.focusID = ""
}

// DragMove updates the dragged node's pinned position to the pointer's
// current world coordinates. Re-pinning keeps the simulation hot so the rest
// of the layout follows the drag. No highlight side effects.
func (c *Controller) DragMove(x, y float64) {
	if c.state != Dragging {
		return
	}
	c.sim.Pin(c.dragID, x, y)
	c.sim.Reheat()
}

// DragEnd releases the node back to free integration and reheats so the
// layout resettles. The machine returns to IDLE; the surface re-issues a
// focus if the pointer is still over a node.
func (c *Controller) DragEnd() {
	if c.state != Dragging {
		return
	}
	c.sim.Unpin(c.dragID)
	c.sim.Reheat()
	c.reset()
}

// Abandon cancels any in-flight interaction at view teardown, releasing a
// held pin without other side effects.
func (c *Controller) Abandon() {
	if c.state == Dragging {
		c.sim.Unpin(c.dragID)
	}
	c.reset()
}

// reset restores the IDLE baseline: no highlights, no labels, hint panel.
func (c *Controller) reset() {
	c.scene.ClearHighlight()
	c.panel = HintPanel()
	c.state = Idle
	c.focusID = ""
	c.dragID = ""
}
