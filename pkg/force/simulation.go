package force

import (
	"math"
	"math/rand"

	"github.com/mlindqvist/arkigraf/pkg/relation"
)

// Simulation defaults. Distances are in world units (the same space the
// renderer projects from).
const (
	DefaultLinkDistance   = 100.0
	DefaultRepulsion      = -200.0
	DefaultCollideRadius  = 25.0
	DefaultCenterStrength = 1.0
	DefaultVelocityDecay  = 0.4
	DefaultAlphaMin       = 0.001
	DefaultReheatAlpha    = 0.3
	DefaultSeed           = 42

	// initialRadius scales the phyllotaxis spiral used for first placement.
	initialRadius = 10.0
	// theta2 is the Barnes-Hut accuracy threshold (theta = 0.9, squared).
	theta2 = 0.81
)

// Body is the per-node mutable simulation state. Positions and velocities
// are written exclusively by the simulation; FixedX/FixedY are written only
// by the interaction layer through Pin and Unpin.
type Body struct {
	ID     string
	X, Y   float64
	VX, VY float64

	// FixedX/FixedY, when non-nil, override the integrated position until
	// released. The integrator never sets these itself.
	FixedX, FixedY *float64

	radius float64
}

// Pinned reports whether the body's position is currently overridden.
func (b *Body) Pinned() bool { return b.FixedX != nil && b.FixedY != nil }

// link is a resolved edge: position references to both endpoints plus the
// degree-derived strength parameters, resolved once at construction.
type link struct {
	source, target *Body
	strength       float64
	bias           float64
}

// Options configures the simulation forces and integrator.
type Options struct {
	LinkDistance   float64 // target edge separation
	Repulsion      float64 // many-body strength (negative repels)
	CollideRadius  float64 // disc radius for overlap resolution
	CenterStrength float64 // centroid pull toward the center point
	VelocityDecay  float64 // per-tick velocity damping in [0,1)
	AlphaMin       float64 // settle threshold
	ReheatAlpha    float64 // alpha restored on perturbation
	Width, Height  float64 // viewport extent; the center target is the midpoint
	Seed           int64   // jiggle seed for coincident points
}

// DefaultOptions returns the standard simulation parameters for the given
// viewport extent.
func DefaultOptions(width, height float64) Options {
	return Options{
		LinkDistance:   DefaultLinkDistance,
		Repulsion:      DefaultRepulsion,
		CollideRadius:  DefaultCollideRadius,
		CenterStrength: DefaultCenterStrength,
		VelocityDecay:  DefaultVelocityDecay,
		AlphaMin:       DefaultAlphaMin,
		ReheatAlpha:    DefaultReheatAlpha,
		Width:          width,
		Height:         height,
		Seed:           DefaultSeed,
	}
}

// Simulation is a continuous force-directed integration process over a fixed
// node set. It is not safe for concurrent use; drive it from one loop.
type Simulation struct {
	bodies []*Body
	byID   map[string]*Body
	links  []link

	opts             Options
	centerX, centerY float64

	alpha      float64
	alphaDecay float64
	rng        *rand.Rand
}

// New builds a simulation over the graph's nodes and edges. Initial positions
// follow a deterministic phyllotaxis spiral around the center so the same
// graph and seed always produce the same layout.
func New(g *relation.Graph, opts Options) *Simulation {
	s := &Simulation{
		byID:    make(map[string]*Body, g.NodeCount()),
		opts:    opts,
		centerX: opts.Width / 2,
		centerY: opts.Height / 2,
		alpha:   1,
		// Reaches AlphaMin after ~300 ticks, the usual cooling schedule.
		alphaDecay: 1 - math.Pow(opts.AlphaMin, 1.0/300),
		rng:        rand.New(rand.NewSource(opts.Seed)),
	}

	goldenAngle := math.Pi * (3 - math.Sqrt(5))
	for i, n := range g.Nodes {
		r := initialRadius * math.Sqrt(0.5+float64(i))
		a := float64(i) * goldenAngle
		b := &Body{
			ID:     n.ID,
			X:      s.centerX + r*math.Cos(a),
			Y:      s.centerY + r*math.Sin(a),
			radius: opts.CollideRadius,
		}
		s.bodies = append(s.bodies, b)
		s.byID[n.ID] = b
	}

	for _, e := range g.Edges {
		src, tgt := s.byID[e.Source], s.byID[e.Target]
		cs := float64(g.Node(e.Source).Degree())
		ct := float64(g.Node(e.Target).Degree())
		s.links = append(s.links, link{
			source:   src,
			target:   tgt,
			strength: 1 / math.Min(cs, ct),
			bias:     cs / (cs + ct),
		})
	}

	return s
}

// Bodies returns the live per-node state, in graph node order. Callers may
// read positions at any time between ticks; only the interaction layer may
// touch the Fixed fields, and only via Pin/Unpin.
func (s *Simulation) Bodies() []*Body { return s.bodies }

// Body returns the state for a node id, or nil if unknown.
func (s *Simulation) Body(id string) *Body { return s.byID[id] }

// Alpha returns the current simulation temperature.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Settled reports whether alpha has cooled below the settle threshold.
// A settled simulation may stop ticking until perturbed.
func (s *Simulation) Settled() bool { return s.alpha < s.opts.AlphaMin }

// Reheat resets alpha so the simulation resumes resolving constraints.
// Call after a pin, unpin, or viewport resize.
func (s *Simulation) Reheat() {
	if s.alpha < s.opts.ReheatAlpha {
		s.alpha = s.opts.ReheatAlpha
	}
}

// Stop forces the simulation cold, for view teardown.
func (s *Simulation) Stop() { s.alpha = 0 }

// SetCenter moves the centering force's target point, typically after a
// viewport resize. The caller is responsible for reheating.
func (s *Simulation) SetCenter(x, y float64) {
	s.centerX, s.centerY = x, y
}

// Center returns the centering force's current target point.
func (s *Simulation) Center() (x, y float64) { return s.centerX, s.centerY }

// Pin fixes a node's position for subsequent ticks. Pinning an unknown id is
// a no-op: stale drag targets are harmless.
func (s *Simulation) Pin(id string, x, y float64) {
	b := s.byID[id]
	if b == nil {
		return
	}
	fx, fy := x, y
	b.FixedX, b.FixedY = &fx, &fy
	b.VX, b.VY = 0, 0
}

// Unpin releases a node back to free integration.
func (s *Simulation) Unpin(id string) {
	b := s.byID[id]
	if b == nil {
		return
	}
	b.FixedX, b.FixedY = nil, nil
}

// Tick advances all node positions by one integration step and decays alpha.
// Ticking a settled simulation is a no-op.
func (s *Simulation) Tick() {
	if s.Settled() {
		return
	}

	s.alpha += (0 - s.alpha) * s.alphaDecay

	s.applyLinks()
	s.applyManyBody()
	s.applyCollide()
	s.applyCenter()

	damping := 1 - s.opts.VelocityDecay
	for _, b := range s.bodies {
		if b.Pinned() {
			b.X, b.Y = *b.FixedX, *b.FixedY
			b.VX, b.VY = 0, 0
			continue
		}
		b.VX *= damping
		b.VY *= damping
		b.X += b.VX
		b.Y += b.VY
	}
}

// jiggle breaks ties between coincident points with a tiny seeded offset.
func (s *Simulation) jiggle() float64 {
	return (s.rng.Float64() - 0.5) * 1e-6
}
