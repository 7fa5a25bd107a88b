// Package force implements the force-directed layout simulation for the
// architect↔building graph.
//
// The simulation owns one mutable [Body] per graph node (position, velocity,
// optional pinned coordinates) and advances them with discrete integration
// steps driven by four composable forces:
//
//   - link: pulls edge endpoints toward a target separation, with strength
//     normalized by endpoint degree so hubs do not over-constrain neighbors
//   - many-body: pairwise repulsion, approximated with a Barnes-Hut quadtree
//   - center: pulls the layout centroid toward the viewport center
//   - collide: resolves overlaps between fixed-radius discs
//
// Each [Simulation.Tick] advances all positions one step and decays the
// global temperature (alpha) toward zero. When alpha crosses the settle
// threshold the simulation is settled and callers may stop ticking until a
// perturbation. Pinning, unpinning, and viewport resizes must be followed by
// [Simulation.Reheat] so the new constraint is physically resolved.
//
// The integrator is pure with respect to the outside world: no goroutines,
// no timers, no rendering. Callers (the interactive view, the headless
// layout pipeline) drive ticks on their own schedule, which keeps tick and
// input handling on a single cooperative loop and makes the physics testable
// headless.
//
// Layouts are reproducible: initial placement is a deterministic phyllotaxis
// spiral and all tie-breaking jiggle comes from a seeded generator.
package force
