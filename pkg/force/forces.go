package force

import "math"

// applyLinks pulls each edge's endpoints toward the target separation.
// Strength scales inversely with the degree of the less-connected endpoint
// and the displacement is split by the bias ratio, so hub nodes move less
// than their leaves.
func (s *Simulation) applyLinks() {
	for _, l := range s.links {
		src, tgt := l.source, l.target

		x := tgt.X + tgt.VX - src.X - src.VX
		y := tgt.Y + tgt.VY - src.Y - src.VY
		if x == 0 && y == 0 {
			x, y = s.jiggle(), s.jiggle()
		}

		d := math.Sqrt(x*x + y*y)
		d = (d - s.opts.LinkDistance) / d * s.alpha * l.strength
		x *= d
		y *= d

		tgt.VX -= x * l.bias
		tgt.VY -= y * l.bias
		src.VX += x * (1 - l.bias)
		src.VY += y * (1 - l.bias)
	}
}

// applyManyBody repels all node pairs, approximated with a Barnes-Hut
// quadtree so the cost stays tractable at the expected node counts.
func (s *Simulation) applyManyBody() {
	if len(s.bodies) < 2 {
		return
	}

	qt := buildQuadtree(s.bodies, s.opts.Repulsion)
	for _, b := range s.bodies {
		qt.accumulate(b, s.alpha, s.jiggle)
	}
}

// applyCollide resolves overlaps between node discs. Pair count is small
// enough here that the direct pass beats maintaining a second tree.
func (s *Simulation) applyCollide() {
	for i, a := range s.bodies {
		for _, b := range s.bodies[i+1:] {
			r := a.radius + b.radius

			x := b.X + b.VX - a.X - a.VX
			y := b.Y + b.VY - a.Y - a.VY
			l := x*x + y*y
			if l >= r*r {
				continue
			}

			if x == 0 && y == 0 {
				x, y = s.jiggle(), s.jiggle()
				l = x*x + y*y
			}
			l = math.Sqrt(l)
			d := (r - l) / l

			// Split the correction by disc area so equal discs share it.
			ra, rb := a.radius*a.radius, b.radius*b.radius
			w := rb / (ra + rb)
			x *= d
			y *= d

			b.VX += x * w
			b.VY += y * w
			a.VX -= x * (1 - w)
			a.VY -= y * (1 - w)
		}
	}
}

// applyCenter translates the layout so its centroid drifts toward the
// viewport center. Operates on positions directly; pinned nodes get their
// override reapplied at integration.
func (s *Simulation) applyCenter() {
	if len(s.bodies) == 0 {
		return
	}

	var sx, sy float64
	for _, b := range s.bodies {
		sx += b.X
		sy += b.Y
	}
	n := float64(len(s.bodies))
	dx := (sx/n - s.centerX) * s.opts.CenterStrength
	dy := (sy/n - s.centerY) * s.opts.CenterStrength

	for _, b := range s.bodies {
		b.X -= dx
		b.Y -= dy
	}
}
