package force

import "math"

// quadtree is the Barnes-Hut spatial partition used by the many-body force.
// Far-away clusters of nodes are approximated by their aggregate charge at
// the charge-weighted centroid, turning the quadratic pairwise pass into an
// O(n log n) traversal.
type quadtree struct {
	root           *quad
	x0, y0, x1, y1 float64
	strength       float64 // per-body charge (negative repels)
}

// quad is one square cell. Internal cells carry aggregates; leaves carry the
// occupying bodies (more than one only when positions coincide exactly).
type quad struct {
	kids         [4]*quad
	bodies       []*Body
	cx, cy       float64 // charge-weighted centroid
	charge       float64 // aggregate charge
	internalNode bool
}

// buildQuadtree partitions the bodies into a square quadtree and computes
// aggregate charges bottom-up.
func buildQuadtree(bodies []*Body, strength float64) *quadtree {
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, b := range bodies {
		x0 = math.Min(x0, b.X)
		y0 = math.Min(y0, b.Y)
		x1 = math.Max(x1, b.X)
		y1 = math.Max(y1, b.Y)
	}

	// Square extent, padded so boundary points insert cleanly.
	side := math.Max(x1-x0, y1-y0) + 1
	t := &quadtree{x0: x0, y0: y0, x1: x0 + side, y1: y0 + side, strength: strength}

	for _, b := range bodies {
		t.root = insert(t.root, b, t.x0, t.y0, t.x1, t.y1)
	}
	aggregate(t.root, strength)
	return t
}

func insert(q *quad, b *Body, x0, y0, x1, y1 float64) *quad {
	if q == nil {
		return &quad{bodies: []*Body{b}}
	}

	if !q.internalNode {
		old := q.bodies[0]
		if old.X == b.X && old.Y == b.Y {
			q.bodies = append(q.bodies, b)
			return q
		}
		// Split the leaf and reinsert its occupants.
		occupants := q.bodies
		q.bodies = nil
		q.internalNode = true
		for _, o := range occupants {
			insertChild(q, o, x0, y0, x1, y1)
		}
	}
	insertChild(q, b, x0, y0, x1, y1)
	return q
}

func insertChild(q *quad, b *Body, x0, y0, x1, y1 float64) {
	mx, my := (x0+x1)/2, (y0+y1)/2
	i := 0
	if b.X >= mx {
		i |= 1
		x0 = mx
	} else {
		x1 = mx
	}
	if b.Y >= my {
		i |= 2
		y0 = my
	} else {
		y1 = my
	}
	q.kids[i] = insert(q.kids[i], b, x0, y0, x1, y1)
}

func aggregate(q *quad, strength float64) {
	if q == nil {
		return
	}

	if !q.internalNode {
		q.charge = strength * float64(len(q.bodies))
		q.cx, q.cy = q.bodies[0].X, q.bodies[0].Y
		return
	}

	var wx, wy float64
	for _, k := range q.kids {
		if k == nil {
			continue
		}
		aggregate(k, strength)
		q.charge += k.charge
		wx += k.charge * k.cx
		wy += k.charge * k.cy
	}
	q.cx = wx / q.charge
	q.cy = wy / q.charge
}

// accumulate adds the many-body contribution of the whole tree to b's
// velocity. Cells far enough away (width² / θ² < distance²) are applied as a
// single aggregate charge.
func (t *quadtree) accumulate(b *Body, alpha float64, jiggle func() float64) {
	t.visit(t.root, b, t.x1-t.x0, alpha, jiggle)
}

func (t *quadtree) visit(q *quad, b *Body, width, alpha float64, jiggle func() float64) {
	if q == nil || q.charge == 0 {
		return
	}

	dx, dy := q.cx-b.X, q.cy-b.Y
	l := dx*dx + dy*dy

	if width*width/theta2 < l {
		applyCharge(b, dx, dy, l, q.charge*alpha, jiggle)
		return
	}

	if q.internalNode {
		for _, k := range q.kids {
			t.visit(k, b, width/2, alpha, jiggle)
		}
		return
	}

	for _, o := range q.bodies {
		if o == b {
			continue
		}
		applyCharge(b, o.X-b.X, o.Y-b.Y, l, t.strength*alpha, jiggle)
	}
}

func applyCharge(b *Body, dx, dy, l, charge float64, jiggle func() float64) {
	if dx == 0 && dy == 0 {
		dx, dy = jiggle(), jiggle()
		l = dx*dx + dy*dy
	}
	// Clamp very short distances so near-coincident nodes do not explode.
	if l < 1 {
		l = math.Sqrt(l)
	}
	f := charge / l
	b.VX += dx * f
	b.VY += dy * f
}
