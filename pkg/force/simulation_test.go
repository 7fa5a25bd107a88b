package force

import (
	"math"
	"testing"

	"github.com/mlindqvist/arkigraf/pkg/relation"
)

func testGraph(t *testing.T) *relation.Graph {
	t.Helper()
	g, err := relation.Build([]relation.Record{
		{Subject: "A", SubjectLabel: "Arkitekt A", Object: "B1", ObjectLabel: "Hus 1"},
		{Subject: "A", SubjectLabel: "Arkitekt A", Object: "B2", ObjectLabel: "Hus 2"},
		{Subject: "A2", SubjectLabel: "Arkitekt B", Object: "B2", ObjectLabel: "Hus 2"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func newTestSim(t *testing.T) *Simulation {
	t.Helper()
	return New(testGraph(t), DefaultOptions(1000, 800))
}

func TestNewSeedsDistinctPositions(t *testing.T) {
	s := newTestSim(t)

	seen := map[[2]float64]bool{}
	for _, b := range s.Bodies() {
		key := [2]float64{b.X, b.Y}
		if seen[key] {
			t.Errorf("body %s placed on top of another body", b.ID)
		}
		seen[key] = true
		if b.Pinned() {
			t.Errorf("body %s starts pinned", b.ID)
		}
	}
}

func TestTickDecaysAlpha(t *testing.T) {
	s := newTestSim(t)

	before := s.Alpha()
	s.Tick()
	if s.Alpha() >= before {
		t.Errorf("alpha = %v after tick, want < %v", s.Alpha(), before)
	}
}

func TestRunSettles(t *testing.T) {
	s := newTestSim(t)

	l := s.Run()
	if !s.Settled() {
		t.Fatalf("simulation not settled after %d ticks, alpha=%v", l.Ticks, s.Alpha())
	}
	if len(l.Positions) != 4 {
		t.Fatalf("positions = %d, want 4", len(l.Positions))
	}
	for _, p := range l.Positions {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Errorf("%s settled at non-finite position (%v, %v)", p.ID, p.X, p.Y)
		}
	}

	// Linked nodes should end up separated but within the same neighborhood.
	a, _ := l.Position("A")
	b1, _ := l.Position("B1")
	d := math.Hypot(a.X-b1.X, a.Y-b1.Y)
	if d < 2*DefaultCollideRadius/2 || d > 5*DefaultLinkDistance {
		t.Errorf("A–B1 distance = %v, want within force equilibrium range", d)
	}
}

func TestRunDeterministic(t *testing.T) {
	first := New(testGraph(t), DefaultOptions(1000, 800)).Run()
	second := New(testGraph(t), DefaultOptions(1000, 800)).Run()

	for i := range first.Positions {
		p, q := first.Positions[i], second.Positions[i]
		if p.ID != q.ID || p.X != q.X || p.Y != q.Y {
			t.Fatalf("layouts diverge at %d: %+v vs %+v", i, p, q)
		}
	}
}

func TestTickAfterSettleIsNoop(t *testing.T) {
	s := newTestSim(t)
	s.Run()

	before := s.Snapshot()
	s.Tick()
	after := s.Snapshot()

	for i := range before.Positions {
		if before.Positions[i] != after.Positions[i] {
			t.Fatal("settled simulation moved without a reheat")
		}
	}
}

func TestPinOverridesIntegration(t *testing.T) {
	s := newTestSim(t)

	s.Pin("A", 150, 250)
	s.Reheat()

	// The pinned override must be visible to the very next tick.
	s.Tick()
	b := s.Body("A")
	if b.X != 150 || b.Y != 250 {
		t.Errorf("pinned A at (%v, %v), want (150, 250)", b.X, b.Y)
	}

	// And hold while the simulation keeps running.
	for i := 0; i < 50; i++ {
		s.Tick()
	}
	if b.X != 150 || b.Y != 250 {
		t.Errorf("pin drifted to (%v, %v)", b.X, b.Y)
	}
	if b.VX != 0 || b.VY != 0 {
		t.Errorf("pinned body keeps velocity (%v, %v)", b.VX, b.VY)
	}
}

func TestUnpinReleasesNode(t *testing.T) {
	s := newTestSim(t)

	s.Pin("A", 0, 0)
	s.Reheat()
	for i := 0; i < 10; i++ {
		s.Tick()
	}

	s.Unpin("A")
	s.Reheat()

	b := s.Body("A")
	if b.Pinned() || b.FixedX != nil || b.FixedY != nil {
		t.Fatal("fixed coordinates should be absent after release")
	}

	// Free integration resumes: the repulsion and centering forces pull the
	// node away from the corner it was pinned in.
	for i := 0; i < 50; i++ {
		s.Tick()
	}
	if b.X == 0 && b.Y == 0 {
		t.Error("node did not move after release")
	}
}

func TestPinUnknownIDIsNoop(t *testing.T) {
	s := newTestSim(t)

	s.Pin("nope", 1, 2)
	s.Unpin("nope")

	for _, b := range s.Bodies() {
		if b.Pinned() {
			t.Errorf("body %s pinned by stale target", b.ID)
		}
	}
}

func TestReheatRaisesAlpha(t *testing.T) {
	s := newTestSim(t)
	s.Run()

	if !s.Settled() {
		t.Fatal("expected settled simulation")
	}
	s.Reheat()
	if s.Settled() {
		t.Error("reheat should raise alpha above the settle threshold")
	}
	if got := s.Alpha(); got != DefaultReheatAlpha {
		t.Errorf("alpha = %v, want %v", got, DefaultReheatAlpha)
	}

	// Reheat never cools a hotter simulation.
	s2 := newTestSim(t)
	s2.Reheat()
	if s2.Alpha() != 1 {
		t.Errorf("alpha = %v, want 1 (reheat must not lower alpha)", s2.Alpha())
	}
}

func TestStop(t *testing.T) {
	s := newTestSim(t)
	s.Stop()

	if !s.Settled() {
		t.Error("stopped simulation should report settled")
	}
	before := s.Snapshot()
	s.Tick()
	after := s.Snapshot()
	for i := range before.Positions {
		if before.Positions[i] != after.Positions[i] {
			t.Fatal("stopped simulation still integrates")
		}
	}
}

func TestSetCenterShiftsLayout(t *testing.T) {
	s := New(testGraph(t), DefaultOptions(1000, 800))
	s.Run()

	// Resize 1000×800 → 1200×800: center target moves to the new midpoint
	// and the reheat resumes ticking.
	s.SetCenter(600, 400)
	s.Reheat()
	if s.Settled() {
		t.Fatal("resize must reheat the simulation")
	}
	if x, y := s.Center(); x != 600 || y != 400 {
		t.Fatalf("center = (%v, %v), want (600, 400)", x, y)
	}
	s.Run()

	var sx, sy float64
	for _, b := range s.Bodies() {
		sx += b.X
		sy += b.Y
	}
	n := float64(len(s.Bodies()))
	if math.Abs(sx/n-600) > 1 || math.Abs(sy/n-400) > 1 {
		t.Errorf("centroid = (%v, %v), want near (600, 400)", sx/n, sy/n)
	}
}
