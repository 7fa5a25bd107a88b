package viewport

import (
	"math"
	"testing"
)

func TestResize(t *testing.T) {
	v := New(1000, 800)

	if v.Width != 1000-SidePanelWidth || v.Height != 800 {
		t.Errorf("canvas = %vx%v, want %vx800", v.Width, v.Height, 1000-SidePanelWidth)
	}

	cx, cy := v.Resize(1200, 800)
	if want := (1200 - SidePanelWidth) / 2; cx != want || cy != 400 {
		t.Errorf("center = (%v, %v), want (%v, 400)", cx, cy, want)
	}

	// Narrower than the side panel: canvas collapses instead of going negative.
	cx, _ = v.Resize(100, 800)
	if v.Width != 0 || cx != 0 {
		t.Errorf("canvas width = %v, want 0", v.Width)
	}
}

func TestZoomClamped(t *testing.T) {
	v := New(1000, 800)

	for i := 0; i < 100; i++ {
		v.Zoom(0.5, 0, 0)
	}
	if v.Scale() != MinScale {
		t.Errorf("scale = %v, want clamped to %v", v.Scale(), MinScale)
	}

	for i := 0; i < 100; i++ {
		v.Zoom(2, 0, 0)
	}
	if v.Scale() != MaxScale {
		t.Errorf("scale = %v, want clamped to %v", v.Scale(), MaxScale)
	}
}

func TestZoomAnchored(t *testing.T) {
	v := New(1000, 800)

	// The anchor's screen position must survive the zoom.
	beforeX, beforeY := v.Project(300, 200)
	v.Zoom(2, 300, 200)
	afterX, afterY := v.Project(300, 200)

	if math.Abs(beforeX-afterX) > 1e-9 || math.Abs(beforeY-afterY) > 1e-9 {
		t.Errorf("anchor moved from (%v, %v) to (%v, %v)", beforeX, beforeY, afterX, afterY)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	v := New(1000, 800)
	v.Zoom(1.7, 120, 90)
	v.Pan(33, -12)

	sx, sy := v.Project(250, 125)
	x, y := v.Unproject(sx, sy)
	if math.Abs(x-250) > 1e-9 || math.Abs(y-125) > 1e-9 {
		t.Errorf("round trip = (%v, %v), want (250, 125)", x, y)
	}
}

func TestPanDoesNotTouchScale(t *testing.T) {
	v := New(1000, 800)
	v.Pan(100, 50)
	if v.Scale() != 1 {
		t.Errorf("scale = %v after pan, want 1", v.Scale())
	}
}
