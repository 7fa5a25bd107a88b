// Package viewport owns the canvas size and the pan/zoom transform applied
// to the rendered scene. The transform is purely presentational: gestures
// never move simulation coordinates, they only change how world coordinates
// project onto the drawing surface.
package viewport

import "math"

// Scale bounds for the zoom transform.
const (
	MinScale = 0.1
	MaxScale = 4.0
)

// SidePanelWidth is the fixed horizontal offset reserved for the detail
// panel. The canvas gets the full viewport height and the width minus this.
const SidePanelWidth = 280.0

// Viewport holds the canvas size and display transform.
type Viewport struct {
	Width, Height float64 // canvas size in world units

	scale      float64
	panX, panY float64
}

// New creates a viewport for a window of the given outer size. The side
// panel offset is subtracted from the width.
func New(windowWidth, windowHeight float64) *Viewport {
	v := &Viewport{scale: 1}
	v.Resize(windowWidth, windowHeight)
	return v
}

// Resize recomputes the canvas size from a new window size and returns the
// new centering target (the canvas midpoint). The caller feeds the target to
// the simulation and reheats it.
func (v *Viewport) Resize(windowWidth, windowHeight float64) (centerX, centerY float64) {
	v.Width = math.Max(windowWidth-SidePanelWidth, 0)
	v.Height = windowHeight
	return v.Width / 2, v.Height / 2
}

// Center returns the canvas midpoint.
func (v *Viewport) Center() (x, y float64) { return v.Width / 2, v.Height / 2 }

// Scale returns the current zoom factor.
func (v *Viewport) Scale() float64 { return v.scale }

// Zoom multiplies the scale by factor, clamped to [MinScale, MaxScale].
// The given world point stays under the same screen position, so wheel zoom
// is anchored at the pointer.
func (v *Viewport) Zoom(factor, anchorX, anchorY float64) {
	old := v.scale
	v.scale = clamp(v.scale*factor, MinScale, MaxScale)
	if v.scale == old {
		return
	}
	// Keep the anchor fixed: screen = world*scale + pan.
	sx, sy := anchorX*old+v.panX, anchorY*old+v.panY
	v.panX = sx - anchorX*v.scale
	v.panY = sy - anchorY*v.scale
}

// Pan shifts the display transform by a screen-space delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.panX += dx
	v.panY += dy
}

// Project maps world coordinates to screen coordinates.
func (v *Viewport) Project(x, y float64) (sx, sy float64) {
	return x*v.scale + v.panX, y*v.scale + v.panY
}

// Unproject maps screen coordinates back to world coordinates, for hit
// testing pointer events against simulation positions.
func (v *Viewport) Unproject(sx, sy float64) (x, y float64) {
	return (sx - v.panX) / v.scale, (sy - v.panY) / v.scale
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
