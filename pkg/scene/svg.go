package scene

import (
	"bytes"
	"fmt"

	"github.com/mlindqvist/arkigraf/pkg/relation"
)

// SVG colors per category, matching the terminal palette.
const (
	architectFill = "#2aa198"
	buildingFill  = "#b58900"
	edgeStroke    = "#93a1a1"
	labelFill     = "#333333"
)

// SVGOption configures the SVG sink.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	showLabels    bool
}

// WithSize sets the SVG canvas size in world units.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}

// WithLabels renders every node label. Static exports have no pointer focus,
// so the interactive hidden-by-default rule would leave them unlabeled.
func WithLabels() SVGOption {
	return func(r *svgRenderer) { r.showLabels = true }
}

// RenderSVG draws the scene's current primitives as a standalone SVG
// document. Highlight and dim flags translate to stroke emphasis and
// opacity, so a focused snapshot exports the same way it displays.
func RenderSVG(s *Scene, opts ...SVGOption) []byte {
	r := svgRenderer{width: 800, height: 600}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)

	for _, e := range s.Edges() {
		stroke, width, opacity := edgeStroke, 1.0, 0.7
		if e.Highlighted {
			width = 2.5
			opacity = 1
		}
		if e.Dimmed {
			opacity = 0.15
		}
		fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f" opacity="%.2f"/>`+"\n",
			e.X1, e.Y1, e.X2, e.Y2, stroke, width, opacity)
	}

	for _, n := range s.Nodes() {
		fill := buildingFill
		if n.Category == relation.CategoryArchitect {
			fill = architectFill
		}
		opacity := 1.0
		if n.Dimmed {
			opacity = 0.2
		}
		stroke := ""
		if n.Highlighted || n.LabelVisible {
			stroke = ` stroke="#dc322f" stroke-width="2"`
		}
		fmt.Fprintf(&buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" opacity="%.2f"%s/>`+"\n",
			n.X, n.Y, n.Radius, fill, opacity, stroke)
	}

	for _, n := range s.Nodes() {
		if !n.LabelVisible && !r.showLabels {
			continue
		}
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="11" fill="%s">%s</text>`+"\n",
			n.X+n.Radius+3, n.Y+4, labelFill, escapeXML(n.Label))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
