package scene

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/mlindqvist/arkigraf/pkg/relation"
)

// ToDOT converts the graph to Graphviz DOT format for static node-link
// rendering. Architects are ellipses, buildings boxes, so the bipartite
// structure reads without color.
func ToDOT(g *relation.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		shape, fill := "box", buildingFill
		if n.Category == relation.CategoryArchitect {
			shape, fill = "ellipse", architectFill
		}
		fmt.Fprintf(&buf, "  %q [label=%q, shape=%s, fillcolor=%q];\n", n.ID, n.Name, shape, fill)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOTPNG renders a DOT graph to PNG using Graphviz. SVG never goes
// through Graphviz; the native sink keeps settled simulation positions.
func RenderDOTPNG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
