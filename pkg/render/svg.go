package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/azsce/schematic/pkg/layout"
)

const schematicCSS = `
    .node { fill: white; stroke: #1a1a2e; stroke-width: 2; }
    .edge { fill: none; stroke: #1a1a2e; stroke-width: 2; }
    .arrow { fill: #1a1a2e; }
    .node-label { font: 12px sans-serif; fill: #1a1a2e; text-anchor: middle; }
    .edge-label { font: 11px sans-serif; fill: #4a4a6a; text-anchor: middle; }
    .grid { stroke: #e8e8f0; stroke-width: 1; }`

// SVGOption configures schematic SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	nodeRadius float64
	arrowSize  float64
	gridUnit   float64
	title      string
}

// WithNodeRadius overrides the default terminal dot radius.
func WithNodeRadius(r float64) SVGOption { return func(s *svgRenderer) { s.nodeRadius = r } }

// WithGrid draws background grid lines at the given spacing.
func WithGrid(unit float64) SVGOption { return func(s *svgRenderer) { s.gridUnit = unit } }

// WithTitle embeds a title element for accessibility and tooltips.
func WithTitle(t string) SVGOption { return func(s *svgRenderer) { s.title = t } }

// RenderSVG renders a computed layout as a standalone SVG document. Edges
// are drawn first, then arrowheads, then nodes, then labels, so terminals
// and text always sit on top of the wiring.
func RenderSVG(g *layout.Graph, opts ...SVGOption) []byte {
	r := svgRenderer{nodeRadius: 5, arrowSize: 7}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		g.Width, g.Height, g.Width, g.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", schematicCSS)

	if r.gridUnit > 0 {
		renderGrid(&buf, g, r.gridUnit)
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  <path id=%q class=\"edge\" d=%q/>\n", "edge-"+e.ID, e.Path)
	}
	for _, e := range g.Edges {
		renderArrow(&buf, e.Arrow, r.arrowSize)
	}
	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  <circle id=%q class=\"node\" cx=\"%.2f\" cy=\"%.2f\" r=\"%.1f\"/>\n",
			"node-"+n.ID, n.X, n.Y, r.nodeRadius)
	}
	for _, n := range g.Nodes {
		if n.Label == "" {
			continue
		}
		fmt.Fprintf(&buf, "  <text class=\"node-label\" x=\"%.2f\" y=\"%.2f\">%s</text>\n",
			n.LabelX, n.LabelY, escape(n.Label))
	}
	for _, e := range g.Edges {
		if e.Label == "" {
			continue
		}
		fmt.Fprintf(&buf, "  <text class=\"edge-label\" x=\"%.2f\" y=\"%.2f\">%s</text>\n",
			e.LabelX, e.LabelY, escape(e.Label))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderGrid(buf *bytes.Buffer, g *layout.Graph, unit float64) {
	buf.WriteString("  <g class=\"grid\">\n")
	for x := unit; x < g.Width; x += unit {
		fmt.Fprintf(buf, "    <line x1=\"%.1f\" y1=\"0\" x2=\"%.1f\" y2=\"%.1f\"/>\n", x, x, g.Height)
	}
	for y := unit; y < g.Height; y += unit {
		fmt.Fprintf(buf, "    <line x1=\"0\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", y, g.Width, y)
	}
	buf.WriteString("  </g>\n")
}

// renderArrow draws a triangle centered on the arrow point, rotated to the
// path tangent.
func renderArrow(buf *bytes.Buffer, a layout.ArrowPoint, size float64) {
	deg := a.Angle * 180 / math.Pi
	fmt.Fprintf(buf, "  <polygon class=\"arrow\" points=\"%.1f,0 %.1f,%.1f %.1f,%.1f\" transform=\"translate(%.2f %.2f) rotate(%.2f)\"/>\n",
		size, -size, size*0.6, -size, -size*0.6, a.X, a.Y, deg)
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string { return escaper.Replace(s) }
