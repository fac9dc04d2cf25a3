package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/azsce/schematic/pkg/circuit"
)

// DOTOptions configures topology-to-DOT conversion.
type DOTOptions struct {
	// Kinds includes the branch kind on each connection label.
	Kinds bool
}

// ToDOT converts a topology to Graphviz DOT format. This is a structural
// debug view: it shows connectivity only, not the computed schematic
// geometry. The resulting string can be rendered with [DOTToSVG] or
// [DOTToPNG].
func ToDOT(t *circuit.Topology, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("graph circuit {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, width=0.3, fixedsize=true, fontsize=12];\n")
	buf.WriteString("\n")

	for _, id := range t.NodeIDs() {
		fmt.Fprintf(&buf, "  %q;\n", id)
	}

	buf.WriteString("\n")
	for _, b := range t.Branches() {
		if opts.Kinds && b.Kind != "" {
			fmt.Fprintf(&buf, "  %q -- %q [label=%q];\n", b.From, b.To, b.Kind)
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q;\n", b.From, b.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// DOTToSVG renders a DOT graph to SVG using Graphviz.
func DOTToSVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// DOTToPNG renders a DOT graph to PNG via SVG conversion. A scale of 2.0
// produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func DOTToPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := DOTToSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz svg tag so the viewBox starts at
// the origin and the width/height match it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
