// Package render turns computed layouts into visual outputs.
//
// # Schematic SVG
//
// [RenderSVG] is the primary output: it draws a layout exactly as computed,
// with edge paths, direction arrows, terminal dots, and labels.
//
//	g, _ := engine.Calculate(topo)
//	svg := render.RenderSVG(g, render.WithGrid(40))
//
// # Format conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg).
//
// # Structural debug view
//
// [ToDOT], [DOTToSVG], and [DOTToPNG] produce a Graphviz view of the raw
// topology. It ignores the computed geometry and is meant for inspecting
// connectivity when a layout looks wrong.
package render
