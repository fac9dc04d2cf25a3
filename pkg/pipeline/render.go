package pipeline

import (
	"context"
	"fmt"

	"github.com/azsce/schematic/pkg/circuit"
	"github.com/azsce/schematic/pkg/layout"
	"github.com/azsce/schematic/pkg/render"
)

// RenderFromLayout renders all requested formats from a computed layout.
// The topology is needed only for the DOT debug format.
func RenderFromLayout(ctx context.Context, g *layout.Graph, t *circuit.Topology, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte

	svgBytes := func() []byte {
		if svg == nil {
			svg = render.RenderSVG(g, svgOptions(opts)...)
		}
		return svg
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = svgBytes()
		case FormatPNG:
			data, err := render.ToPNG(svgBytes(), opts.PNGScale)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = data
		case FormatPDF:
			data, err := render.ToPDF(svgBytes())
			if err != nil {
				return nil, fmt.Errorf("render pdf: %w", err)
			}
			artifacts[format] = data
		case FormatJSON:
			data, err := MarshalGraph(g)
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		case FormatDOT:
			artifacts[format] = []byte(render.ToDOT(t, render.DOTOptions{Kinds: true}))
		}
	}
	return artifacts, nil
}

func svgOptions(opts Options) []render.SVGOption {
	var svgOpts []render.SVGOption
	if opts.Grid {
		svgOpts = append(svgOpts, render.WithGrid(opts.EngineOptions().GridUnit))
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, render.WithTitle(opts.Title))
	}
	return svgOpts
}
