// Package pipeline provides the core layout pipeline for Schematic.
//
// This package implements the complete validate → layout → render pipeline
// that is shared by the CLI and the HTTP service. Centralizing it keeps
// caching and defaulting behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Compute node positions, edge routes, and label anchors
//  2. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, topo, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/azsce/schematic/pkg/cache"
	"github.com/azsce/schematic/pkg/layout"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// DefaultPNGScale is the resolution multiplier for PNG export.
const DefaultPNGScale = 2.0

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options. Zero values fall back to the engine defaults.
	UsePatterns          *bool   `json:"use_patterns,omitempty"`
	PrioritizePlanarity  bool    `json:"prioritize_planarity,omitempty"`
	AnnealingIterations  int     `json:"annealing_iterations,omitempty"`
	GridUnit             float64 `json:"grid_unit,omitempty"`
	AlignTolerance       float64 `json:"align_tolerance,omitempty"`
	MinParallelClearance float64 `json:"min_parallel_clearance,omitempty"`
	Padding              float64 `json:"padding,omitempty"`
	Seed                 uint64  `json:"seed,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Grid     bool     `json:"grid,omitempty"`
	Title    string   `json:"title,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// TopologyHash is the content hash of the input topology.
	TopologyHash string

	// Graph is the computed layout.
	Graph *layout.Graph

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains size and crossing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	BranchCount int
	Crossings   int
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills unset layout options from the engine defaults.
func (o *Options) SetLayoutDefaults() {
	def := layout.DefaultOptions()
	if o.AnnealingIterations == 0 {
		o.AnnealingIterations = def.AnnealingIterations
	}
	if o.GridUnit == 0 {
		o.GridUnit = def.GridUnit
	}
	if o.AlignTolerance == 0 {
		o.AlignTolerance = def.AlignTolerance
	}
	if o.MinParallelClearance == 0 {
		o.MinParallelClearance = def.MinParallelClearance
	}
	if o.Padding == 0 {
		o.Padding = def.Padding
	}
	if o.Seed == 0 {
		o.Seed = def.Seed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// EngineOptions converts pipeline options to engine options.
func (o *Options) EngineOptions() layout.Options {
	opts := layout.DefaultOptions()
	if o.UsePatterns != nil {
		opts.UsePatterns = *o.UsePatterns
	}
	opts.PrioritizePlanarity = o.PrioritizePlanarity
	if o.AnnealingIterations > 0 {
		opts.AnnealingIterations = o.AnnealingIterations
	}
	if o.GridUnit > 0 {
		opts.GridUnit = o.GridUnit
	}
	if o.AlignTolerance > 0 {
		opts.AlignTolerance = o.AlignTolerance
	}
	if o.MinParallelClearance > 0 {
		opts.MinParallelClearance = o.MinParallelClearance
	}
	if o.Padding > 0 {
		opts.Padding = o.Padding
	}
	if o.Seed > 0 {
		opts.Seed = o.Seed
	}
	return opts
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	eng := o.EngineOptions()
	return cache.LayoutKeyOpts{
		UsePatterns:          eng.UsePatterns,
		PrioritizePlanarity:  eng.PrioritizePlanarity,
		AnnealingIterations:  eng.AnnealingIterations,
		GridUnit:             eng.GridUnit,
		AlignTolerance:       eng.AlignTolerance,
		MinParallelClearance: eng.MinParallelClearance,
		Padding:              eng.Padding,
		Seed:                 eng.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Title:  o.Title,
	}
	if o.Grid {
		opts.Grid = o.EngineOptions().GridUnit
	}
	if format == FormatPNG {
		opts.Scale = o.PNGScale
	}
	return opts
}
