package layout

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/azsce/schematic/pkg/circuit"
	"github.com/azsce/schematic/pkg/geom"
	"github.com/azsce/schematic/pkg/layout/label"
	"github.com/azsce/schematic/pkg/layout/pattern"
	"github.com/azsce/schematic/pkg/layout/place"
	"github.com/azsce/schematic/pkg/layout/route"
)

// Options configures an [Engine]. The zero value is not meaningful; start
// from [DefaultOptions] and override fields as needed.
type Options struct {
	// UsePatterns enables sub-topology recognition (bridge, pi, T, series)
	// before placement.
	UsePatterns bool
	// PrioritizePlanarity enables the simulated-annealing refinement stage
	// that minimizes edge crossings.
	PrioritizePlanarity bool
	// AnnealingIterations bounds the refinement stage when enabled.
	AnnealingIterations int
	// GridUnit is the snap grid size; pattern templates are scaled by it.
	GridUnit float64
	// AlignTolerance is the axis distance within which nodes are pulled
	// onto a shared coordinate.
	AlignTolerance float64
	// MinParallelClearance separates parallel branches between the same
	// node pair.
	MinParallelClearance float64
	// Padding surrounds the layout's bounding box on all sides.
	Padding float64
	// Seed drives every stochastic component. Identical input and seed
	// always produce identical output.
	Seed uint64
}

// DefaultOptions returns the engine defaults: pattern recognition on,
// planarity refinement off.
func DefaultOptions() Options {
	return Options{
		UsePatterns:          true,
		PrioritizePlanarity:  false,
		AnnealingIterations:  300,
		GridUnit:             40,
		AlignTolerance:       12,
		MinParallelClearance: 24,
		Padding:              40,
		Seed:                 42,
	}
}

// Engine computes layouts. It is stateless apart from its configuration:
// one Calculate call owns every intermediate structure it creates and
// discards them on return, so a single Engine may be shared freely.
type Engine struct {
	opts   Options
	logger *log.Logger
}

// New creates an engine with the given options. A nil logger falls back to
// the package default.
func New(opts Options, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	if opts.AnnealingIterations <= 0 {
		opts.AnnealingIterations = DefaultOptions().AnnealingIterations
	}
	if opts.GridUnit <= 0 {
		opts.GridUnit = DefaultOptions().GridUnit
	}
	if opts.Padding <= 0 {
		opts.Padding = DefaultOptions().Padding
	}
	return &Engine{opts: opts, logger: logger}
}

// Calculate validates the topology and computes its full layout: pattern
// collapse, placement of the simplified graph (optionally refined for
// planarity), expansion back to all nodes, edge routing, label placement,
// and final assembly with a padded bounding box.
//
// It returns *InvalidGraphError for an empty node set, an empty branch set,
// or a branch referencing an unknown node; any other topology yields a
// fully populated layout.
func (e *Engine) Calculate(t *circuit.Topology) (*Graph, error) {
	if err := e.validate(t); err != nil {
		return nil, err
	}

	positions := e.placeAll(t)
	positions = shiftPositive(t, positions, e.opts.Padding, e.routeConfig())

	routed := route.Route(t, positions, e.routeConfig())
	g := e.assemble(t, positions, routed)

	e.logger.Debug("layout complete",
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"crossings", place.CountCrossings(positions, t.Branches()),
		"size", fmt.Sprintf("%.0fx%.0f", g.Width, g.Height))
	return g, nil
}

// CalculateDocument lays out a raw topology document. Construction errors,
// including branches whose endpoints name no declared node, are reported as
// *InvalidGraphError.
func (e *Engine) CalculateDocument(doc circuit.TopologyJSON) (*Graph, error) {
	if len(doc.Nodes) == 0 {
		return nil, invalidGraph("topology has no nodes")
	}
	if len(doc.Branches) == 0 {
		return nil, invalidGraph("topology has no branches")
	}
	t, err := circuit.ToTopology(doc)
	if err != nil {
		return nil, &InvalidGraphError{Reason: err.Error(), Cause: err}
	}
	return e.Calculate(t)
}

func (e *Engine) validate(t *circuit.Topology) error {
	if t == nil || t.NodeCount() == 0 {
		return invalidGraph("topology has no nodes")
	}
	if t.BranchCount() == 0 {
		return invalidGraph("topology has no branches")
	}
	if err := t.Validate(); err != nil {
		return &InvalidGraphError{Reason: err.Error(), Cause: err}
	}
	return nil
}

// placeAll runs pattern collapse, placement, and expansion, returning a
// position for every original node.
func (e *Engine) placeAll(t *circuit.Topology) map[string]geom.Point {
	cfg := e.placeConfig()

	if !e.opts.UsePatterns {
		pos := e.placeUnits(t, cfg)
		return pos
	}

	matches := pattern.Find(t)
	if len(matches) == 0 {
		return e.placeUnits(t, cfg)
	}
	e.logger.Debug("patterns collapsed", "matches", len(matches))

	simplified := pattern.Collapse(t, matches)
	units := simplified.PlacementTopology()
	unitPos := e.placeUnits(units, cfg)
	return pattern.Expand(simplified, unitPos, e.opts.GridUnit)
}

// placeUnits places one graph of units, with optional planarity refinement.
// A unit graph left with no branches after collapsing still places cleanly;
// repulsion alone spreads the units.
func (e *Engine) placeUnits(units *circuit.Topology, cfg place.Config) map[string]geom.Point {
	if e.opts.PrioritizePlanarity {
		pos, _ := place.PlaceForPlanarity(units, cfg, e.opts.AnnealingIterations, e.opts.Seed)
		return pos
	}
	pos, _ := place.Place(units, cfg)
	return pos
}

func (e *Engine) placeConfig() place.Config {
	cfg := place.DefaultConfig()
	cfg.GridUnit = e.opts.GridUnit
	cfg.PreferredLength = 2 * e.opts.GridUnit
	if e.opts.AlignTolerance > 0 {
		cfg.AlignTolerance = e.opts.AlignTolerance
	}
	return cfg
}

func (e *Engine) routeConfig() route.Config {
	cfg := route.DefaultConfig()
	if e.opts.MinParallelClearance > 0 {
		cfg.MinParallelClearance = e.opts.MinParallelClearance
	}
	return cfg
}

// shiftPositive translates the layout so every node and every routed path
// point lands inside the positive quadrant with the configured padding.
// Routing is translation-invariant, so the trial pass used to measure the
// true extent produces the same geometry the final pass will.
func shiftPositive(t *circuit.Topology, pos map[string]geom.Point, padding float64, cfg route.Config) map[string]geom.Point {
	trial := route.Route(t, pos, cfg)
	pts := make([]geom.Point, 0, len(pos))
	for _, id := range t.NodeIDs() {
		pts = append(pts, pos[id])
	}
	for _, r := range trial {
		pts = append(pts, r.Points...)
	}
	rect := geom.RectAround(pts)

	shift := geom.Pt(padding-rect.Min.X, padding-rect.Min.Y)
	out := make(map[string]geom.Point, len(pos))
	for id, p := range pos {
		out[id] = p.Add(shift)
	}
	return out
}

// assemble builds the output graph in topology insertion order.
func (e *Engine) assemble(t *circuit.Topology, pos map[string]geom.Point, routed map[string]route.Routed) *Graph {
	g := &Graph{}

	var all []geom.Point
	for _, id := range t.NodeIDs() {
		all = append(all, pos[id])
	}

	for _, id := range t.NodeIDs() {
		var neighborPts []geom.Point
		for _, n := range t.Neighbors(id) {
			neighborPts = append(neighborPts, pos[n.NodeID])
		}
		anchor := label.PlaceNode(pos[id], neighborPts)
		g.Nodes = append(g.Nodes, NodePlacement{
			ID:     id,
			X:      pos[id].X,
			Y:      pos[id].Y,
			Label:  id,
			LabelX: anchor.X,
			LabelY: anchor.Y,
		})
	}

	var placedLabels []geom.Point
	for _, br := range t.Branches() {
		r := routed[br.ID]
		all = append(all, r.Points...)

		waypoints := make([]geom.Point, 0, t.NodeCount()+len(placedLabels))
		for _, id := range t.NodeIDs() {
			if id != br.From && id != br.To {
				waypoints = append(waypoints, pos[id])
			}
		}
		waypoints = append(waypoints, placedLabels...)
		anchor := label.Place(r.Points, waypoints, pos[br.From], pos[br.To])
		placedLabels = append(placedLabels, anchor)

		text := br.Kind
		if text == "" {
			text = br.ID
		}
		g.Edges = append(g.Edges, EdgePlacement{
			ID:     br.ID,
			Source: br.From,
			Target: br.To,
			Path:   r.Path,
			Arrow:  ArrowPoint(r.Arrow),
			Label:  text,
			LabelX: anchor.X,
			LabelY: anchor.Y,
			Curved: r.Curved,
		})
	}

	rect := geom.RectAround(all).Pad(e.opts.Padding)
	g.Width = rect.Max.X
	g.Height = rect.Max.Y
	return g
}
