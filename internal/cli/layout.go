package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/azsce/schematic/pkg/circuit"
	"github.com/azsce/schematic/pkg/pipeline"
)

// layoutCommand creates the layout command for computing diagram layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
		noPatterns bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [topology.json]",
		Short: "Compute a diagram layout from a circuit topology",
		Long: `Compute a diagram layout from a circuit topology.

The layout command takes a topology.json file describing nodes and branches
and computes a full 2D diagram: node positions, routed branch paths, arrows,
and label anchors. Output formats:

  svg   the rendered diagram (default)
  json  the raw layout data
  png   the diagram rasterized via librsvg
  pdf   the diagram as PDF via librsvg
  dot   a Graphviz debug view of the topology

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if noPatterns {
				off := false
				opts.UsePatterns = &off
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")

	// Layout flags
	cmd.Flags().BoolVar(&noPatterns, "no-patterns", false, "disable sub-topology recognition")
	cmd.Flags().BoolVar(&opts.PrioritizePlanarity, "planar", false, "refine placement to minimize crossings")
	cmd.Flags().IntVar(&opts.AnnealingIterations, "iterations", 0, "planarity refinement iterations")
	cmd.Flags().Float64Var(&opts.GridUnit, "grid", 0, "grid unit size")
	cmd.Flags().Float64Var(&opts.Padding, "padding", 0, "canvas padding")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for reproducible refinement")

	// Render flags
	cmd.Flags().BoolVar(&opts.Grid, "grid-lines", false, "draw background grid lines in SVG")
	cmd.Flags().StringVar(&opts.Title, "title", "", "embed a title in the SVG")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// runLayout loads the topology, runs the pipeline, and writes all artifacts.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	topo, err := circuit.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load topology %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	applyConfigDefaults(&opts, cfg.Layout)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, topo, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(output, input)
	for _, format := range opts.Formats {
		path := base + "." + format
		if output != "" && len(opts.Formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("Layout complete")
	printStats(result.Stats.NodeCount, result.Stats.BranchCount, result.CacheInfo.LayoutHit)
	if result.Stats.Crossings > 0 {
		printDetail("%d branch crossings remain (try --planar)", result.Stats.Crossings)
	}

	return nil
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input. If output
// has a format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
