// Package cli implements the schematic command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/azsce/schematic/pkg/buildinfo"
	"github.com/azsce/schematic/pkg/cache"
	"github.com/azsce/schematic/pkg/config"
	"github.com/azsce/schematic/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "schematic"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag value; empty means default lookup.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Schematic lays out circuit topologies as 2D diagrams",
		Long:         `Schematic is a deterministic layout engine for circuit-style graphs: it recognizes common sub-topologies, places nodes on a grid, routes branches with minimal crossings, and renders the result as SVG and other formats.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $SCHEMATIC_CONFIG or ~/.config/schematic/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves the effective configuration for a command run.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.KeyPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.KeyPrefix)
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache builds the configured cache backend. Failures to set up a file
// cache degrade to no caching rather than failing the run.
func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		dir, err := cfg.CacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// applyConfigDefaults copies config file layout settings onto options the
// user did not set via flags.
func applyConfigDefaults(opts *pipeline.Options, cfg config.LayoutConfig) {
	if opts.GridUnit == 0 && cfg.GridUnit > 0 {
		opts.GridUnit = cfg.GridUnit
	}
	if opts.Padding == 0 && cfg.Padding > 0 {
		opts.Padding = cfg.Padding
	}
	if opts.Seed == 0 && cfg.Seed > 0 {
		opts.Seed = cfg.Seed
	}
	if opts.AnnealingIterations == 0 && cfg.AnnealingIterations > 0 {
		opts.AnnealingIterations = cfg.AnnealingIterations
	}
}
