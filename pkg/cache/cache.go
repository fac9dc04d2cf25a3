// Package cache provides pluggable caching for layout and render results.
//
// Layouts are deterministic, so a topology hash plus the engine options
// fully identifies a result. The [Keyer] turns those into stable string
// keys; a [Cache] stores the bytes. Backends cover local CLI usage
// ([FileCache]), tests ([MemoryCache], [NullCache]), and shared service
// deployments ([RedisCache]).
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry class. Layouts are cheap to keep and expensive to
// recompute; artifacts are derived from layouts and expire sooner.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented key-value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the engine options that affect a computed layout.
// Two runs with the same topology hash and the same opts produce
// byte-identical layouts.
type LayoutKeyOpts struct {
	UsePatterns          bool    `json:"use_patterns"`
	PrioritizePlanarity  bool    `json:"prioritize_planarity"`
	AnnealingIterations  int     `json:"annealing_iterations"`
	GridUnit             float64 `json:"grid_unit"`
	AlignTolerance       float64 `json:"align_tolerance"`
	MinParallelClearance float64 `json:"min_parallel_clearance"`
	Padding              float64 `json:"padding"`
	Seed                 uint64  `json:"seed"`
}

// ArtifactKeyOpts are the render options that affect an output artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Grid   float64 `json:"grid,omitempty"`
	Title  string  `json:"title,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey identifies a computed layout by topology hash and engine
	// options.
	LayoutKey(topologyHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered artifact by layout hash and
	// render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes options into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// LayoutKey generates a key of the form layout:<sha256>.
func (k *DefaultKeyer) LayoutKey(topologyHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", topologyHash, opts)
}

// ArtifactKey generates a key of the form artifact:<sha256>.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
