package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/azsce/schematic/pkg/cache"
	"github.com/azsce/schematic/pkg/circuit"
)

func testTopology(t *testing.T) *circuit.Topology {
	t.Helper()
	topo := circuit.New()
	for _, id := range []string{"a", "b", "c"} {
		if err := topo.AddNode(id); err != nil {
			t.Fatal(err)
		}
	}
	for _, b := range [][3]string{
		{"b1", "a", "b"},
		{"b2", "b", "c"},
		{"b3", "a", "c"},
	} {
		err := topo.AddBranch(circuit.Branch{ID: b[0], From: b[1], To: b[2]})
		if err != nil {
			t.Fatal(err)
		}
	}
	return topo
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("default formats = %v, want [svg]", opts.Formats)
	}
	if opts.Seed == 0 {
		t.Error("seed default not applied")
	}
	if opts.GridUnit == 0 {
		t.Error("grid unit default not applied")
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("png scale = %v, want %v", opts.PNGScale, DefaultPNGScale)
	}
	if opts.Logger == nil {
		t.Error("logger default not applied")
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"svg"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	seed := opts.Seed
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Seed != seed {
		t.Error("second validation changed options")
	}
}

func TestLayoutKeyOptsDistinguishSeeds(t *testing.T) {
	a := Options{Seed: 1}
	b := Options{Seed: 2}
	if a.LayoutKeyOpts() == b.LayoutKeyOpts() {
		t.Error("different seeds should produce different key opts")
	}
}

func TestExecuteProducesArtifacts(t *testing.T) {
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer runner.Close()

	opts := Options{Formats: []string{FormatSVG, FormatJSON, FormatDOT}}
	result, err := runner.Execute(context.Background(), testTopology(t), opts)
	if err != nil {
		t.Fatal(err)
	}

	if result.TopologyHash == "" {
		t.Error("topology hash missing")
	}
	if result.Stats.NodeCount != 3 || result.Stats.BranchCount != 3 {
		t.Errorf("stats = %+v", result.Stats)
	}
	for _, format := range opts.Formats {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact malformed")
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}
}

func TestExecuteCachesSecondRun(t *testing.T) {
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer runner.Close()

	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG}}

	first, err := runner.Execute(ctx, testTopology(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := runner.Execute(ctx, testTopology(t), opts)
	if err != nil {
		t.Fatal(err)
	}

	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from computed one")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer runner.Close()

	ctx := context.Background()
	if _, err := runner.Execute(ctx, testTopology(t), Options{}); err != nil {
		t.Fatal(err)
	}

	result, err := runner.Execute(ctx, testTopology(t), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("refresh run must not report cache hits")
	}
}

func TestExecuteInvalidTopology(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	empty := circuit.New()
	if err := empty.AddNode("a"); err != nil {
		t.Fatal(err)
	}
	_, err := runner.Execute(context.Background(), empty, Options{})
	if err == nil {
		t.Fatal("topology without branches should fail")
	}
}

func TestExecuteInvalidFormat(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), testTopology(t), Options{Formats: []string{"bmp"}})
	if err == nil {
		t.Fatal("invalid format should fail")
	}
}
