package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/mlindqvist/arkigraf/pkg/cache"
)

var sampleRecords = []byte(`[
	{"subject": "arch:alm", "subjectLabel": "Arkitekt Alm", "object": "bygg:1", "objectLabel": "Stadshuset"},
	{"subject": "arch:alm", "subjectLabel": "Arkitekt Alm", "object": "bygg:2", "objectLabel": "Biblioteket"},
	{"subject": "arch:berg", "subjectLabel": "Arkitekt Berg", "object": "bygg:2", "objectLabel": "Biblioteket"}
]`)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"dot", false},
		{"json", false},
		{"pdf", true},
		{"", true},
		{"SVG", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("frame = %vx%v, want %vx%v", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("logger should default to a discard logger")
	}

	// Idempotent
	opts.Formats = []string{"bogus"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Error("second call should be a no-op")
	}
}

func TestOptionsInvalidFormat(t *testing.T) {
	opts := Options{Formats: []string{"svg", "gif"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestSimulationOptionsOverrides(t *testing.T) {
	opts := Options{Width: 500, Height: 400, Seed: 7, Repulsion: -300}
	simOpts := opts.SimulationOptions()
	if simOpts.Width != 500 || simOpts.Height != 400 {
		t.Errorf("frame = %vx%v, want 500x400", simOpts.Width, simOpts.Height)
	}
	if simOpts.Seed != 7 {
		t.Errorf("seed = %d, want 7", simOpts.Seed)
	}
	if simOpts.Repulsion != -300 {
		t.Errorf("repulsion = %v, want -300", simOpts.Repulsion)
	}
	if simOpts.LinkDistance == 0 {
		t.Error("unset overrides should fall back to defaults")
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil)
	defer runner.Close()

	result, err := runner.Execute(ctx, sampleRecords, Options{
		Formats: []string{FormatSVG, FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 4 {
		t.Errorf("nodes = %d, want 4", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 3 {
		t.Errorf("edges = %d, want 3", result.Stats.EdgeCount)
	}
	if result.GraphHash == "" {
		t.Error("graph hash should be set")
	}
	if len(result.Layout.Positions) != 4 {
		t.Errorf("positions = %d, want 4", len(result.Layout.Positions))
	}

	svg := string(result.Artifacts[FormatSVG])
	if !strings.Contains(svg, "<svg") {
		t.Error("svg artifact should contain an <svg> element")
	}
	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, "graph G") {
		t.Error("dot artifact should contain the graph header")
	}
	if len(result.Artifacts[FormatJSON]) == 0 {
		t.Error("json artifact should not be empty")
	}
}

func TestExecuteMalformedRecords(t *testing.T) {
	runner := NewRunner(nil, nil)
	defer runner.Close()

	bad := []byte(`[{"subject": "", "subjectLabel": "X", "object": "b", "objectLabel": "Y"}]`)
	if _, err := runner.Execute(context.Background(), bad, Options{}); err == nil {
		t.Error("expected error for malformed record")
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil)
	defer runner.Close()

	opts := Options{Formats: []string{FormatSVG}}

	first, err := runner.Execute(ctx, sampleRecords, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(ctx, sampleRecords, Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.BuildHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit every stage, got %+v", second.CacheInfo)
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact should match the original")
	}

	// Refresh bypasses the cache
	third, err := runner.Execute(ctx, sampleRecords, Options{Formats: []string{FormatSVG}, Refresh: true})
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.BuildHit || third.CacheInfo.LayoutHit {
		t.Errorf("refresh run should recompute, got %+v", third.CacheInfo)
	}
	if string(first.Artifacts[FormatSVG]) != string(third.Artifacts[FormatSVG]) {
		t.Error("seeded recompute should reproduce the same artifact")
	}
}

func TestLayoutCacheKeyedBySimOpts(t *testing.T) {
	a := Options{Width: 800, Height: 600, Seed: 42}
	b := Options{Width: 800, Height: 600, Seed: 43}
	if a.LayoutKeyOpts() == b.LayoutKeyOpts() {
		t.Error("different seeds should produce different layout key opts")
	}
}
