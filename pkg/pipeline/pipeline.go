// Package pipeline provides the core visualization pipeline for Arkigraf.
//
// This package implements the complete build → layout → render pipeline that
// can be used by CLI, API, and headless components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Construct the bipartite architect/building graph from relation
//     records
//  2. Layout: Run the force simulation to a settled position snapshot
//  3. Render: Generate output in various formats (SVG, DOT, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Width:   1000,
//	    Height:  800,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, records, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Build only
//	g, err := runner.Build(ctx, records, opts)
//
//	// Layout with existing graph
//	layout, err := runner.ComputeLayout(ctx, g, graphHash, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, layout, g, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlindqvist/arkigraf/pkg/cache"
	"github.com/mlindqvist/arkigraf/pkg/force"
	"github.com/mlindqvist/arkigraf/pkg/relation"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in world units.
	DefaultWidth = 1000.0

	// DefaultHeight is the default frame height in world units.
	DefaultHeight = 800.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = force.DefaultSeed
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Seed   int64   `json:"seed,omitempty"`

	// Simulation overrides. Zero values fall back to the force package
	// defaults.
	LinkDistance  float64 `json:"link_distance,omitempty"`
	Repulsion     float64 `json:"repulsion,omitempty"`
	CollideRadius float64 `json:"collide_radius,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	ShowLabels bool     `json:"show_labels,omitempty"`

	// Refresh bypasses cached entries and recomputes every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the built bipartite graph.
	Graph *relation.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout contains the settled node positions.
	Layout force.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Ticks      int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the built graph came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, dot, json)", format)
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

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
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

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
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
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SimulationOptions converts pipeline options to force simulation options.
func (o *Options) SimulationOptions() force.Options {
	opts := force.DefaultOptions(o.Width, o.Height)
	opts.Seed = o.Seed
	if o.LinkDistance != 0 {
		opts.LinkDistance = o.LinkDistance
	}
	if o.Repulsion != 0 {
		opts.Repulsion = o.Repulsion
	}
	if o.CollideRadius != 0 {
		opts.CollideRadius = o.CollideRadius
	}
	return opts
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:         o.Width,
		Height:        o.Height,
		Seed:          o.Seed,
		LinkDistance:  o.LinkDistance,
		Repulsion:     o.Repulsion,
		CollideRadius: o.CollideRadius,
	}
}
