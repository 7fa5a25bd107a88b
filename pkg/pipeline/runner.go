package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlindqvist/arkigraf/pkg/cache"
	"github.com/mlindqvist/arkigraf/pkg/force"
	"github.com/mlindqvist/arkigraf/pkg/observability"
	"github.com/mlindqvist/arkigraf/pkg/relation"
	"github.com/mlindqvist/arkigraf/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// Execute runs the complete build → layout → render pipeline with caching.
// records is the raw JSON record set; its content hash anchors every cache
// key downstream.
func (r *Runner) Execute(ctx context.Context, records []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Build
	buildStart := time.Now()
	g, buildHit, err := r.BuildWithCacheInfo(ctx, records, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.BuildHit = buildHit

	// Graph hash anchors the layout cache key and API responses.
	if graphData, err := relation.MarshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	r.Logger.Info("built graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.BuildTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, g, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Ticks = layout.Ticks
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"ticks", layout.Ticks,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildWithCacheInfo builds the graph with caching and returns cache hit info.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, records []byte, opts Options) (*relation.Graph, bool, error) {
	r.applyLogger(&opts)

	cacheKey := cache.GraphKey(records)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := relation.ReadGraph(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	recs, err := relation.ReadRecords(bytes.NewReader(records))
	if err != nil {
		return nil, false, err
	}

	observability.Pipeline().OnBuildStart(ctx, len(recs))
	g, err := relation.Build(recs)
	nodes, edges := 0, 0
	if g != nil {
		nodes, edges = g.NodeCount(), g.EdgeCount()
	}
	observability.Pipeline().OnBuildComplete(ctx, nodes, edges, err)
	if err != nil {
		return nil, false, err
	}

	if data, err := relation.MarshalGraph(g); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph); err == nil {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}

	return g, false, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, records []byte, opts Options) (*relation.Graph, error) {
	g, _, err := r.BuildWithCacheInfo(ctx, records, opts)
	return g, err
}

// ComputeLayoutWithCacheInfo runs the simulation to a settled snapshot with
// caching and returns cache hit info. graphHash may be empty, in which case
// it is recomputed from the graph.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, g *relation.Graph, graphHash string, opts Options) (force.Layout, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	if graphHash == "" {
		graphData, err := relation.MarshalGraph(g)
		if err != nil {
			return force.Layout{}, false, fmt.Errorf("serialize graph for cache key: %w", err)
		}
		graphHash = cache.Hash(graphData)
	}
	cacheKey := cache.LayoutKey(graphHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := force.ReadLayout(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	observability.Pipeline().OnLayoutStart(ctx, g.NodeCount())
	start := time.Now()
	sim := force.New(g, opts.SimulationOptions())
	layout := sim.Run()
	observability.Pipeline().OnLayoutComplete(ctx, layout.Ticks, time.Since(start), nil)

	if data, err := force.MarshalLayout(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return layout, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, g *relation.Graph, graphHash string, opts Options) (force.Layout, error) {
	layout, _, err := r.ComputeLayoutWithCacheInfo(ctx, g, graphHash, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout force.Layout, g *relation.Graph, opts Options) (map[string][]byte, bool, error) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := force.MarshalLayout(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		allCached := true
		for _, format := range opts.Formats {
			cacheKey := cache.ArtifactKey(layoutHash, opts.artifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := r.renderFormats(ctx, layout, g, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := cache.ArtifactKey(layoutHash, opts.artifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout force.Layout, g *relation.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, g, opts)
	return artifacts, err
}

// renderFormats produces one artifact per requested format from a settled
// layout.
func (r *Runner) renderFormats(ctx context.Context, layout force.Layout, g *relation.Graph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			sc := scene.New(g)
			sc.SyncLayout(layout)
			svgOpts := []scene.SVGOption{scene.WithSize(layout.Width, layout.Height)}
			if opts.ShowLabels {
				svgOpts = append(svgOpts, scene.WithLabels())
			}
			artifacts[format] = scene.RenderSVG(sc, svgOpts...)

		case FormatDOT:
			artifacts[format] = []byte(scene.ToDOT(g))

		case FormatPNG:
			data, err := scene.RenderDOTPNG(ctx, scene.ToDOT(g))
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = data

		case FormatJSON:
			data, err := force.MarshalLayout(layout)
			if err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			artifacts[format] = data

		default:
			return nil, fmt.Errorf("invalid format: %q", format)
		}
	}

	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (o *Options) artifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		ShowLabels: o.ShowLabels,
	}
}
