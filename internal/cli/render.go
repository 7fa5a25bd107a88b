package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlindqvist/arkigraf/pkg/pipeline"
)

// renderCommand creates the render command for static exports.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := c.Config.PipelineOptions()

	cmd := &cobra.Command{
		Use:   "render [records.json]",
		Short: "Render the graph to SVG, DOT, PNG, or JSON",
		Long: `Render the graph to SVG, DOT, PNG, or JSON.

The render command runs the full build → layout → render pipeline. SVG uses
the native sink with settled simulation positions; DOT exports a Graphviz
description of the bipartite graph; PNG rasterizes that description through
Graphviz; JSON emits the settled layout.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.ShowLabels, "labels", opts.ShowLabels, "render every node label, not just the focused one")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "random seed for initial placement")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	records, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read records %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, records, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := renderBasePath(output, input)
	for _, format := range opts.Formats {
		path := base + "." + format
		if output != "" && len(opts.Formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("Render complete")
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)

	return nil
}

// renderBasePath derives the base output path from the output and input
// paths. A format extension on the output is stripped so multiple formats
// share the base.
func renderBasePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
