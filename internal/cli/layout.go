package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlindqvist/arkigraf/pkg/force"
	"github.com/mlindqvist/arkigraf/pkg/pipeline"
)

// layoutCommand creates the layout command for computing settled positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := c.Config.PipelineOptions()

	cmd := &cobra.Command{
		Use:   "layout [records.json]",
		Short: "Run the force simulation headlessly and write settled positions",
		Long: `Run the force simulation headlessly and write settled positions.

The layout command builds the graph from relation records and ticks the
force-directed simulation until the cooling schedule settles it. The output
is a layout.json file with one position per node, reproducible for a given
seed.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Simulation flags
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "random seed for initial placement")
	cmd.Flags().Float64Var(&opts.LinkDistance, "link-distance", opts.LinkDistance, "target edge separation")
	cmd.Flags().Float64Var(&opts.Repulsion, "repulsion", opts.Repulsion, "many-body strength (negative repels)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runLayout builds the graph, runs the simulation, and writes layout.json.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	g, _, err := runner.BuildWithCacheInfo(ctx, records, opts)
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Settling layout...")
	spinner.Start()

	layout, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, "", opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := outputPath(output, input, ".layout.json")
	if err := force.WriteLayoutFile(layout, out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Layout settled in %d ticks", layout.Ticks)
	printFile(out)
	printStats(g.NodeCount(), g.EdgeCount(), cacheHit)
	printNewline()
	printNextStep("Render", "arkigraf render "+input)

	return nil
}
