package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlindqvist/arkigraf/pkg/relation"
)

// buildCommand creates the build command for constructing the graph.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "build [records.json]",
		Short: "Build the architect-building graph from relation records",
		Long: `Build the architect-building graph from relation records.

The input is a JSON array of records, each naming an architect (subject) and
a building (object) with display labels. Records sharing an id are merged
into one node; the first label seen for an id wins. A record with any empty
field aborts the build.

The output is a graph.json snapshot of the node and edge sets, for
inspection or downstream tooling. The other commands rebuild the graph
from the records themselves, served from the content-addressed cache on
repeat runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.graph.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runBuild reads the records, builds the graph, and writes graph.json.
func (c *CLI) runBuild(ctx context.Context, input, output string, noCache bool) error {
	records, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read records %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, cacheHit, err := runner.BuildWithCacheInfo(ctx, records, c.pipelineOptions())
	if err != nil {
		printError("Build failed")
		return fmt.Errorf("build graph: %w", err)
	}

	out := outputPath(output, input, ".graph.json")
	if err := relation.WriteGraphFile(g, out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Graph built")
	printFile(out)
	printStats(g.NodeCount(), g.EdgeCount(), cacheHit)
	printNewline()
	printNextStep("Layout", "arkigraf layout "+input)

	return nil
}
