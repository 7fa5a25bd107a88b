package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mlindqvist/arkigraf/pkg/pipeline"
	"github.com/mlindqvist/arkigraf/pkg/relation"
)

// viewCommand creates the view command for interactive exploration.
func (c *CLI) viewCommand() *cobra.Command {
	opts := c.Config.PipelineOptions()

	cmd := &cobra.Command{
		Use:   "view [records.json]",
		Short: "Explore the graph interactively in the terminal",
		Long: `Explore the graph interactively in the terminal.

The view command runs the force simulation live: nodes settle into place,
hovering a node highlights its neighborhood and shows a summary in the side
panel, and dragging a node pins it under the pointer while the rest of the
layout follows. The mouse wheel zooms around the pointer.

Keys: q quit · r reheat · +/- zoom · arrows pan`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], opts.Seed)
		},
	}

	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "random seed for initial placement")

	return cmd
}

// runView loads the records and starts the interactive program. A load
// failure still opens the view, with the error panel and no graph.
func (c *CLI) runView(ctx context.Context, input string, seed int64) error {
	if seed == 0 {
		seed = pipeline.DefaultSeed
	}

	var g *relation.Graph

	recs, err := relation.ReadRecordsFile(input)
	if err == nil {
		g, err = relation.Build(recs)
	}
	if err != nil {
		c.Logger.Error("load failed", "path", input, "err", err)
	}

	model := newViewModel(g, seed)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run view: %w", err)
	}
	return nil
}
