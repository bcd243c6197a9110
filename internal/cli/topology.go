package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/splitgrid/pkg/pipeline"
)

// topologyCommand creates the topology command, which writes the
// region/divider adjacency graph.
func (c *CLI) topologyCommand() *cobra.Command {
	var (
		o        overrides
		output   string
		svg      bool
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "topology [scenario]",
		Short: "Write the region/divider adjacency graph",
		Long: `Write the region/divider adjacency graph of a scenario.

Regions are drawn as boxes and dividers as diamonds, with edges running from
the regions before a divider, through it, to the regions after it. Dashed
edges link a divider to the perpendicular dividers that move with it.

The graph is written as Graphviz DOT, or rendered to SVG with --svg. Without
-o it goes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := pipeline.FormatDOT
			if svg {
				format = pipeline.FormatSVG
			}
			return c.runTopology(cmd.Context(), args[0], o, output, format, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&svg, "svg", false, "render to SVG instead of DOT")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "add bounding boxes to node labels")
	o.register(cmd)

	return cmd
}

func (c *CLI) runTopology(ctx context.Context, input string, o overrides, output, format string, detailed bool) error {
	logger := loggerFromContext(ctx)
	opts, err := loadOptions(input, o, logger)
	if err != nil {
		return err
	}

	// Drags move dividers but never change adjacency, so they are not replayed.
	g, err := c.newRunner().Build(ctx, opts)
	if err != nil {
		return fmt.Errorf("topology %s: %w", input, err)
	}

	data, err := pipeline.RenderArtifact(ctx, g, format, detailed)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	if err := writeOutput(output, data); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	if output != "" {
		printSuccess("Topology written")
		printFile(output)
	}
	return nil
}
