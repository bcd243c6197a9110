package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/splitgrid/pkg/pipeline"
)

// layoutCommand creates the layout command for exporting grid geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		o          overrides
		output     string
		formatsStr string
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "layout [scenario]",
		Short: "Lay out a scenario and export the geometry",
		Long: `Lay out a scenario and export the geometry.

The layout command builds the grid described by a scenario file (.json or
.toml), replays its drags plus any --drag flags, and writes one file per
requested format:

  json, toml   region and divider geometry
  dot, svg     region/divider adjacency graph

With a single format, -o names the output file. Otherwise -o is a base path
and each format gets its own extension (default: <scenario>.layout.<format>).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], o, output, formats, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), toml, dot, svg (comma-separated)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "add bounding boxes to topology graph labels")
	o.register(cmd)

	return cmd
}

// runLayout loads the scenario, runs the pipeline, and writes every artifact.
func (c *CLI) runLayout(ctx context.Context, input string, o overrides, output string, formats []string, detailed bool) error {
	logger := loggerFromContext(ctx)
	opts, err := loadOptions(input, o, logger)
	if err != nil {
		return err
	}
	opts.Formats = formats
	opts.Detailed = detailed

	prog := newProgress(logger)
	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return fmt.Errorf("layout %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Laid out %d regions", result.Stats.Regions))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	var written []string
	for _, format := range formats {
		path := outputPath(output, input, format, len(formats) == 1)
		if err := writeOutput(path, result.Artifacts[format]); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Layout complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.Regions, result.Stats.Dividers, result.Stats.Drags)
	printNewline()
	printNextStep("Inspect", appName+" inspect "+input)

	return nil
}
