package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// inspectCommand creates the inspect command, which prints region and
// divider tables for a scenario.
func (c *CLI) inspectCommand() *cobra.Command {
	var o overrides

	cmd := &cobra.Command{
		Use:   "inspect [scenario]",
		Short: "Print the regions and dividers of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], o)
		},
	}
	o.register(cmd)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, w io.Writer, input string, o overrides) error {
	logger := loggerFromContext(ctx)
	opts, err := loadOptions(input, o, logger)
	if err != nil {
		return err
	}

	runner := c.newRunner()
	g, err := runner.Build(ctx, opts)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", input, err)
	}
	if err := runner.Replay(ctx, g, opts.Drags); err != nil {
		return fmt.Errorf("inspect %s: %w", input, err)
	}

	printKeyValue(w, "Grid", fmt.Sprintf("%s × %s px", num(g.Width()), num(g.Height())))
	printKeyValue(w, "Thickness", num(g.Thickness())+" px")
	printKeyValue(w, "Expanded", fmt.Sprintf("%d × %d cells", g.Topology().Rows(), g.Topology().Cols()))
	printKeyValue(w, "Drags", fmt.Sprint(len(opts.Drags)))
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleTitle.Render("Regions"))
	fmt.Fprintln(w, regionTable(g))
	if len(g.Dividers()) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleTitle.Render("Dividers"))
		fmt.Fprintln(w, dividerTable(g))
	}
	return nil
}
