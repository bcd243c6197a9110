package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var o overrides

	cmd := &cobra.Command{
		Use:   "validate [scenario]",
		Short: "Check a scenario's matrix and drags",
		Long: `Check a scenario's matrix and drags.

The matrix must be rectangular, use non-negative labels, and give every label
exactly one rectangular component. Every drag must name an existing divider.
Nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], o)
		},
	}
	o.register(cmd)

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, input string, o overrides) error {
	logger := loggerFromContext(ctx)
	opts, err := loadOptions(input, o, logger)
	if err != nil {
		return err
	}

	runner := c.newRunner()
	g, err := runner.Build(ctx, opts)
	if err != nil {
		return fmt.Errorf("validate %s: %w", input, err)
	}
	if err := runner.Replay(ctx, g, opts.Drags); err != nil {
		return fmt.Errorf("validate %s: %w", input, err)
	}

	printSuccess("%s is valid", input)
	printStats(len(g.Regions()), len(g.Dividers()), len(opts.Drags))
	return nil
}
