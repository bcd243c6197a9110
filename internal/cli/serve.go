package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/splitgrid/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve live grids over HTTP",
		Long: `Serve live grids over HTTP.

Grids are created with POST /v1/grids, dragged with POST /v1/grids/{id}/drags
and kept in memory until deleted or idle for --ttl. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, ttl)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&ttl, "ttl", server.DefaultTTL, "evict grids idle for longer than this (negative: never)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, ttl time.Duration) error {
	logger := loggerFromContext(ctx)
	srv := server.New(server.Config{Addr: addr, TTL: ttl, Logger: logger})

	printInfo("Serving on http://%s", addr)
	if err := srv.Run(ctx); err != nil {
		return err
	}
	printInfo("Server stopped")
	return nil
}
