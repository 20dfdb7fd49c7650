package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/internal/server"
	"github.com/matzehuels/skyline/pkg/pipeline"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the street API over HTTP",
		Long: `Serve the street API over HTTP.

Streets are read from and written to the configured store, so the API and the
other commands share the same streets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg().Server.Addr
			}
			return c.withRunner(cmd.Context(), noCache, func(r *pipeline.Runner) error {
				err := server.New(r, c.Logger).ListenAndServe(cmd.Context(), addr)
				if errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}
