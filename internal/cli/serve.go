package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpress/internal/server"
	"github.com/matzehuels/gridpress/pkg/observability"
)

// serveCommand creates the serve command exposing the renderer over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the renderer over HTTP",
		Long: `Start an HTTP server that renders puzzles on request.

  POST /v1/render   body: ipuz JSON, query: layout flags (e.g. ?fontSize=12&format=pdf)
  GET  /healthz     liveness probe`,
		Example: `  gridpress serve --addr :9000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			observability.SetServerHooks(observability.NewLogHooks(c.Logger))
			return server.New(runner, c.cfg.Render, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, or :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
