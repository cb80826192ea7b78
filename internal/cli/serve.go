package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/spacegrid/internal/server"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config.Server
			if addr != "" {
				cfg.Addr = addr
			}
			results, err := c.newResults(ctx, false)
			if err != nil {
				return err
			}
			defer results.Close()

			logger := loggerFromContext(ctx)
			logger.Debug("server config", "read_timeout", cfg.ReadTimeout, "write_timeout", cfg.WriteTimeout,
				"cache", c.config.Cache.Backend)
			return server.New(results, logger).ListenAndServe(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
