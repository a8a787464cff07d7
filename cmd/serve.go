package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ethanolivertroy/crosswalk/internal/server"
)

func (c *cli) serveCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the assistant as an A2A server",
		Example: `  crosswalk serve
  crosswalk serve --port 9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			llmCfg := c.cfg.LLMConfig()
			if err := llmCfg.Validate(); err != nil {
				return llmConfigError(llmCfg, err)
			}
			if !cmd.Flags().Changed("host") {
				host = c.cfg.Server.Host
			}
			if !cmd.Flags().Changed("port") {
				port = c.cfg.Server.Port
			}
			if host != "127.0.0.1" && host != "localhost" {
				c.logger.Warn("server is not bound to loopback; the assistant has no authentication", zap.String("host", host))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := c.correlate(ctx)
			if err != nil {
				return err
			}

			err = server.RunA2AServer(ctx, server.A2AConfig{
				Host:      host,
				Port:      port,
				LLMConfig: llmCfg,
				Result:    result,
				ExportDir: c.cfg.Export.Dir,
				Logger:    c.logger,
			})
			if err != nil && ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Host to advertise (default: server.host from config)")
	cmd.Flags().IntVar(&port, "port", 8001, "Port for the A2A server (default: server.port from config)")
	return cmd
}
