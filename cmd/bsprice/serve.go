package main

import (
	"github.com/spf13/cobra"

	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard JSON API",
		Long: `serve exposes /api/v1/price, /api/v1/heatmap/price and
/api/v1/heatmap/pnl, plus /health and Prometheus /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.serverConfig()
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			return server.New(cfg).Run(cmd.Context())
		},
		PostRun: func(cmd *cobra.Command, args []string) {
			logger.Infof("server stopped")
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
