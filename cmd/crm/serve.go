package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crmhub/crm-graphql/app/catalog"
	"github.com/crmhub/crm-graphql/app/customers"
	"github.com/crmhub/crm-graphql/app/graph"
	"github.com/crmhub/crm-graphql/app/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the GraphQL server",
	Long: `Start an HTTP server that serves the GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (POST)
  - GraphQL Playground at /graphql (GET)
  - Health check at /healthz
  - REST customers at /api/customers (GET, POST)
  - Read-only product catalog at /api/catalog and /api/catalog/:id

Examples:
  # Start on the configured address (default :8080)
  crm serve

  # Start on a custom address
  crm serve --addr :3000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := graph.NewSchema(svc)
		if err != nil {
			return err
		}

		serverCfg := cfg.Server
		if serveAddr != "" {
			serverCfg.Addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info("starting server", zap.String("addr", serverCfg.Addr), zap.String("driver", cfg.Database.Driver))
		return server.Run(ctx, serverCfg, schema, log,
			customers.NewCustomerHandler(svc),
			catalog.NewCatalogHandler(store),
		)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
