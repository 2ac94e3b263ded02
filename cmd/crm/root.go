package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/crmhub/crm-graphql/app/catalog"
	"github.com/crmhub/crm-graphql/app/crm"
	"github.com/crmhub/crm-graphql/app/logging"
	"github.com/crmhub/crm-graphql/app/seed"
	"github.com/crmhub/crm-graphql/config"
	"github.com/crmhub/crm-graphql/models"
)

// backend is a store the service can run against, the catalog can page
// through and the seeder can clear.
type backend interface {
	crm.Repository
	catalog.ProductProvider
	seed.Resetter
}

var (
	configPath string

	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB // nil with the memory driver
	store backend
	svc   *crm.Service
)

var rootCmd = &cobra.Command{
	Use:   "crm",
	Short: "GraphQL API for customers, products and orders",
	Long: `crm serves a GraphQL API over a PostgreSQL database holding customers,
products and orders. Besides the server it can migrate the schema, load
sample data and run one-off queries from the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		log, err = logging.Setup(cfg.Logger)
		if err != nil {
			return fmt.Errorf("setting up logger: %w", err)
		}

		// printing the schema needs no store
		if cmd.Name() == "schema" {
			return nil
		}
		return openStore(cfg.Database)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log != nil {
			_ = log.Sync()
		}
		return closeStore()
	},
}

func openStore(dbCfg config.DatabaseConfig) error {
	if dbCfg.Driver == models.DriverMemory {
		mem := models.NewMemoryStore()
		store = mem
		svc = crm.NewService(mem, log)
		log.Warn("using in-memory store, data is lost on exit")
		return nil
	}

	var err error
	db, err = models.Open(dbCfg.Driver, dbCfg.DSN, dbCfg.Debug)
	if err != nil {
		return err
	}
	s := models.NewStore(db)
	store = s
	svc = crm.NewService(s, log)
	return nil
}

func closeStore() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default $CRM_CONFIG)")
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
