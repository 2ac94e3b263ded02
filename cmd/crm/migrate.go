package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crmhub/crm-graphql/models"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if db == nil {
			return fmt.Errorf("migrate needs a database, driver is %q", cfg.Database.Driver)
		}
		if err := models.Migrate(db); err != nil {
			return err
		}
		fmt.Println("Database schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
