package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crmhub/crm-graphql/app/seed"
	"github.com/crmhub/crm-graphql/models"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all data with sample customers, products and orders",
	Long: `Delete every order, product and customer, then load a fixed set of
sample data. Running it repeatedly always leaves the same records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			if err := models.Migrate(db); err != nil {
				return err
			}
		}
		summary, err := seed.Run(cmd.Context(), svc, store, log)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d customers, %d products and %d orders\n",
			summary.Customers, summary.Products, summary.Orders)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
