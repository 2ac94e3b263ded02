package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crmhub/crm-graphql/app/graph"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the GraphQL schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		sdl, err := graph.FormatSchema()
		if err != nil {
			return err
		}
		fmt.Print(sdl)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
