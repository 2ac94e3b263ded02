package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/crmhub/crm-graphql/app/graph"
)

var (
	queryJSON      bool
	queryVariables string
	queryOperation string
)

var graphqlCmd = &cobra.Command{
	Use:     "graphql <query>",
	Aliases: []string{"query"},
	Short:   "Execute a GraphQL query or mutation",
	Long: `Execute a GraphQL query or mutation against the configured store.

Examples:
  # List all customers
  crm graphql '{ customers { id name email } }'

  # Create a product
  crm graphql 'mutation { createProduct(input: {name: "Mouse", price: "29.99", stock: 50}) { product { id } } }'

  # Use variables
  crm graphql -v '{"input": {"customerId": "1", "productIds": ["1", "2"]}}' \
    'mutation($input: OrderInput!) { createOrder(input: $input) { order { totalAmount } } }'

  # Read from stdin
  cat query.graphql | crm graphql`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return fmt.Errorf("accepts at most 1 argument (the GraphQL query)")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var query string
		if len(args) == 1 {
			query = args[0]
		} else {
			stdinQuery, err := readFromStdin()
			if err != nil {
				return err
			}
			if stdinQuery == "" {
				return fmt.Errorf("no query provided (pass as argument or pipe to stdin)")
			}
			query = stdinQuery
		}

		var variables map[string]interface{}
		if queryVariables != "" {
			if err := json.Unmarshal([]byte(queryVariables), &variables); err != nil {
				return fmt.Errorf("invalid variables JSON: %w", err)
			}
		}

		schema, err := graph.NewSchema(svc)
		if err != nil {
			return err
		}
		result, err := executeQuery(cmd.Context(), schema, query, variables, queryOperation)
		if err != nil {
			return err
		}

		if queryJSON {
			fmt.Println(string(result))
		} else {
			fmt.Println(string(pretty.Color(pretty.Pretty(result), nil)))
		}
		return nil
	},
}

// readFromStdin returns the piped query, or "" when stdin is a terminal.
func readFromStdin() (string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("checking stdin: %w", err)
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// executeQuery returns the data portion of the response, or the GraphQL
// errors folded into one error.
func executeQuery(ctx context.Context, schema *graphql.Schema, query string, variables map[string]interface{}, operationName string) ([]byte, error) {
	resp := schema.Exec(ctx, query, operationName, variables)
	if len(resp.Errors) > 0 {
		return nil, formatGraphQLErrors(resp.Errors)
	}
	return resp.Data, nil
}

func formatGraphQLErrors(errs []*gqlerrors.QueryError) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return fmt.Errorf("graphql: %s", errs[0].Message)
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("graphql errors:\n  %s", strings.Join(msgs, "\n  "))
}

func init() {
	graphqlCmd.Flags().BoolVar(&queryJSON, "json", false, "Output raw JSON (no formatting)")
	graphqlCmd.Flags().StringVarP(&queryVariables, "variables", "v", "", "Query variables as JSON string")
	graphqlCmd.Flags().StringVarP(&queryOperation, "operation", "o", "", "Operation name (for multi-operation documents)")
	rootCmd.AddCommand(graphqlCmd)
}
