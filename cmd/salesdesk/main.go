package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "salesdesk",
	Short:         "Sales desk GraphQL API",
	Long:          "salesdesk serves the GraphQL API for sellers, products, clients and orders, and manages its MongoDB database.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("env", "", "application environment (overrides APP_ENV)")
	pf.String("mongo-uri", "", "MongoDB connection string (overrides MONGO_URI)")
	pf.String("db-name", "", "database name (overrides DB_NAME)")

	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)

	// Ops
	rootCmd.AddCommand(tokenCmd)
}
