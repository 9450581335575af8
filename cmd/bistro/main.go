package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers the index migrations.
	_ "github.com/bistrobuzz/bistro/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "bistro",
	Short:         "Bistro Buzz ordering API",
	Long:          "Serve the Bistro Buzz REST API and manage its MongoDB database.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Users
	rootCmd.AddCommand(tokenIssueCmd)
	rootCmd.AddCommand(userPromoteCmd)
}
