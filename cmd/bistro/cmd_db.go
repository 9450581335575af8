package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bistrobuzz/bistro/app/repositories"
	"github.com/bistrobuzz/bistro/database/seeders"
	"github.com/bistrobuzz/bistro/pkg/database"
	"github.com/bistrobuzz/bistro/pkg/migration"
)

// withDB connects, runs fn, and disconnects.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, store *database.Store) error) error {
	ctx := cmd.Context()
	store, err := bootDB(ctx)
	if err != nil {
		return err
	}
	defer store.Close(context.Background()) //nolint:errcheck
	return fn(ctx, store)
}

// bistro migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the collection indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, store *database.Store) error {
			return migration.New(store.DB, cmd.OutOrStdout()).Run(ctx)
		})
	},
}

// bistro migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, store *database.Store) error {
			return migration.New(store.DB, cmd.OutOrStdout()).Rollback(ctx)
		})
	},
}

// bistro migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show which migrations have run",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, store *database.Store) error {
			return migration.New(store.DB, cmd.OutOrStdout()).Status(ctx)
		})
	},
}

var seedFile string

// bistro seed [--file fixtures.json]
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load menu items and reviews",
	Long:  "Load the built-in menu and reviews, or the ones in --file ({\"menu\":[...],\"reviews\":[...]}).",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return withDB(cmd, func(ctx context.Context, store *database.Store) error {
			if seedFile == "" {
				return seeders.RunAll(ctx, store.DB, out)
			}
			f, err := seeders.LoadFile(seedFile)
			if err != nil {
				return err
			}
			return seeders.Apply(ctx, f,
				repositories.NewMenuRepository(store.DB),
				repositories.NewReviewRepository(store.DB),
				out)
		})
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "fixtures JSON file")
}
