package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlibekovAA/onion-recipes/internal/common/bootstrap"
	"github.com/AlibekovAA/onion-recipes/internal/common/constants"
	"github.com/AlibekovAA/onion-recipes/internal/common/crypto"
	"github.com/AlibekovAA/onion-recipes/internal/common/seed"
)

func newMigrateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema in the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := bootstrap.NewApp(ctx, serviceName, flags.options(cmd)...)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Migrate(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema applied (%s)\n", app.Config.Repository)
			return nil
		},
	}
}

func newSeedCmd(flags *rootFlags) *cobra.Command {
	var (
		users       int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert fabricated users and recipes into the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if users < 0 {
				return fmt.Errorf("--users must not be negative, got %d", users)
			}

			ctx := cmd.Context()
			app, err := bootstrap.NewApp(ctx, serviceName, flags.options(cmd)...)
			if err != nil {
				return err
			}
			defer app.Close()

			if app.UserWriter == nil || app.RecipeWriter == nil {
				return bootstrap.ErrNoDatabase
			}
			if err := app.Migrate(ctx); err != nil {
				return err
			}

			seeder := seed.NewSeeder(app.UserWriter, app.RecipeWriter, app.Generator, crypto.NewUUIDGenerator(), concurrency, app.Log)
			res, err := seeder.Seed(ctx, users)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users and %d recipes\n", res.Users, res.Recipes)
			return nil
		},
	}

	cmd.Flags().IntVar(&users, "users", constants.DefaultSeedUsers, "Number of users to create")
	cmd.Flags().IntVar(&concurrency, "concurrency", constants.DefaultSeedConcurrency, "Maximum parallel inserts")
	return cmd
}
