package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AlibekovAA/onion-recipes/internal/common/bootstrap"
	"github.com/AlibekovAA/onion-recipes/internal/common/config"
)

const serviceName = "onion"

// rootFlags override the environment for a single invocation.
type rootFlags struct {
	repository string
	fixtures   string
	sqlitePath string
	seed       uint64
}

func (f *rootFlags) options(cmd *cobra.Command) []bootstrap.Option {
	var opts []bootstrap.Option
	flags := cmd.Flags()
	if flags.Changed("repository") {
		opts = append(opts, func(c *config.Config) { c.Repository = f.repository })
	}
	if flags.Changed("fixtures") {
		opts = append(opts, func(c *config.Config) { c.FixturesPath = f.fixtures })
	}
	if flags.Changed("sqlite") {
		opts = append(opts, func(c *config.Config) { c.SQLitePath = f.sqlitePath })
	}
	if flags.Changed("seed") {
		opts = append(opts, func(c *config.Config) { c.Fake.Seed = f.seed })
	}
	return opts
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	recipesCmd := newRecipesCmd(flags)

	rootCmd := &cobra.Command{
		Use:   "onion",
		Short: "Look up the recipes saved by a user",
		Long: `onion resolves a session, loads the user's saved recipe ids and prints
the matching recipes.

Without a subcommand it behaves like "onion recipes" with a fabricated session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          recipesCmd.RunE,
	}

	rootCmd.PersistentFlags().StringVar(&flags.repository, "repository", "", "Repository backend: fake, memory, postgres or sqlite (env ONION_REPOSITORY)")
	rootCmd.PersistentFlags().StringVar(&flags.fixtures, "fixtures", "", "YAML fixtures file for the memory backend (env ONION_FIXTURES)")
	rootCmd.PersistentFlags().StringVar(&flags.sqlitePath, "sqlite", "", "SQLite database file (env ONION_SQLITE_PATH)")
	rootCmd.PersistentFlags().Uint64Var(&flags.seed, "seed", 0, "Seed for fabricated data, 0 for random (env ONION_FAKE_SEED)")
	rootCmd.Flags().AddFlagSet(recipesCmd.Flags())

	rootCmd.AddCommand(
		recipesCmd,
		newServeCmd(flags),
		newTokenCmd(),
		newMigrateCmd(flags),
		newSeedCmd(flags),
	)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
