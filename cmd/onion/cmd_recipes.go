package main

import (
	"fmt"

	"github.com/spf13/cobra"

	authdomain "github.com/AlibekovAA/onion-recipes/internal/auth/domain"
	authservice "github.com/AlibekovAA/onion-recipes/internal/auth/service"
	"github.com/AlibekovAA/onion-recipes/internal/common/bootstrap"
	"github.com/AlibekovAA/onion-recipes/internal/common/clock"
)

func newRecipesCmd(flags *rootFlags) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Print the recipes of one session",
		Long: `Resolve a session and print the recipes saved by its user.

With --token the session comes from a signed access token (JWT_SECRET must be
set). Otherwise a session is fabricated and is valid most of the time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := bootstrap.NewApp(ctx, serviceName, flags.options(cmd)...)
			if err != nil {
				return err
			}
			defer app.Close()

			var session authdomain.Session
			if token != "" {
				if err := app.Config.RequireJWTSecret(); err != nil {
					return err
				}
				session = authservice.NewJWTSessions(app.Config.JWTSecret, clock.NewRealClock(), app.Log).FromToken(ctx, token)
			} else {
				session = authservice.NewFakeSessions(app.Generator, app.Config.Fake.SessionValidRate, app.Log).New(ctx)
			}

			recipes, err := app.Services.Food.GetRecipes(ctx, session)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), recipes.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Signed access token identifying the user")
	return cmd
}
