package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	authservice "github.com/AlibekovAA/onion-recipes/internal/auth/service"
	"github.com/AlibekovAA/onion-recipes/internal/common/clock"
	"github.com/AlibekovAA/onion-recipes/internal/common/config"
	"github.com/AlibekovAA/onion-recipes/internal/common/crypto"
)

func newTokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed access token for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return errors.New("--user is required")
			}

			cfg := config.Read()
			if err := cfg.RequireJWTSecret(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("ttl") {
				ttl = cfg.AccessTokenTTL
			}

			issuer := authservice.NewTokenIssuer(cfg.JWTSecret, crypto.NewUUIDGenerator(), ttl, clock.NewRealClock())
			token, _, err := issuer.Issue(userID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id placed in the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (env ONION_ACCESS_TOKEN_TTL)")
	return cmd
}
