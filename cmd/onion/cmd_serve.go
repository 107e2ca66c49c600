package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	authservice "github.com/AlibekovAA/onion-recipes/internal/auth/service"
	"github.com/AlibekovAA/onion-recipes/internal/common/bootstrap"
	"github.com/AlibekovAA/onion-recipes/internal/common/clock"
	"github.com/AlibekovAA/onion-recipes/internal/common/config"
	commonhttp "github.com/AlibekovAA/onion-recipes/internal/common/http"
	srv "github.com/AlibekovAA/onion-recipes/internal/common/server"
	foodhttp "github.com/AlibekovAA/onion-recipes/internal/food/http"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recipes API over HTTP",
		Long: `Serve GET /api/food/recipes, /health and /metrics until interrupted.

Callers authenticate with "Authorization: Bearer <token>" (see "onion token").
With the memory backend the fixtures file is reloaded when it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd)
			if cmd.Flags().Changed("port") {
				opts = append(opts, func(c *config.Config) { c.HTTPPort = port })
			}

			ctx := cmd.Context()
			app, err := bootstrap.NewApp(ctx, serviceName, opts...)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Config.RequireJWTSecret(); err != nil {
				return err
			}

			server, limiter := newHTTPServer(app)
			hooks := []srv.ShutdownHook{
				func(context.Context) error {
					limiter.Stop()
					return nil
				},
			}

			g, ctx := errgroup.WithContext(ctx)
			if app.Fixtures != nil {
				g.Go(func() error { return app.Fixtures.Watch(ctx) })
			}
			g.Go(func() error { return srv.Run(ctx, server, app.Log, "food", hooks) })
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port or host:port (env ONION_HTTP_PORT)")
	return cmd
}

func newHTTPServer(app *bootstrap.App) (*http.Server, *commonhttp.RateLimiter) {
	sessions := authservice.NewJWTSessions(app.Config.JWTSecret, clock.NewRealClock(), app.Log)
	foodHandler := foodhttp.NewHandler(app.Services.Food, sessions, app.Config.RequestTimeout, app.Log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(app.Log, app.HealthChecks))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/api/food/", foodHandler)

	limiter := commonhttp.NewGeneralRateLimiter()
	handler := commonhttp.BuildBaseHandler("food", app.Log, limiter, mux)

	return srv.NewServer(srv.DefaultServerConfig(app.Config.HTTPPort), handler), limiter
}
