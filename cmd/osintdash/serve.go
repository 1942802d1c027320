package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hakim/osintdash/internal/aggregate"
	"github.com/hakim/osintdash/internal/ratelimit"
	"github.com/hakim/osintdash/internal/server"
	"github.com/hakim/osintdash/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Start the OSINT aggregation service.

The server exposes:
  POST /api/v1/search       run a search ({"query": "...", "type": "username|email|phone"})
  GET  /api/v1/usage        current daily quota usage per external API
  POST /api/v1/usage/reset  reset usage counters ({"api": "..."} or empty for all)
  GET  /health              liveness check

API credentials are read from the environment (a .env file is loaded if
present): HIBP_API_KEY for breach lookups, WHOIS_API_KEY for registration
data. Both are optional; the affected collectors degrade gracefully.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Step 1: Load .env for API credentials, if present
		_ = godotenv.Load()

		// Step 2: Config check
		if cfg == nil {
			return fmt.Errorf("config not loaded. Run 'osintdash init' first to create config")
		}

		// Step 3: Build logger
		logger, err := buildLogger(cfg.Log)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer logger.Sync()

		// Step 4: Open database
		store, err := storage.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		// Step 5: Build limiter over the persisted usage counters
		limiter := ratelimit.New(cfg.APIs(), store)

		// Step 6: Build aggregator
		agg := aggregate.New(aggregate.Config{
			ProfileTimeout: cfg.HTTP.ProfileTimeout,
			QuickTimeout:   cfg.HTTP.QuickTimeout,
			SiteTimeout:    cfg.HTTP.SiteTimeout,
			GeoIPInterval:  cfg.HTTP.GeoIPInterval,
			GeoIPMaxIPs:    cfg.HTTP.GeoIPMaxIPs,
			BreachAPIKey:   os.Getenv("HIBP_API_KEY"),
			WhoisAPIKey:    os.Getenv("WHOIS_API_KEY"),
		}, limiter, logger)

		// Step 7: Serve until interrupted
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(agg, limiter, store, logger)
		if err := srv.ListenAndServe(ctx, cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
