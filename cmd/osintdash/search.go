package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hakim/osintdash/internal/aggregate"
	"github.com/hakim/osintdash/internal/models"
	"github.com/hakim/osintdash/internal/ratelimit"
	"github.com/hakim/osintdash/internal/report"
	"github.com/hakim/osintdash/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a one-shot OSINT search",
	Long: `Run the full aggregation pipeline for a single query without starting
the HTTP server.

Results are saved to:
  - {search_dir}/{query}_{timestamp}/reports/search.md (report)
  - {search_dir}/{query}_{timestamp}/raw/search.json (raw data)

Search metadata is persisted to the configured database and daily API
quotas are enforced the same way the server enforces them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Step 1: Get flags
		query, _ := cmd.Flags().GetString("query")
		queryType, _ := cmd.Flags().GetString("type")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		// Step 2: Config check
		if cfg == nil {
			return fmt.Errorf("config not loaded. Run 'osintdash init' first to create config")
		}

		// Step 3: Load .env and build logger
		_ = godotenv.Load()
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

		// Step 5: Check the search quota before doing any work
		limiter := ratelimit.New(cfg.APIs(), store)
		decision := limiter.CanCall("osint-search")
		if !decision.Allowed {
			return fmt.Errorf("%s", decision.Reason)
		}
		if err := limiter.RecordUsage("osint-search"); err != nil {
			fmt.Printf("[!] Warning: failed to record search usage: %v\n", err)
		}

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

		// Step 7: Create search directory
		startedAt := time.Now()
		searchDir, err := storage.CreateSearchDir(cfg.SearchDir, query, startedAt)
		if err != nil {
			return fmt.Errorf("creating search directory: %w", err)
		}

		// Step 8: Print progress
		fmt.Printf("[*] Starting %s search for %s\n", queryType, query)
		fmt.Printf("[*] Search directory: %s\n", searchDir)

		// Step 9: Run the search with a timeout
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := agg.Search(ctx, query, models.QueryType(queryType))
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		// Step 10: Save metadata; the record stays running until the
		// artifacts below are on disk
		if err := store.SaveSearch(result.Meta(models.StatusRunning)); err != nil {
			fmt.Printf("[!] Warning: failed to save search metadata: %v\n", err)
		}

		// Step 11: Print summary
		if result.Findings.PlatformsFound != nil {
			fmt.Printf("[+] Found on %d of %d platforms\n",
				*result.Findings.PlatformsFound, *result.Findings.PlatformsChecked)
		}
		fmt.Printf("[+] Overall risk score: %d/100\n", result.OverallRiskScore)

		// Step 12: Write markdown report
		reportPath := filepath.Join(searchDir, "reports", "search.md")
		if err := report.WriteSearchReport(result, reportPath); err != nil {
			// Warn but don't fail - raw data is still saved
			fmt.Printf("[!] Warning: failed to write report: %v\n", err)
		} else {
			fmt.Printf("[+] Report written to %s\n", reportPath)
		}

		// Step 13: Save raw output as JSON
		rawPath := filepath.Join(searchDir, "raw", "search.json")
		rawData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling raw results: %w", err)
		}
		if err := os.WriteFile(rawPath, rawData, 0644); err != nil {
			if uerr := store.UpdateSearchStatus(result.ID, models.StatusFailed); uerr != nil {
				fmt.Printf("[!] Warning: failed to update search status: %v\n", uerr)
			}
			return fmt.Errorf("writing raw results: %w", err)
		}
		fmt.Printf("[+] Raw data written to %s\n", rawPath)

		// Step 14: Mark the history record complete
		if err := store.UpdateSearchStatus(result.ID, models.StatusComplete); err != nil {
			fmt.Printf("[!] Warning: failed to update search status: %v\n", err)
		}

		return nil
	},
}

func init() {
	searchCmd.Flags().StringP("query", "q", "", "username, email address, or phone number to search")
	searchCmd.Flags().StringP("type", "t", "", "query type: username, email, or phone")
	searchCmd.Flags().Duration("timeout", 3*time.Minute, "overall search timeout")
	searchCmd.MarkFlagRequired("query")
	searchCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(searchCmd)
}
