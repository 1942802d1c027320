package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hakim/osintdash/internal/ratelimit"
	"github.com/hakim/osintdash/internal/storage"
	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show daily API quota usage",
	Long: `Display the current day's usage against the daily limit for every
configured external API. Counters reset automatically at midnight local
time; use 'osintdash reset' to clear them manually.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Step 1: Config check
		if cfg == nil {
			return fmt.Errorf("config not loaded. Run 'osintdash init' first to create config")
		}

		// Step 2: Open database
		store, err := storage.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		// Step 3: Build limiter and read snapshots
		limiter := ratelimit.New(cfg.APIs(), store)
		usage := limiter.UsageSnapshotAll()

		// Step 4: Print formatted table
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "API\tStatus\tUsed\tLimit\tUsage")
		fmt.Fprintln(w, "---\t------\t----\t-----\t-----")

		for _, api := range usage {
			status := "enabled"
			if !api.Config.Enabled {
				status = "disabled"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.0f%%\n",
				api.Config.Name,
				status,
				api.Usage.Current,
				api.Usage.Limit,
				api.Usage.Percentage)
		}

		w.Flush()
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset daily API usage counters",
	Long: `Clear the persisted usage counters. With --api, only that API's
counter is reset; otherwise every counter is cleared.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey, _ := cmd.Flags().GetString("api")

		if cfg == nil {
			return fmt.Errorf("config not loaded. Run 'osintdash init' first to create config")
		}

		store, err := storage.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		limiter := ratelimit.New(cfg.APIs(), store)
		if apiKey != "" && !limiter.Configured(apiKey) {
			return fmt.Errorf("unknown API: %s", apiKey)
		}
		if err := limiter.Reset(apiKey); err != nil {
			return fmt.Errorf("resetting usage: %w", err)
		}

		if apiKey != "" {
			fmt.Printf("[+] Usage counter reset for %s\n", apiKey)
		} else {
			fmt.Println("[+] All usage counters reset")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().String("api", "", "reset only this API's counter")
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(resetCmd)
}
