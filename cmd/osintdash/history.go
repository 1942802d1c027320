package main

import (
	"fmt"
	"strings"

	"github.com/hakim/osintdash/internal/models"
	"github.com/hakim/osintdash/internal/storage"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show search history for a query",
	Long: `Display a formatted table of past searches for a query.

Searches are listed newest-first. Each row shows the search ID (truncated),
start time, status, how many platforms matched, and the risk score.

Use --limit to cap the number of rows shown (default: 10), or --id to show
the full stored record for a single search.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Step 1: Get flags
		query, _ := cmd.Flags().GetString("query")
		id, _ := cmd.Flags().GetString("id")
		limit, _ := cmd.Flags().GetInt("limit")

		// Step 2: Config check
		if cfg == nil {
			return fmt.Errorf("config not loaded. Run 'osintdash init' first to create config")
		}

		// Step 3: Open bbolt store
		store, err := storage.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		// Step 4: Detail view when a search ID is given
		if id != "" {
			return printSearchDetail(store, id)
		}
		if query == "" {
			return fmt.Errorf("either --query or --id is required")
		}

		// Step 5: List searches (sorted newest-first by store.ListSearches)
		searches, err := store.ListSearches(query)
		if err != nil {
			return fmt.Errorf("listing searches for %s: %w", query, err)
		}

		if len(searches) == 0 {
			fmt.Printf("No search history found for %s\n", query)
			return nil
		}

		// Step 6: Apply limit
		if limit > 0 && len(searches) > limit {
			searches = searches[:limit]
		}

		// Step 7: Print formatted table
		const separator = "────────────────────────────────────────────────────────────────────────"

		fmt.Printf("\nSearch History for %s\n", query)
		fmt.Println(separator)
		fmt.Printf("  %-3s  %-12s  %-20s  %-10s  %-9s  %s\n", "#", "Search ID", "Started", "Status", "Platforms", "Risk")
		fmt.Println(separator)

		for i, search := range searches {
			shortID := shortSearchID(search.ID)
			started := search.StartedAt.UTC().Format("2006-01-02 15:04")
			status := formatStatus(search.Status)

			fmt.Printf("  %-3d  %-12s  %-20s  %-10s  %-9d  %d/100\n",
				i+1, shortID, started, status, search.PlatformsFound, search.RiskScore)
		}

		fmt.Println(separator)
		fmt.Printf("Total: %d search(es)\n\n", len(searches))

		return nil
	},
}

// printSearchDetail prints the full stored record for one search ID.
func printSearchDetail(store *storage.Store, id string) error {
	search, err := store.GetSearch(id)
	if err != nil {
		return fmt.Errorf("loading search %s: %w", id, err)
	}
	if search == nil {
		return fmt.Errorf("no search found with ID %s", id)
	}

	fmt.Printf("\nSearch %s\n", search.ID)
	fmt.Printf("  Query:      %s\n", search.Query)
	fmt.Printf("  Type:       %s\n", search.Type)
	fmt.Printf("  Started:    %s\n", search.StartedAt.UTC().Format("2006-01-02 15:04:05"))
	if search.CompletedAt != nil {
		fmt.Printf("  Completed:  %s\n", search.CompletedAt.UTC().Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("  Status:     %s\n", formatStatus(search.Status))
	fmt.Printf("  Platforms:  %d\n", search.PlatformsFound)
	fmt.Printf("  Risk score: %d/100\n", search.RiskScore)
	if len(search.APIsUsed) > 0 {
		fmt.Printf("  APIs used:  %s\n", strings.Join(search.APIsUsed, ", "))
	}
	fmt.Println()
	return nil
}

// shortSearchID returns the first 8 characters of a UUID followed by "..."
// for compact table display. Falls back to the full ID when shorter.
func shortSearchID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

func formatStatus(status models.SearchStatus) string {
	switch status {
	case models.StatusComplete:
		return "complete"
	case models.StatusFailed:
		return "FAILED"
	case models.StatusRunning:
		return "running"
	}
	return string(status)
}

func init() {
	historyCmd.Flags().StringP("query", "q", "", "query to show history for")
	historyCmd.Flags().String("id", "", "show the full record for one search ID")
	historyCmd.Flags().Int("limit", 10, "maximum number of rows to show")
	rootCmd.AddCommand(historyCmd)
}
