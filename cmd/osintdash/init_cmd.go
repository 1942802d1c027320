package main

import (
	"fmt"
	"os"

	"github.com/hakim/osintdash/internal/config"
	"github.com/hakim/osintdash/internal/storage"
	"github.com/spf13/cobra"
)

var (
	initForce bool
	initDir   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize osintdash with default configuration",
	Long: `Creates a default configuration file (osintdash.yaml), initializes the
search directory structure, and sets up the database for storing search
metadata and usage counters.

This is typically the first command you run when setting up osintdash.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := "osintdash.yaml"
		if initDir != "." {
			configPath = fmt.Sprintf("%s/osintdash.yaml", initDir)
		}

		// Check if config already exists
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("config file already exists at %s. Use --force to overwrite", configPath)
		}

		// Create default config
		if err := config.WriteDefault(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		fmt.Printf("Created %s with default configuration\n", configPath)

		// Load the config we just created to get paths
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Create search directory
		if err := storage.EnsureDir(cfg.SearchDir); err != nil {
			return fmt.Errorf("failed to create search directory: %w", err)
		}
		fmt.Printf("Created search directory: %s\n", cfg.SearchDir)

		// Initialize database
		store, err := storage.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer store.Close()
		fmt.Printf("Initialized database: %s\n", cfg.DBPath)

		// Print success message
		fmt.Println()
		fmt.Println("OSINTDash initialized successfully!")
		fmt.Println("Run 'osintdash check' to verify your setup, then 'osintdash serve'.")

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().StringVar(&initDir, "dir", ".", "output directory")
	rootCmd.AddCommand(initCmd)
}
