package main

import (
	"fmt"

	"github.com/hakim/osintdash/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "osintdash",
	Short: "OSINT aggregation service and dashboard backend",
	Long: `OSINTDash aggregates open-source intelligence about a username, email
address, or phone number from dozens of public platforms and free APIs.

It checks social media presence, paste-site exposure, data breaches, DNS
and WHOIS records, certificate transparency logs, web archives, and caller
reputation sites, then scores the subject's overall exposure.

Run it as an HTTP service with 'osintdash serve' or as a one-shot lookup
with 'osintdash search'. Free-tier API quotas are enforced per calendar
day and tracked across restarts.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		skipConfig := map[string]bool{
			"check":   true,
			"init":    true,
			"help":    true,
			"version": true,
		}

		if skipConfig[cmd.Name()] {
			return nil
		}

		// Load config if file exists
		if cfgFile != "" {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
		}

		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "osintdash.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")

	// Version flag
	rootCmd.Version = "0.1.0-dev"
}

// buildLogger constructs the zap logger from the configured level and
// format. --verbose forces debug regardless of config.
func buildLogger(logCfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(logCfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	if logCfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
