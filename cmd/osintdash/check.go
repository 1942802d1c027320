package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hakim/osintdash/internal/config"
	"github.com/hakim/osintdash/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configuration, database, and API credentials",
	Long: `Verify that the service is ready to run: the configuration file parses
and validates, the database is writable, and optional API credentials are
present in the environment.

Missing credentials are not errors; the affected collectors degrade
gracefully. A missing or invalid config file is.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Check\tStatus\tDetail")
		fmt.Fprintln(w, "-----\t------\t------")

		failed := false

		// Config file
		checkedCfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(w, "config\t[-]\t%v\n", err)
			failed = true
		} else {
			fmt.Fprintf(w, "config\t[+]\t%s\n", cfgFile)
		}

		// Database
		if checkedCfg != nil {
			store, err := storage.NewStore(checkedCfg.DBPath)
			if err != nil {
				fmt.Fprintf(w, "database\t[-]\t%v\n", err)
				failed = true
			} else {
				store.Close()
				fmt.Fprintf(w, "database\t[+]\t%s\n", checkedCfg.DBPath)
			}

			// Search directory
			if err := storage.EnsureDir(checkedCfg.SearchDir); err != nil {
				fmt.Fprintf(w, "search dir\t[-]\t%v\n", err)
				failed = true
			} else {
				fmt.Fprintf(w, "search dir\t[+]\t%s\n", checkedCfg.SearchDir)
			}
		}

		// Optional credentials
		credentials := []struct {
			env     string
			purpose string
		}{
			{"HIBP_API_KEY", "breach lookups"},
			{"WHOIS_API_KEY", "WHOIS registration data"},
		}
		for _, cred := range credentials {
			if os.Getenv(cred.env) != "" {
				fmt.Fprintf(w, "%s\t[+]\tset (%s)\n", cred.env, cred.purpose)
			} else {
				fmt.Fprintf(w, "%s\t[-]\tnot set, %s degraded\n", cred.env, cred.purpose)
			}
		}

		w.Flush()

		if failed {
			return fmt.Errorf("checks failed")
		}

		fmt.Println()
		fmt.Println("All required checks passed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
