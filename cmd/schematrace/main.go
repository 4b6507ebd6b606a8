// Package main is the entry point for the schematrace CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schematrace/schematrace/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errFindings signals that a checker found error-level findings while
// running in CI mode. It maps to exit code 1 without usage output.
var errFindings = errors.New("error-level findings detected")

func main() {
	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schematrace",
		Short: "Schema and traceability static analysis",
		Long: `Schematrace statically analyzes a web application's schema-definition
layer and source tree: it checks foreign-key type consistency, diffs table
usage against table declarations, and merges requirement annotations with
baseline documents into a traceability report. It never executes the
analyzed code and never connects to a database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(schemaCmd())
	cmd.AddCommand(coverageCmd())
	cmd.AddCommand(traceCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from a .env file and environment
// variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
