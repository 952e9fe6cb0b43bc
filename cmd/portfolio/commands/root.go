package commands

import (
	"github.com/spf13/cobra"

	"github.com/vnquant/portfolio-daily/pkg/config"
	"github.com/vnquant/portfolio-daily/pkg/logger"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio Daily - analyst-report valuation screener",
	Long: `Portfolio Daily

Pulls per-ticker pricing and analyst reports from Simplize, derives a
fair-value ratio per stock, and emits a CSV plus a static searchable
HTML report.

Usage:
  go run ./cmd/portfolio [command]

Examples:
  go run ./cmd/portfolio run
  go run ./cmd/portfolio schedule
  go run ./cmd/portfolio serve
  go run ./cmd/portfolio tickers`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads configuration and builds the logger, honoring the
// verbose flag.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, logger.New(cfg), nil
}
