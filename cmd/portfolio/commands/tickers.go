package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// tickersCmd represents the tickers command
var tickersCmd = &cobra.Command{
	Use:   "tickers",
	Short: "Print the configured ticker universe",
	Long: `Prints the tickers the batch will process, in processing order.

The list comes from PORTFOLIO_TICKERS (comma-separated) or falls back
to the built-in portfolio.

Example:
  go run ./cmd/portfolio tickers`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		fmt.Printf("=== Portfolio Daily Tickers (%d) ===\n\n", len(cfg.Tickers))
		for i, ticker := range cfg.Tickers {
			fmt.Printf("%3d. %s\n", i+1, ticker)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tickersCmd)
}
