package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vnquant/portfolio-daily/internal/external/simplize"
	"github.com/vnquant/portfolio-daily/internal/history"
	"github.com/vnquant/portfolio-daily/internal/output"
	"github.com/vnquant/portfolio-daily/internal/pipeline"
	"github.com/vnquant/portfolio-daily/internal/report"
	"github.com/vnquant/portfolio-daily/pkg/config"
	"github.com/vnquant/portfolio-daily/pkg/database"
	"github.com/vnquant/portfolio-daily/pkg/httputil"
	"github.com/vnquant/portfolio-daily/pkg/logger"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one batch pass over the configured tickers",
	Long: `Runs the full report pipeline once: for every configured ticker it
fetches the current price and the analyst reports, summarizes the
trailing one-year window, derives the valuation ratio, and writes
data.csv and index.html to the output directory.

Per-ticker failures are recorded in the row's Errors column; only a
failure to write the output files aborts the run.

Example:
  go run ./cmd/portfolio run
  go run ./cmd/portfolio run --out docs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if runOutputDir != "" {
			cfg.Output.Dir = runOutputDir
		}

		return runBatch(cmd.Context(), cfg, log)
	},
}

var runOutputDir string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runOutputDir, "out", "", "output directory (default from OUTPUT_DIR)")
}

// runBatch executes one full batch pass and writes the outputs. Shared
// by the run command and the scheduled daily job.
func runBatch(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	startTime := time.Now()

	log.WithFields(map[string]interface{}{
		"tickers": len(cfg.Tickers),
		"out":     cfg.Output.Dir,
	}).Info("Starting batch run")

	httpClient := httputil.New(log, cfg.Simplize.Timeout)
	pacer := httputil.NewPacer(cfg.Pacing.MinDelay, cfg.Pacing.MaxDelay)
	client := simplize.NewClient(cfg, httpClient, pacer, log)

	table, err := pipeline.New(cfg, client, client, pacer, log).Run(ctx)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	generatedAt := time.Now().UTC()

	csvPath := filepath.Join(cfg.Output.Dir, "data.csv")
	if err := output.WriteCSV(csvPath, table); err != nil {
		return err
	}

	htmlPath := filepath.Join(cfg.Output.Dir, "index.html")
	if err := output.WriteHTML(htmlPath, table, generatedAt); err != nil {
		return err
	}

	// Run history is best-effort: a missing or unreachable database
	// must not fail a run whose files are already on disk.
	if cfg.Database.URL != "" {
		if err := saveRunHistory(ctx, cfg, log, generatedAt, table); err != nil {
			log.WithError(err).Error("Failed to persist run history")
		}
	}

	log.WithFields(map[string]interface{}{
		"csv":      csvPath,
		"html":     htmlPath,
		"duration": time.Since(startTime),
	}).Info("Batch run finished")

	return nil
}

// saveRunHistory connects to Postgres and upserts the run's rows.
func saveRunHistory(ctx context.Context, cfg *config.Config, log *logger.Logger, runDate time.Time, table report.Table) error {
	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := history.NewRepository(db.Pool).SaveRun(ctx, runDate, table); err != nil {
		return err
	}

	log.WithField("run_date", runDate.Format("2006-01-02")).Info("Run history saved")
	return nil
}
