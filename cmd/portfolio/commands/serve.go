package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vnquant/portfolio-daily/internal/api"
	"github.com/vnquant/portfolio-daily/internal/history"
	"github.com/vnquant/portfolio-daily/pkg/database"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated report locally",
	Long: `Starts a local preview server for the generated report.

Endpoints:
  GET /health      - health check
  GET /api/table   - latest run as JSON
  GET /            - static report files (index.html, data.csv)

When DATABASE_URL is configured the table is read from run history,
otherwise from data.csv in the output directory.

Example:
  go run ./cmd/portfolio serve
  go run ./cmd/portfolio serve --port 8099`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "server port (default from PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if servePort != "" {
		cfg.Port = servePort
	}

	var tables api.TableProvider = api.NewCSVProvider(cfg.Output.Dir)

	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		tables = history.NewRepository(db.Pool)
		log.Info("Serving table from run history database")
	}

	router := api.NewRouter(tables, cfg.Output.Dir, log)
	server := api.New(cfg, log, router)

	// Graceful shutdown on interrupt
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
		log.Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
