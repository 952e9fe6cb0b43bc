package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vnquant/portfolio-daily/internal/scheduler"
	"github.com/vnquant/portfolio-daily/pkg/config"
	"github.com/vnquant/portfolio-daily/pkg/logger"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the daily report on a cron schedule",
	Long: `Starts a daemon that regenerates the report on the configured cron
schedule (REPORT_SCHEDULE, 6-field with seconds, default 06:00 daily).

Example:
  go run ./cmd/portfolio schedule
  go run ./cmd/portfolio schedule --now`,
	RunE: runSchedule,
}

var scheduleRunNow bool

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().BoolVar(&scheduleRunNow, "now", false, "also run one batch immediately on startup")
}

// dailyReportJob regenerates the report outputs on schedule.
type dailyReportJob struct {
	cfg *config.Config
	log *logger.Logger
}

func (j *dailyReportJob) Name() string     { return "daily-report" }
func (j *dailyReportJob) Schedule() string { return j.cfg.Schedule }

func (j *dailyReportJob) Run(ctx context.Context) error {
	return runBatch(ctx, j.cfg, j.log)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sched := scheduler.New(log)
	job := &dailyReportJob{cfg: cfg, log: log}
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("add job: %w", err)
	}

	if scheduleRunNow {
		if err := sched.RunJobNow(job.Name()); err != nil {
			return err
		}
	}

	sched.Start()
	defer sched.Stop()

	// Block until interrupted
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received")
	return nil
}
