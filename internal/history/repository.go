package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vnquant/portfolio-daily/internal/report"
)

// Repository persists batch runs so past valuations can be compared.
// Persistence is optional: the batch runs fine without a database.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new run-history repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveRun upserts every row of a run keyed on (run_date, stock_code).
// Re-running the batch on the same day overwrites that day's rows.
func (r *Repository) SaveRun(ctx context.Context, runDate time.Time, table report.Table) error {
	query := `
		INSERT INTO report.daily_rows (
			run_date, stock_code, current_price, report_evaluation,
			source_diversity, acceptable_price, ratio, report_count, errors
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (run_date, stock_code) DO UPDATE SET
			current_price = EXCLUDED.current_price,
			report_evaluation = EXCLUDED.report_evaluation,
			source_diversity = EXCLUDED.source_diversity,
			acceptable_price = EXCLUDED.acceptable_price,
			ratio = EXCLUDED.ratio,
			report_count = EXCLUDED.report_count,
			errors = EXCLUDED.errors
	`

	day := runDate.UTC().Truncate(24 * time.Hour)

	for _, row := range table {
		_, err := r.pool.Exec(ctx, query,
			day,
			row.StockCode,
			row.CurrentPrice,
			row.ReportEvaluation,
			row.SourceDiversity,
			row.AcceptablePrice,
			row.Ratio,
			row.ReportCount,
			row.ErrorText(),
		)
		if err != nil {
			return fmt.Errorf("save row for %s: %w", row.StockCode, err)
		}
	}

	return nil
}

// LatestRunDate returns the most recent persisted run date.
func (r *Repository) LatestRunDate(ctx context.Context) (time.Time, error) {
	var day time.Time
	err := r.pool.QueryRow(ctx, `SELECT MAX(run_date) FROM report.daily_rows`).Scan(&day)
	if err != nil {
		return time.Time{}, fmt.Errorf("query latest run date: %w", err)
	}
	return day, nil
}

// GetRun retrieves the rows of a persisted run, in stock code order.
func (r *Repository) GetRun(ctx context.Context, runDate time.Time) (report.Table, error) {
	query := `
		SELECT stock_code, current_price, report_evaluation, source_diversity,
		       acceptable_price, ratio, report_count, errors
		FROM report.daily_rows
		WHERE run_date = $1
		ORDER BY stock_code ASC
	`

	rows, err := r.pool.Query(ctx, query, runDate.UTC().Truncate(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("query run rows: %w", err)
	}
	defer rows.Close()

	var table report.Table
	for rows.Next() {
		var (
			row     report.Row
			errText string
		)
		if err := rows.Scan(
			&row.StockCode, &row.CurrentPrice, &row.ReportEvaluation,
			&row.SourceDiversity, &row.AcceptablePrice, &row.Ratio,
			&row.ReportCount, &errText,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		if errText != "" {
			row.Errors = []string{errText}
		}
		table = append(table, row)
	}
	return table, rows.Err()
}

// LatestTable returns the rows of the most recent run and its date.
func (r *Repository) LatestTable(ctx context.Context) (report.Table, time.Time, error) {
	day, err := r.LatestRunDate(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}

	table, err := r.GetRun(ctx, day)
	if err != nil {
		return nil, time.Time{}, err
	}
	return table, day, nil
}
