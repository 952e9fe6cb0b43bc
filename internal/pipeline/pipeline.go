package pipeline

import (
	"context"
	"time"

	"github.com/vnquant/portfolio-daily/internal/external/simplize"
	"github.com/vnquant/portfolio-daily/internal/report"
	"github.com/vnquant/portfolio-daily/pkg/config"
	"github.com/vnquant/portfolio-daily/pkg/httputil"
	"github.com/vnquant/portfolio-daily/pkg/logger"
)

// QuoteFetcher returns the latest close price for a ticker.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, ticker string) (float64, error)
}

// ReportFetcher returns all analyst reports for a ticker.
type ReportFetcher interface {
	FetchAllReports(ctx context.Context, ticker string) ([]simplize.Report, error)
}

// Pipeline runs the per-ticker batch: quote fetch, paginated report
// fetch, window summary, valuation. Tickers are processed one at a
// time; a failing ticker gets error tags on its row and the batch
// moves on.
type Pipeline struct {
	quotes  QuoteFetcher
	reports ReportFetcher
	pacer   *httputil.Pacer
	logger  *logger.Logger

	tickers       []string
	reportFactor  float64
	bargainFactor float64
	lookbackYears int

	now func() time.Time
}

// New creates a pipeline from config and fetchers.
func New(cfg *config.Config, quotes QuoteFetcher, reports ReportFetcher, pacer *httputil.Pacer, log *logger.Logger) *Pipeline {
	return &Pipeline{
		quotes:        quotes,
		reports:       reports,
		pacer:         pacer,
		logger:        log,
		tickers:       cfg.Tickers,
		reportFactor:  cfg.Report.ReportFactor,
		bargainFactor: cfg.Report.BargainFactor,
		lookbackYears: cfg.Report.LookbackYears,
		now:           time.Now,
	}
}

// Run processes every configured ticker in order and returns the
// output table. It fails only when the context is cancelled; all
// per-ticker failures end up as error tags on the affected rows.
func (p *Pipeline) Run(ctx context.Context) (report.Table, error) {
	table := make(report.Table, 0, len(p.tickers))

	for _, ticker := range p.tickers {
		if err := ctx.Err(); err != nil {
			return table, err
		}

		row := p.processTicker(ctx, ticker)
		table = append(table, row)

		p.logger.WithFields(map[string]interface{}{
			"ticker":  ticker,
			"reports": row.ReportCount,
			"errors":  row.ErrorText(),
		}).Debug("Processed ticker")
	}

	p.logger.WithField("tickers", len(table)).Info("Batch run completed")
	return table, nil
}

// processTicker runs the full pipeline for one ticker.
func (p *Pipeline) processTicker(ctx context.Context, ticker string) report.Row {
	row := report.Row{StockCode: ticker}

	price, err := p.quotes.FetchQuote(ctx, ticker)
	if err != nil {
		p.logger.WithError(err).WithField("ticker", ticker).Warn("Price fetch failed")
		row.Errors = append(row.Errors, report.TagPriceErrPrefix+errKind(err))
	} else {
		row.CurrentPrice = &price
	}

	// Politeness pause between the quote and report endpoints
	if err := p.pacer.Wait(ctx); err != nil {
		return row
	}

	raw, err := p.reports.FetchAllReports(ctx, ticker)
	if err != nil {
		p.logger.WithError(err).WithField("ticker", ticker).Warn("Report fetch failed")
		row.Errors = append(row.Errors, report.TagReportErrPrefix+errKind(err))
		return row
	}

	stats := report.Summarize(raw, p.lookbackYears, p.now())
	row.SourceDiversity = stats.SourceDiversity
	row.ReportCount = stats.ReportCount

	if stats.AverageTarget == nil {
		row.Errors = append(row.Errors, report.TagNoWindowData)
		return row
	}

	valuation := report.Evaluate(row.CurrentPrice, stats, p.reportFactor, p.bargainFactor)
	row.ReportEvaluation = valuation.ReportEvaluation
	row.AcceptablePrice = valuation.AcceptablePrice
	row.Ratio = valuation.Ratio

	return row
}
