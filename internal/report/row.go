package report

import "strings"

// Error tags appended to a row when a stage fails. Kinds distinguish
// the underlying cause (timeout, status_4xx, decode, ...).
const (
	TagPriceErrPrefix  = "price_err:"
	TagReportErrPrefix = "report_err:"
	TagNoWindowData    = "no_1y_reports_or_no_targetPrice"
)

// Row is the final output record for one ticker. It is filled stage by
// stage and immutable once appended to the table.
type Row struct {
	StockCode        string
	CurrentPrice     *float64
	ReportEvaluation *float64
	SourceDiversity  int
	AcceptablePrice  *float64
	Ratio            *float64
	ReportCount      int
	Errors           []string
}

// ErrorText joins the row's error tags for display.
func (r Row) ErrorText() string {
	return strings.Join(r.Errors, "; ")
}

// Table is the ordered output, one row per ticker in input order.
type Table []Row
