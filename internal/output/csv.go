package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vnquant/portfolio-daily/internal/report"
)

// Columns is the output header, shared by the CSV file, the HTML table
// and the preview API.
var Columns = []string{
	"Stock Code",
	"Current Price",
	"Report Evaluation",
	"Diversity of Report Source",
	"Acceptable Purchase Price",
	"Ratio",
	"Reports (1Y)",
	"Errors",
}

// WriteCSV writes the table to path with raw (unformatted) numeric
// values. Missing values render as empty cells.
func WriteCSV(path string, table report.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, row := range table {
		record := []string{
			row.StockCode,
			rawFloat(row.CurrentPrice),
			rawFloat(row.ReportEvaluation),
			strconv.Itoa(row.SourceDiversity),
			rawFloat(row.AcceptablePrice),
			rawFloat(row.Ratio),
			strconv.Itoa(row.ReportCount),
			row.ErrorText(),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write CSV row for %s: %w", row.StockCode, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush CSV: %w", err)
	}
	return nil
}

// ReadCSV reads a table previously written by WriteCSV. Used by the
// preview server when no database is configured.
func ReadCSV(path string) (report.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file %s is empty", path)
	}

	table := make(report.Table, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(Columns) {
			return nil, fmt.Errorf("CSV row has %d columns, want %d", len(record), len(Columns))
		}

		row := report.Row{
			StockCode:        record[0],
			CurrentPrice:     parseFloat(record[1]),
			ReportEvaluation: parseFloat(record[2]),
			AcceptablePrice:  parseFloat(record[4]),
			Ratio:            parseFloat(record[5]),
		}
		row.SourceDiversity, _ = strconv.Atoi(record[3])
		row.ReportCount, _ = strconv.Atoi(record[6])
		if record[7] != "" {
			row.Errors = strings.Split(record[7], "; ")
		}

		table = append(table, row)
	}
	return table, nil
}

// rawFloat renders a float at full precision, empty when missing.
func rawFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
