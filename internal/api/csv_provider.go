package api

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vnquant/portfolio-daily/internal/output"
	"github.com/vnquant/portfolio-daily/internal/report"
)

// CSVProvider serves the latest table from the generated data.csv.
// Used when no run-history database is configured.
type CSVProvider struct {
	dir string
}

// NewCSVProvider creates a provider reading from the output directory.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{dir: dir}
}

// LatestTable reads data.csv; the file's modification time stands in
// for the generation timestamp.
func (p *CSVProvider) LatestTable(ctx context.Context) (report.Table, time.Time, error) {
	path := filepath.Join(p.dir, "data.csv")

	info, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("stat %s: %w", path, err)
	}

	table, err := output.ReadCSV(path)
	if err != nil {
		return nil, time.Time{}, err
	}

	return table, info.ModTime(), nil
}
