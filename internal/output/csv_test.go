package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnquant/portfolio-daily/internal/report"
)

func floatPtr(v float64) *float64 { return &v }

func sampleTable() report.Table {
	return report.Table{
		{
			StockCode:        "VNM",
			CurrentPrice:     floatPtr(65300),
			ReportEvaluation: floatPtr(72000.5),
			SourceDiversity:  3,
			AcceptablePrice:  floatPtr(57600.4),
			Ratio:            floatPtr(0.9069),
			ReportCount:      7,
		},
		{
			StockCode:   "QTP",
			ReportCount: 0,
			Errors:      []string{"price_err:timeout", report.TagNoWindowData},
		},
	}
}

func TestWriteReadCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")

	require.NoError(t, WriteCSV(path, sampleTable()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := string(raw)
	assert.Contains(t, lines, "Stock Code,Current Price,Report Evaluation,Diversity of Report Source,Acceptable Purchase Price,Ratio,Reports (1Y),Errors")
	assert.Contains(t, lines, "VNM,65300,72000.5,3,57600.4,0.9069,7,")
	assert.Contains(t, lines, "QTP,,,0,,,0,price_err:timeout; no_1y_reports_or_no_targetPrice")

	got, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "VNM", got[0].StockCode)
	require.NotNil(t, got[0].CurrentPrice)
	assert.Equal(t, 65300.0, *got[0].CurrentPrice)
	require.NotNil(t, got[0].Ratio)
	assert.Equal(t, 0.9069, *got[0].Ratio)

	assert.Nil(t, got[1].CurrentPrice)
	assert.Nil(t, got[1].Ratio)
	assert.Equal(t, []string{"price_err:timeout", report.TagNoWindowData}, got[1].Errors)
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestReadCSV_ColumnMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	_, err := ReadCSV(path)
	require.Error(t, err)
}
