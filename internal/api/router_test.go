package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnquant/portfolio-daily/internal/output"
	"github.com/vnquant/portfolio-daily/internal/report"
	"github.com/vnquant/portfolio-daily/pkg/config"
	"github.com/vnquant/portfolio-daily/pkg/logger"
)

type stubProvider struct {
	table report.Table
	at    time.Time
	err   error
}

func (p *stubProvider) LatestTable(ctx context.Context) (report.Table, time.Time, error) {
	return p.table, p.at, p.err
}

func floatPtr(v float64) *float64 { return &v }

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func TestHealthEndpoint(t *testing.T) {
	router := NewRouter(&stubProvider{}, t.TempDir(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestTableEndpoint(t *testing.T) {
	provider := &stubProvider{
		table: report.Table{
			{
				StockCode:        "VNM",
				CurrentPrice:     floatPtr(90),
				ReportEvaluation: floatPtr(110),
				Ratio:            floatPtr(90.0 / 110.0),
				ReportCount:      2,
			},
			{StockCode: "QTP", Errors: []string{report.TagNoWindowData}},
		},
		at: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}

	router := NewRouter(provider, t.TempDir(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/table", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		GeneratedAt string     `json:"generated_at"`
		Rows        []tableRow `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "2024-06-01T09:00:00Z", body.GeneratedAt)
	require.Len(t, body.Rows, 2)
	assert.Equal(t, "VNM", body.Rows[0].StockCode)
	assert.Equal(t, "medium", body.Rows[0].Tier)
	assert.Nil(t, body.Rows[1].CurrentPrice)
	assert.Equal(t, report.TagNoWindowData, body.Rows[1].Errors)
}

func TestTableEndpoint_NoData(t *testing.T) {
	provider := &stubProvider{err: fmt.Errorf("no runs yet")}
	router := NewRouter(provider, t.TempDir(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/table", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>report</html>"), 0o644))

	router := NewRouter(&stubProvider{}, dir, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "report")
}

func TestCSVProvider(t *testing.T) {
	dir := t.TempDir()

	table := report.Table{
		{StockCode: "FPT", CurrentPrice: floatPtr(120000), ReportCount: 3},
	}
	require.NoError(t, output.WriteCSV(filepath.Join(dir, "data.csv"), table))

	provider := NewCSVProvider(dir)
	got, at, err := provider.LatestTable(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "FPT", got[0].StockCode)
	assert.False(t, at.IsZero())
}

func TestCSVProvider_MissingFile(t *testing.T) {
	provider := NewCSVProvider(t.TempDir())
	_, _, err := provider.LatestTable(context.Background())
	require.Error(t, err)
}
