package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnquant/portfolio-daily/internal/report"
)

func TestRenderHTML(t *testing.T) {
	table := report.Table{
		{
			StockCode:        "MSN",
			CurrentPrice:     floatPtr(72000),
			ReportEvaluation: floatPtr(99000),
			SourceDiversity:  2,
			AcceptablePrice:  floatPtr(79200),
			Ratio:            floatPtr(72000.0 / 99000.0), // ~0.727, strong tier
			ReportCount:      4,
		},
		{
			StockCode:        "SAB",
			CurrentPrice:     floatPtr(90000),
			ReportEvaluation: floatPtr(110000),
			SourceDiversity:  1,
			AcceptablePrice:  floatPtr(88000),
			Ratio:            floatPtr(90000.0 / 110000.0), // ~0.818, medium tier
			ReportCount:      2,
		},
		{
			StockCode: "QTP",
			Errors:    []string{report.TagNoWindowData},
		},
	}

	var buf bytes.Buffer
	generatedAt := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, RenderHTML(&buf, table, generatedAt))
	html := buf.String()

	// Header and metadata
	assert.Contains(t, html, "<b>2024-06-01 09:30:00</b>")
	for _, col := range Columns {
		assert.Contains(t, html, "<th>"+col+"</th>")
	}

	// Formatted cells
	assert.Contains(t, html, "<td>72,000</td>")
	assert.Contains(t, html, "<td>0.727</td>")
	assert.Contains(t, html, "<td>0.818</td>")
	assert.Contains(t, html, "<td>no_1y_reports_or_no_targetPrice</td>")

	// Highlight styling per tier
	assert.Contains(t, html, `style="background:#6E0080;font-weight:700;"`)
	assert.Contains(t, html, `style="background:#00803E;font-weight:700;"`)

	// The unhighlighted row carries no style attribute
	qtpLine := ""
	for _, line := range strings.Split(html, "\n") {
		if strings.Contains(line, "QTP") {
			qtpLine = line
		}
	}
	require.NotEmpty(t, qtpLine)
	assert.NotContains(t, qtpLine, "style=")

	// Search box and legend
	assert.Contains(t, html, `id="q"`)
	assert.Contains(t, html, "filterTable()")
	assert.Contains(t, html, "Highlight: Purple")
}

func TestRenderHTML_EscapesCellContent(t *testing.T) {
	table := report.Table{
		{StockCode: "<script>alert(1)</script>"},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, table, time.Now()))

	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}
