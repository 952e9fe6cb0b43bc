package output

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/vnquant/portfolio-daily/internal/report"
)

// pageTemplate is the static searchable report page. The search box
// filters rows client-side by substring over any column.
const pageTemplate = `<!doctype html>
<html>
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>Portfolio Daily</title>
  <style>
    body { font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial; padding: 16px; }
    .meta { color: #555; margin-bottom: 12px; }
    input { padding: 8px; width: 320px; max-width: 100%; }
    table { border-collapse: collapse; width: 100%; margin-top: 12px; }
    th, td { border: 1px solid #ddd; padding: 8px; font-size: 14px; }
    th { position: sticky; top: 0; background: #f7f7f7; }
    tr:hover { outline: 2px solid #ccc; }
    .hint { margin-top: 8px; color: #666; font-size: 13px; }
  </style>
</head>
<body>
  <h2>Portfolio Daily</h2>
  <div class="meta">Generated at: <b>{{.GeneratedAt}}</b> (UTC)</div>

  <input id="q" placeholder="Search ticker (e.g., VNM)..." oninput="filterTable()" />
  <div class="hint">Highlight: Purple (Ratio &le; 0.8) &bull; Green (0.8 &lt; Ratio &lt; 0.9)</div>

  <table id="t">
    <thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>
{{range .Rows}}      <tr{{if .Color}} style="background:{{.Color}};font-weight:700;"{{end}}>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}    </tbody>
  </table>

<script>
function filterTable() {
  const q = document.getElementById('q').value.toLowerCase();
  const rows = document.querySelectorAll('#t tbody tr');
  rows.forEach(r => {
    const text = r.innerText.toLowerCase();
    r.style.display = text.includes(q) ? '' : 'none';
  });
}
</script>
</body>
</html>
`

var page = template.Must(template.New("portfolio").Parse(pageTemplate))

type displayRow struct {
	Cells []string
	Color string
}

type pageData struct {
	GeneratedAt string
	Columns     []string
	Rows        []displayRow
}

// RenderHTML writes the report page for the table, using the display
// formatting and highlight rules.
func RenderHTML(w io.Writer, table report.Table, generatedAt time.Time) error {
	data := pageData{
		GeneratedAt: generatedAt.UTC().Format("2006-01-02 15:04:05"),
		Columns:     Columns,
		Rows:        make([]displayRow, 0, len(table)),
	}

	for _, row := range table {
		data.Rows = append(data.Rows, displayRow{
			Cells: []string{
				row.StockCode,
				report.FormatPrice(row.CurrentPrice),
				report.FormatPrice(row.ReportEvaluation),
				strconv.Itoa(row.SourceDiversity),
				report.FormatPrice(row.AcceptablePrice),
				report.FormatRatio(row.Ratio),
				strconv.Itoa(row.ReportCount),
				row.ErrorText(),
			},
			Color: report.TierForRatio(row.Ratio).Color(),
		})
	}

	return page.Execute(w, data)
}

// WriteHTML renders the report page to path.
func WriteHTML(path string, table report.Table, generatedAt time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create HTML file: %w", err)
	}
	defer f.Close()

	if err := RenderHTML(f, table, generatedAt); err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}
	return nil
}
