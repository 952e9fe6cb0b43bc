package report

import (
	"time"

	"github.com/vnquant/portfolio-daily/internal/external/simplize"
)

// Stats summarizes the analyst reports for one ticker within the
// lookback window. AverageTarget is nil when no report in the window
// carried a usable target price.
type Stats struct {
	AverageTarget   *float64
	SourceDiversity int
	ReportCount     int
}

// Summarize filters reports to the trailing lookback window ending at
// today and derives the window statistics.
//
// Records whose issue date is missing or unparseable are excluded from
// the window entirely. A record inside the window with an invalid
// target price still counts toward ReportCount and SourceDiversity,
// just not toward the average.
func Summarize(reports []simplize.Report, lookbackYears int, today time.Time) Stats {
	if len(reports) == 0 {
		return Stats{}
	}

	day := today.UTC()
	cutoff := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(-lookbackYears, 0, 0)

	var (
		count   int
		numeric int
		sum     float64
		sources = make(map[string]struct{})
	)

	for _, r := range reports {
		issued, ok := r.IssuedOn()
		if !ok || issued.Before(cutoff) {
			continue
		}

		count++
		if r.Source != nil {
			sources[*r.Source] = struct{}{}
		}
		if v, ok := r.TargetValue(); ok {
			sum += v
			numeric++
		}
	}

	if count == 0 {
		return Stats{}
	}

	stats := Stats{
		SourceDiversity: len(sources),
		ReportCount:     count,
	}
	if numeric > 0 {
		avg := sum / float64(numeric)
		stats.AverageTarget = &avg
	}
	return stats
}
