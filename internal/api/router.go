package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vnquant/portfolio-daily/internal/report"
	"github.com/vnquant/portfolio-daily/pkg/logger"
)

// TableProvider supplies the latest generated table, either from the
// CSV on disk or from the run-history database.
type TableProvider interface {
	LatestTable(ctx context.Context) (report.Table, time.Time, error)
}

// NewRouter creates and configures the HTTP router: a health check,
// the latest table as JSON, and the static report files.
func NewRouter(tables TableProvider, staticDir string, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthCheckHandler).Methods("GET")
	r.HandleFunc("/api/table", tableHandler(tables, log)).Methods("GET")

	// Generated report files (index.html, data.csv)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// tableRow is the JSON shape of one output row. Missing numerics
// marshal as null.
type tableRow struct {
	StockCode        string   `json:"stock_code"`
	CurrentPrice     *float64 `json:"current_price"`
	ReportEvaluation *float64 `json:"report_evaluation"`
	SourceDiversity  int      `json:"source_diversity"`
	AcceptablePrice  *float64 `json:"acceptable_price"`
	Ratio            *float64 `json:"ratio"`
	ReportCount      int      `json:"report_count"`
	Errors           string   `json:"errors,omitempty"`
	Tier             string   `json:"tier,omitempty"`
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "portfolio-daily",
	})
}

// tableHandler serves the latest run as JSON.
func tableHandler(tables TableProvider, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, generatedAt, err := tables.LatestTable(r.Context())
		if err != nil {
			log.WithError(err).Error("Failed to load latest table")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "no generated report available",
			})
			return
		}

		rows := make([]tableRow, 0, len(table))
		for _, row := range table {
			rows = append(rows, tableRow{
				StockCode:        row.StockCode,
				CurrentPrice:     row.CurrentPrice,
				ReportEvaluation: row.ReportEvaluation,
				SourceDiversity:  row.SourceDiversity,
				AcceptablePrice:  row.AcceptablePrice,
				Ratio:            row.Ratio,
				ReportCount:      row.ReportCount,
				Errors:           row.ErrorText(),
				Tier:             string(report.TierForRatio(row.Ratio)),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"generated_at": generatedAt.UTC().Format(time.RFC3339),
			"rows":         rows,
		})
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
