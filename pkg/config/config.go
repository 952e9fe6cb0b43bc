package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	Env string // development, staging, production

	// Preview server
	Port string

	// Ticker universe, processed in order
	Tickers []string

	Report   ReportConfig
	Simplize SimplizeConfig
	Pacing   PacingConfig
	Output   OutputConfig
	Database DatabaseConfig

	// Cron expression for the schedule command (6-field, with seconds)
	Schedule string

	// Logging
	LogLevel  string
	LogFormat string
}

// ReportConfig holds the valuation parameters.
type ReportConfig struct {
	ReportFactor  float64 // discount applied to the average target price
	BargainFactor float64 // further discount for the buy-trigger price
	LookbackYears int
}

// SimplizeConfig holds the Simplize data provider configuration.
type SimplizeConfig struct {
	BaseURL  string
	PageSize int
	MaxPages int
	Timeout  time.Duration
}

// PacingConfig bounds the randomized pause between remote calls.
type PacingConfig struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// OutputConfig holds report output configuration.
type OutputConfig struct {
	Dir string
}

// DatabaseConfig holds PostgreSQL configuration. The database is
// optional: an empty URL disables run-history persistence.
type DatabaseConfig struct {
	URL             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// defaultTickers is the portfolio tracked when PORTFOLIO_TICKERS is not set.
var defaultTickers = []string{
	"MSN", "SAB", "VNM", "GVR", "MWG", "DGW", "FRT", "PNJ", "IMP", "DHG",
	"MBB", "VCB", "BID", "FOX", "FPT", "HPG", "DGC", "CTR", "VCG", "PC1",
	"GMD", "POW", "QTP",
	"VIC", "VHM", "DXG", "DIG", "KDH", "KDC", "KBC", "DPM", "PDR", "STB",
	"SHB", "SSI", "HUT", "VCI", "VJC", "GEX", "EIB", "PLX", "VRE", "VIX",
	"VND", "MCH", "VPL", "TCX", "NVL",
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env:     getEnv("ENV", "development"),
		Port:    getEnv("PORT", "8099"),
		Tickers: getEnvAsList("PORTFOLIO_TICKERS", defaultTickers),

		Report: ReportConfig{
			ReportFactor:  getEnvAsFloat("REPORT_FACTOR", 0.9),
			BargainFactor: getEnvAsFloat("BARGAIN_FACTOR", 0.8),
			LookbackYears: getEnvAsInt("LOOKBACK_YEARS", 1),
		},

		Simplize: SimplizeConfig{
			BaseURL:  getEnv("SIMPLIZE_BASE_URL", "https://api2.simplize.vn"),
			PageSize: getEnvAsInt("SIMPLIZE_PAGE_SIZE", 50),
			MaxPages: getEnvAsInt("SIMPLIZE_MAX_PAGES", 50),
			Timeout:  getEnvAsDuration("SIMPLIZE_TIMEOUT", "30s"),
		},

		Pacing: PacingConfig{
			MinDelay: getEnvAsDuration("REQUEST_MIN_DELAY", "100ms"),
			MaxDelay: getEnvAsDuration("REQUEST_MAX_DELAY", "400ms"),
		},

		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "docs"),
		},

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Schedule: getEnv("REPORT_SCHEDULE", "0 0 6 * * *"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are sane.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if len(c.Tickers) == 0 {
		return fmt.Errorf("ticker list must not be empty")
	}

	if c.Report.ReportFactor <= 0 || c.Report.BargainFactor <= 0 {
		return fmt.Errorf("report and bargain factors must be positive")
	}

	if c.Report.LookbackYears < 1 {
		return fmt.Errorf("LOOKBACK_YEARS must be at least 1")
	}

	if c.Simplize.PageSize < 1 || c.Simplize.MaxPages < 1 {
		return fmt.Errorf("page size and max pages must be at least 1")
	}

	if c.Pacing.MinDelay < 0 || c.Pacing.MaxDelay < c.Pacing.MinDelay {
		return fmt.Errorf("REQUEST_MAX_DELAY must be >= REQUEST_MIN_DELAY >= 0")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList parses a comma-separated environment variable.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}

	if len(values) == 0 {
		return defaultValue
	}
	return values
}
