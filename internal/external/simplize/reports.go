package simplize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// issueDateLayout is the provider's report date format (DD/MM/YYYY).
const issueDateLayout = "02/01/2006"

// reportListKeys is the ordered fallback for where the provider nests
// the report array. Schema drift stays localized to this list.
var reportListKeys = []string{"data", "items", "result"}

// Report is one analyst report record as returned by the provider.
// TargetPrice is kept raw because the API serves it as a number, a
// numeric string, null, or not at all.
type Report struct {
	IssueDate   string          `json:"issueDate"`
	TargetPrice json.RawMessage `json:"targetPrice"`
	Source      *string         `json:"source"`
}

// IssuedOn parses the report's issue date. Records with a missing or
// malformed date report false and are left out of any time window.
func (r Report) IssuedOn() (time.Time, bool) {
	raw := strings.TrimSpace(r.IssueDate)
	if raw == "" {
		return time.Time{}, false
	}

	issued, err := time.ParseInLocation(issueDateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return issued, true
}

// TargetValue coerces the target price to a float. It reports false
// for missing, null, non-numeric or non-finite values.
func (r Report) TargetValue() (float64, bool) {
	raw := bytes.TrimSpace(r.TargetPrice)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, true
		}
	}

	return 0, false
}

// FetchReportsPage fetches a single page of analyst reports.
func (c *Client) FetchReportsPage(ctx context.Context, ticker string, page, size int) ([]Report, error) {
	params := url.Values{}
	params.Set("ticker", ticker)
	params.Set("isWL", "false")
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))

	referer := fmt.Sprintf("https://simplize.vn/co-phieu/%s/bao-cao", ticker)
	req, err := c.newRequest(ctx, "/api/company/analysis-report/list", params, referer)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := c.httpClient.GetJSON(req, &envelope); err != nil {
		return nil, fmt.Errorf("fetch reports page %d for %s: %w", page, ticker, err)
	}

	return extractReportList(envelope), nil
}

// extractReportList returns the first non-empty report array among the
// known envelope keys.
func extractReportList(envelope map[string]json.RawMessage) []Report {
	for _, key := range reportListKeys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}

		var rows []Report
		if err := json.Unmarshal(raw, &rows); err != nil {
			continue
		}
		if len(rows) > 0 {
			return rows
		}
	}
	return nil
}

// FetchAllReports fetches analyst reports page by page until an empty
// page, a short page or the page cap. Any page failure fails the whole
// fetch; pages already gathered are discarded.
func (c *Client) FetchAllReports(ctx context.Context, ticker string) ([]Report, error) {
	var all []Report

	for page := 0; page < c.maxPages; page++ {
		rows, err := c.FetchReportsPage(ctx, ticker, page, c.pageSize)
		if err != nil {
			return nil, err
		}

		if len(rows) == 0 {
			break
		}

		all = append(all, rows...)

		// A partial page is the last page
		if len(rows) < c.pageSize {
			break
		}

		if page+1 < c.maxPages {
			if err := c.pacer.Wait(ctx); err != nil {
				return nil, err
			}
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"count":  len(all),
	}).Debug("Fetched analyst reports")

	return all, nil
}
