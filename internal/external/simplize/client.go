package simplize

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vnquant/portfolio-daily/pkg/config"
	"github.com/vnquant/portfolio-daily/pkg/httputil"
	"github.com/vnquant/portfolio-daily/pkg/logger"
)

// Client handles communication with the Simplize web API.
// All Simplize calls go through this client.
type Client struct {
	httpClient *httputil.Client
	pacer      *httputil.Pacer
	logger     *logger.Logger
	baseURL    string
	pageSize   int
	maxPages   int
}

// NewClient creates a new Simplize API client.
func NewClient(cfg *config.Config, httpClient *httputil.Client, pacer *httputil.Pacer, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		pacer:      pacer,
		logger:     log,
		baseURL:    cfg.Simplize.BaseURL,
		pageSize:   cfg.Simplize.PageSize,
		maxPages:   cfg.Simplize.MaxPages,
	}
}

// newRequest builds a GET request with the browser-like headers the
// provider expects. The referer mirrors the site page the call would
// originate from.
func (c *Client) newRequest(ctx context.Context, path string, params url.Values, referer string) (*http.Request, error) {
	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL = fmt.Sprintf("%s?%s", fullURL, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Origin", "https://simplize.vn")
	req.Header.Set("Referer", referer)

	return req, nil
}
