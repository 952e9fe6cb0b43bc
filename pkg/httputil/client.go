package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vnquant/portfolio-daily/pkg/logger"
)

// Client is an HTTP client wrapper with logging and JSON decoding.
// All remote requests go through this client. Failed requests are not
// retried: a batch run prefers a tagged per-ticker error over hammering
// the provider.
type Client struct {
	httpClient *http.Client
	logger     *logger.Logger
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.Code, e.URL)
}

// New creates a new HTTP client with the given timeout.
func New(log *logger.Logger, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

// Do executes the request with logging.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"duration": duration,
			"error":    err.Error(),
		}).Error("HTTP request failed")
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"method":      req.Method,
		"url":         req.URL.String(),
		"status_code": resp.StatusCode,
		"duration":    duration,
	}).Debug("HTTP request completed")

	return resp, nil
}

// GetJSON performs a GET request, checks for a 2xx status and decodes
// the JSON body into out.
func (c *Client) GetJSON(req *http.Request, out interface{}) error {
	resp, err := c.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, URL: req.URL.String()}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
