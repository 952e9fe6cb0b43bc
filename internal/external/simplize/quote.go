package simplize

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingPrice reports a quote response without a close price field.
var ErrMissingPrice = errors.New("quote response has no priceClose field")

// quoteEnvelope mirrors the historical quote response. PriceClose is a
// pointer so an absent field can be told apart from a zero price.
type quoteEnvelope struct {
	Data struct {
		PriceClose *float64 `json:"priceClose"`
	} `json:"data"`
}

// FetchQuote fetches the latest close price for a ticker.
func (c *Client) FetchQuote(ctx context.Context, ticker string) (float64, error) {
	referer := fmt.Sprintf("https://simplize.vn/co-phieu/%s", ticker)
	req, err := c.newRequest(ctx, "/api/historical/quote/"+ticker, nil, referer)
	if err != nil {
		return 0, err
	}

	var envelope quoteEnvelope
	if err := c.httpClient.GetJSON(req, &envelope); err != nil {
		return 0, fmt.Errorf("fetch quote for %s: %w", ticker, err)
	}

	if envelope.Data.PriceClose == nil {
		return 0, fmt.Errorf("fetch quote for %s: %w", ticker, ErrMissingPrice)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"price":  *envelope.Data.PriceClose,
	}).Debug("Fetched quote")

	return *envelope.Data.PriceClose, nil
}
