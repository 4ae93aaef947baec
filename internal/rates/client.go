// Package rates polls a public currency-quote API and serves the last-known
// bid/ask for display alongside financial goals. Quotes are advisory: a
// failed refresh keeps the stale quote available instead of surfacing an
// error.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vistonomade/pkg/types"
)

// Client fetches quotes from an AwesomeAPI-style endpoint
// (GET {base}/{PAIR} returning a keyed object with string bid/ask fields).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type quotePayload struct {
	Bid        string `json:"bid"`
	Ask        string `json:"ask"`
	CreateDate string `json:"create_date"`
}

// Quote fetches the current bid/ask for a pair such as "EUR-BRL".
func (c *Client) Quote(ctx context.Context, pair string) (*types.ExchangeRate, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, pair)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build quote request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch quote %s: %w", pair, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("quote %s returned %d: %s", pair, resp.StatusCode, string(body))
	}

	// The API keys the payload by the pair without the dash, e.g. "EURBRL".
	var payload map[string]quotePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode quote %s: %w", pair, err)
	}

	quote, ok := payload[strings.ReplaceAll(pair, "-", "")]
	if !ok {
		return nil, fmt.Errorf("quote %s missing from response", pair)
	}

	bid, err := strconv.ParseFloat(quote.Bid, 64)
	if err != nil {
		return nil, fmt.Errorf("parse bid %q: %w", quote.Bid, err)
	}
	ask, err := strconv.ParseFloat(quote.Ask, 64)
	if err != nil {
		return nil, fmt.Errorf("parse ask %q: %w", quote.Ask, err)
	}

	return &types.ExchangeRate{
		Pair:      pair,
		Bid:       bid,
		Ask:       ask,
		FetchedAt: time.Now(),
	}, nil
}
