package types

import "time"

// ExchangeRate is one bid/ask quote for a currency pair, as returned by the
// public quote API. Stale quotes are kept and served when a refresh fails.
type ExchangeRate struct {
	Pair      string    `json:"pair"`
	Bid       float64   `json:"bid"`
	Ask       float64   `json:"ask"`
	FetchedAt time.Time `json:"fetched_at"`
}
