package sentiment

import "context"

// Sentiment is one snapshot of the market-data feed.
type Sentiment struct {
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
	MarketCap float64 `json:"market_cap"`
}

// Provider fetches current market sentiment. Implementations must return
// ErrUnavailable (or a wrapping error) on any failure rather than panic.
type Provider interface {
	Fetch(ctx context.Context) (*Sentiment, error)
}
