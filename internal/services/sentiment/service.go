// Package sentiment fetches external market data and turns it into a bounded
// risk-score adjustment. The feed is best-effort: every failure collapses to
// ErrUnavailable and a zero adjustment, never an aborted scoring call.
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"invox/internal/repositories/cache"
)

// HTTPProvider reads a CoinGecko-style price endpoint. The expected payload is
// {"<asset>": {"usd": n, "usd_24h_change": n, "usd_market_cap": n}}.
type HTTPProvider struct {
	client *http.Client
	url    string
	asset  string
}

// NewHTTPProvider creates a provider with a hard request timeout. A timeout of
// zero falls back to DefaultTimeout; the fetch must never hang a scoring call.
func NewHTTPProvider(url, asset string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if asset == "" {
		asset = DefaultAsset
	}
	return &HTTPProvider{
		client: &http.Client{Timeout: timeout},
		url:    url,
		asset:  asset,
	}
}

// Fetch performs one GET against the feed. Any failure returns ErrUnavailable.
func (p *HTTPProvider) Fetch(ctx context.Context) (*Sentiment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("Market data fetch failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Market data feed returned status %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload map[string]struct {
		USD          float64 `json:"usd"`
		USD24hChange float64 `json:"usd_24h_change"`
		USDMarketCap float64 `json:"usd_market_cap"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("Market data payload malformed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	asset, ok := payload[p.asset]
	if !ok {
		return nil, fmt.Errorf("%w: asset %q missing from payload", ErrUnavailable, p.asset)
	}

	return &Sentiment{
		Price:     asset.USD,
		Change24h: asset.USD24hChange,
		MarketCap: asset.USDMarketCap,
	}, nil
}

// Adjustment maps a sentiment snapshot to a score delta and a human-readable
// reason. A nil snapshot (feed unavailable) contributes nothing.
//
// The 24h-change table and the price-stability bonus are additive, so the
// result stays within [-20, +20]: the table tops out at ±15 and the +5 bonus
// only stacks on top of it.
func Adjustment(s *Sentiment) (int, string) {
	if s == nil {
		return 0, ReasonUnavailable
	}

	delta := 0
	switch {
	case s.Change24h > 10:
		delta = 15
	case s.Change24h > 5:
		delta = 10
	case s.Change24h > 2:
		delta = 5
	case s.Change24h < -10:
		delta = -15
	case s.Change24h < -5:
		delta = -10
	case s.Change24h < -2:
		delta = -5
	}

	if s.Price > stablePriceFloor {
		delta += 5
	}

	return delta, fmt.Sprintf("24h change %.2f%%, price %.2f", s.Change24h, s.Price)
}

// CachedProvider wraps a Provider with a short-lived cache so repeated scoring
// calls do not hammer the rate-limited feed. Cache faults fall through to the
// inner provider.
type CachedProvider struct {
	inner Provider
	cache *cache.Service
	ttl   time.Duration
}

func NewCachedProvider(inner Provider, c *cache.Service, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{inner: inner, cache: c, ttl: ttl}
}

func (p *CachedProvider) Fetch(ctx context.Context) (*Sentiment, error) {
	if p.cache != nil {
		var cached Sentiment
		if err := p.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	s, err := p.inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.SetJSON(ctx, cacheKey, s, p.ttl); err != nil {
			log.Printf("Failed to cache sentiment snapshot: %v", err)
		}
	}
	return s, nil
}
