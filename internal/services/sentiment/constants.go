package sentiment

import "time"

// Default configuration values
const (
	DefaultTimeout  = 9 * time.Second
	DefaultAsset    = "ethereum"
	DefaultCacheTTL = time.Minute
)

// Price level above which the stability bonus applies.
const stablePriceFloor = 4000

// ReasonUnavailable is recorded in the scoring breakdown when the feed
// could not be reached.
const ReasonUnavailable = "API unavailable"

// Cache key for the feed snapshot.
const cacheKey = "sentiment:snapshot"
