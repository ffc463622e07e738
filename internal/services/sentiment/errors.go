package sentiment

import "errors"

// ErrUnavailable covers every failure mode of the market-data feed: network
// errors, timeouts, non-2xx responses and malformed payloads. Callers map it
// to a zero adjustment and carry on.
var ErrUnavailable = errors.New("market data unavailable")
