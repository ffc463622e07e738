/*
Package scoring computes a 0-100 credit risk score for trade invoices.

The engine is pure: given the same invoice attributes, the same clock and the
same market snapshot it always produces the same score. Factors are additive
and independent, starting from a neutral base of 50:

  - Debtor reputation: +30 when the debtor matches the trusted-company list
  - Face value tier: -10 / +10 / -10 depending on the amount band
  - Due-date horizon: -50 overdue, -20 imminent, +15 optimal, -10 too far out
  - Velocity: -5 when the annualized value is implausibly high
  - Market sentiment: [-20, +20] from the sentiment provider, 0 when the
    feed is unavailable

The raw factor sum is clamped to [0, 100] once, at the end. Intermediate sums
may leave the range; that is deliberate and matches the deployed scorer.

Usage:

	engine := scoring.NewEngine(scoring.WithSentimentProvider(provider))
	result, err := engine.ComputeRiskScore(ctx, input)

The Execute method is the oracle compute boundary: it accepts the positional
string arguments [invoiceId, debtorName, faceValueWei, dueDate] and returns
the 64-byte ABI-encoded (success, score) response.
*/
package scoring
