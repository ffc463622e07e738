package scoring

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"strings"
	"time"

	"invox/internal/codec"
	"invox/internal/services/sentiment"
)

// Engine computes invoice risk scores. Zero-value options give a pure engine
// with the system clock and no sentiment feed.
type Engine struct {
	sentiment sentiment.Provider
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithSentimentProvider attaches a market-sentiment feed. When absent the
// sentiment factor contributes 0.
func WithSentimentProvider(p sentiment.Provider) Option {
	return func(e *Engine) { e.sentiment = p }
}

// WithNow injects a fixed clock. Callers needing deterministic due-date
// distances must set this.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ParseInput converts the positional oracle arguments into an InvoiceInput.
// The order is fixed: [invoiceId, debtorName, faceValueWei, dueDate].
func ParseInput(args []string) (InvoiceInput, error) {
	if len(args) != 4 {
		return InvoiceInput{}, fmt.Errorf("%w: got %d", ErrArgCount, len(args))
	}

	wei, ok := new(big.Int).SetString(args[2], 10)
	if !ok {
		return InvoiceInput{}, fmt.Errorf("%w: %q", ErrInvalidFaceValue, args[2])
	}

	dueDate, err := strconv.ParseInt(args[3], 10, 64)
	if err != nil {
		return InvoiceInput{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, args[3])
	}

	return InvoiceInput{
		InvoiceID:    args[0],
		DebtorName:   args[1],
		FaceValueWei: wei,
		DueDate:      dueDate,
	}, nil
}

// ComputeRiskScore applies every factor to the input and clamps the sum to
// [0, 100]. Only the final sum is clamped; factors never mask each other.
func (e *Engine) ComputeRiskScore(ctx context.Context, in InvoiceInput) Result {
	score := baseScore
	breakdown := make([]Factor, 0, 6)
	apply := func(label string, delta int) {
		score += delta
		breakdown = append(breakdown, Factor{Label: label, Delta: delta})
	}

	// Factor 1: debtor reputation.
	if isTrusted(in.DebtorName) {
		apply("Trusted company", trustedCompanyBonus)
	} else {
		apply("Unknown company", 0)
	}

	// Factor 2: face value tier. Tiers are mutually exclusive, first match wins.
	valueTokens := weiToTokens(in.FaceValueWei)
	switch {
	case valueTokens < tinyValueCeiling:
		apply("Very small amount", tinyValuePenalty)
	case valueTokens >= reasonableFloor && valueTokens <= reasonableCeiling:
		apply("Reasonable amount", reasonableBonus)
	case valueTokens > extremeValueFloor:
		apply("Extremely large amount", extremeValuePenalty)
	default:
		apply("Standard amount", 0)
	}

	// Factor 3: due-date horizon. Floor division so a due date a few hours in
	// the past already counts as overdue.
	daysUntilDue := floorDiv(in.DueDate-e.now().Unix(), 86400)
	switch {
	case daysUntilDue < 0:
		apply("Already overdue", overduePenalty)
	case daysUntilDue < imminentDays:
		apply("Due very soon (<7 days)", imminentDuePenalty)
	case daysUntilDue >= optimalFloorDays && daysUntilDue <= optimalCeilDays:
		apply("Optimal timeframe (30-90 days)", optimalWindowBonus)
	case daysUntilDue > farFutureDays:
		apply("Too far in future (>1 year)", farFuturePenalty)
	default:
		apply("Standard timeframe", 0)
	}

	// Factor 4: velocity check.
	if daysUntilDue > 0 {
		annualized := valueTokens * (365 / float64(daysUntilDue))
		if annualized > velocityCeiling {
			apply("High velocity transaction", highVelocityPenalty)
		}
	}

	// Factor 5: market sentiment. Feed failures are absorbed here; the
	// scoring call always completes.
	adjustment, reason := e.sentimentAdjustment(ctx)
	apply("Market sentiment ("+reason+")", adjustment)

	final := clamp(score, 0, 100)

	log.Printf("Scored invoice %s: %d/100", in.InvoiceID, final)
	for _, f := range breakdown {
		log.Printf("  %s: %+d", f.Label, f.Delta)
	}

	return Result{Score: final, Breakdown: breakdown}
}

// Execute is the oracle compute boundary: positional string args in, 64-byte
// ABI-encoded (success, score) response out.
func (e *Engine) Execute(ctx context.Context, args []string) ([]byte, error) {
	in, err := ParseInput(args)
	if err != nil {
		return nil, err
	}

	result := e.ComputeRiskScore(ctx, in)
	return codec.Encode(true, result.Score)
}

func (e *Engine) sentimentAdjustment(ctx context.Context) (int, string) {
	if e.sentiment == nil {
		return 0, sentiment.ReasonUnavailable
	}

	snapshot, err := e.sentiment.Fetch(ctx)
	if err != nil {
		log.Printf("Sentiment feed unavailable, scoring without adjustment: %v", err)
		return 0, sentiment.ReasonUnavailable
	}
	return sentiment.Adjustment(snapshot)
}

func isTrusted(debtorName string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(debtorName))
	for _, company := range trustedCompanies {
		if strings.Contains(normalized, company) {
			return true
		}
	}
	return false
}

// weiToTokens converts an 18-decimal fixed-point amount to whole-token units.
func weiToTokens(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	tokens, _ := new(big.Float).Quo(
		new(big.Float).SetInt(wei),
		big.NewFloat(1e18),
	).Float64()
	return tokens
}

// floorDiv divides rounding toward negative infinity. Plain integer division
// truncates toward zero, which would misclassify fractional overdue days.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
