package scoring

import (
	"context"
	"math/big"
	"strconv"
	"testing"
	"time"

	"invox/internal/codec"
	"invox/internal/services/sentiment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Unix(1700000000, 0)

func fixedNow() time.Time { return testNow }

// stubProvider returns a fixed snapshot or error.
type stubProvider struct {
	snapshot *sentiment.Sentiment
	err      error
}

func (s *stubProvider) Fetch(ctx context.Context) (*sentiment.Sentiment, error) {
	return s.snapshot, s.err
}

func ethToWei(eth int64) *big.Int {
	wei := new(big.Int).Mul(big.NewInt(eth), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
	return wei
}

func dueInDays(days int64) int64 {
	return testNow.Unix() + days*86400
}

func TestComputeRiskScore(t *testing.T) {
	tests := []struct {
		name      string
		debtor    string
		valueEth  int64
		dueDate   int64
		wantScore int
	}{
		{
			// 50 base +30 trusted +10 reasonable +0 horizon (60d outside bands)
			name:      "trusted debtor reasonable value",
			debtor:    "Apple Inc",
			valueEth:  50000,
			dueDate:   dueInDays(60),
			wantScore: 90,
		},
		{
			// 50 base +0 unknown +10 reasonable -50 overdue
			name:      "overdue invoice",
			debtor:    "Late Payer Inc",
			valueEth:  10000,
			dueDate:   dueInDays(-10),
			wantScore: 10,
		},
		{
			// 50 +30 +10 +15 optimal window = 105, clamped to 100
			name:      "trusted debtor optimal window",
			debtor:    "Microsoft Corporation",
			valueEth:  75000,
			dueDate:   dueInDays(45),
			wantScore: 100,
		},
		{
			// 50 +0 -10 extreme +15 optimal -5 velocity (2M * 365/30 > 10M)
			name:      "extreme value high velocity",
			debtor:    "Random Corp Ltd",
			valueEth:  2000000,
			dueDate:   dueInDays(30),
			wantScore: 50,
		},
		{
			// 50 +0 unknown +0 standard value -20 imminent
			name:      "due in three days",
			debtor:    "Random Corp Ltd",
			valueEth:  50,
			dueDate:   dueInDays(3),
			wantScore: 30,
		},
		{
			// 50 +0 +10 -10 far future
			name:      "due beyond a year",
			debtor:    "Random Corp Ltd",
			valueEth:  5000,
			dueDate:   dueInDays(400),
			wantScore: 50,
		},
		{
			// 50 +0 -10 tiny -50 overdue = -10 -> clamped to 0
			name:      "clamped at zero",
			debtor:    "Shell Co",
			valueEth:  0,
			dueDate:   dueInDays(-100),
			wantScore: 0,
		},
	}

	engine := NewEngine(WithNow(fixedNow))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.ComputeRiskScore(context.Background(), InvoiceInput{
				InvoiceID:    "1",
				DebtorName:   tt.debtor,
				FaceValueWei: ethToWei(tt.valueEth),
				DueDate:      tt.dueDate,
			})

			assert.Equal(t, tt.wantScore, result.Score)
			assert.GreaterOrEqual(t, result.Score, 0)
			assert.LessOrEqual(t, result.Score, 100)
			assert.NotEmpty(t, result.Breakdown)
		})
	}
}

func TestComputeRiskScore_ClampsAtHundred(t *testing.T) {
	// 50 +30 +10 +15 +20 sentiment = 125, clamped once at the end.
	engine := NewEngine(
		WithNow(fixedNow),
		WithSentimentProvider(&stubProvider{snapshot: &sentiment.Sentiment{Price: 5000, Change24h: 12}}),
	)

	result := engine.ComputeRiskScore(context.Background(), InvoiceInput{
		InvoiceID:    "7",
		DebtorName:   "NVIDIA GmbH",
		FaceValueWei: ethToWei(1000),
		DueDate:      dueInDays(60),
	})

	assert.Equal(t, 100, result.Score)

	// The breakdown keeps the raw deltas even though the sum was clamped.
	sum := baseScore
	for _, f := range result.Breakdown {
		sum += f.Delta
	}
	assert.Equal(t, 125, sum)
}

func TestComputeRiskScore_FractionalOverdueDay(t *testing.T) {
	// One hour past due must count as overdue: floor(-3600/86400) = -1,
	// truncation toward zero would give 0 and miss the penalty.
	engine := NewEngine(WithNow(fixedNow))

	result := engine.ComputeRiskScore(context.Background(), InvoiceInput{
		InvoiceID:    "2",
		DebtorName:   "Random Corp Ltd",
		FaceValueWei: ethToWei(5000),
		DueDate:      testNow.Unix() - 3600,
	})

	// 50 +0 +10 -50 = 10
	assert.Equal(t, 10, result.Score)
}

func TestComputeRiskScore_SentimentUnavailable(t *testing.T) {
	engine := NewEngine(
		WithNow(fixedNow),
		WithSentimentProvider(&stubProvider{err: sentiment.ErrUnavailable}),
	)

	result := engine.ComputeRiskScore(context.Background(), InvoiceInput{
		InvoiceID:    "3",
		DebtorName:   "Apple Inc",
		FaceValueWei: ethToWei(50000),
		DueDate:      dueInDays(60),
	})

	// Same as without a provider: the failure is absorbed as a 0 adjustment.
	assert.Equal(t, 90, result.Score)

	last := result.Breakdown[len(result.Breakdown)-1]
	assert.Contains(t, last.Label, sentiment.ReasonUnavailable)
	assert.Zero(t, last.Delta)
}

func TestComputeRiskScore_SentimentAdjustmentApplied(t *testing.T) {
	engine := NewEngine(
		WithNow(fixedNow),
		WithSentimentProvider(&stubProvider{snapshot: &sentiment.Sentiment{Price: 2500, Change24h: -6}}),
	)

	result := engine.ComputeRiskScore(context.Background(), InvoiceInput{
		InvoiceID:    "4",
		DebtorName:   "Random Corp Ltd",
		FaceValueWei: ethToWei(5000),
		DueDate:      dueInDays(60),
	})

	// 50 +0 +10 +0 -10 sentiment = 50
	assert.Equal(t, 50, result.Score)
}

func TestParseInput(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		in, err := ParseInput([]string{"42", "Apple Inc", "50000000000000000000000", "1700000000"})
		require.NoError(t, err)
		assert.Equal(t, "42", in.InvoiceID)
		assert.Equal(t, "Apple Inc", in.DebtorName)
		assert.Equal(t, ethToWei(50000), in.FaceValueWei)
		assert.EqualValues(t, 1700000000, in.DueDate)
	})

	t.Run("wrong arg count", func(t *testing.T) {
		_, err := ParseInput([]string{"42", "Apple Inc"})
		assert.ErrorIs(t, err, ErrArgCount)
	})

	t.Run("non-numeric face value", func(t *testing.T) {
		_, err := ParseInput([]string{"42", "Apple Inc", "12x", "1700000000"})
		assert.ErrorIs(t, err, ErrInvalidFaceValue)
	})

	t.Run("non-numeric due date", func(t *testing.T) {
		_, err := ParseInput([]string{"42", "Apple Inc", "1000", "someday"})
		assert.ErrorIs(t, err, ErrInvalidDueDate)
	})
}

func TestExecute(t *testing.T) {
	engine := NewEngine(WithNow(fixedNow))

	args := []string{
		"0",
		"Apple Inc",
		ethToWei(50000).String(),
		strconv.FormatInt(dueInDays(60), 10),
	}

	buf, err := engine.Execute(context.Background(), args)
	require.NoError(t, err)
	require.Len(t, buf, codec.ResponseLen)

	success, score, err := codec.Decode(buf)
	require.NoError(t, err)
	assert.True(t, success)
	assert.Equal(t, 90, score)
}

func TestExecute_BadInput(t *testing.T) {
	engine := NewEngine(WithNow(fixedNow))

	_, err := engine.Execute(context.Background(), []string{"0", "Apple Inc", "not-a-number", "123"})
	assert.ErrorIs(t, err, ErrInvalidFaceValue)
}

func TestFloorDiv(t *testing.T) {
	assert.EqualValues(t, -1, floorDiv(-1, 86400))
	assert.EqualValues(t, -1, floorDiv(-86400, 86400))
	assert.EqualValues(t, -2, floorDiv(-86401, 86400))
	assert.EqualValues(t, 0, floorDiv(86399, 86400))
	assert.EqualValues(t, 1, floorDiv(86400, 86400))
}

func TestIsTrusted(t *testing.T) {
	assert.True(t, isTrusted("Apple Inc"))
	assert.True(t, isTrusted("  tesla motors  "))
	assert.True(t, isTrusted("JPMorgan Chase & Co"))
	assert.False(t, isTrusted(""))
	assert.False(t, isTrusted("Totally Unknown LLC"))
}

func TestNilFaceValue(t *testing.T) {
	// A nil big.Int falls into the smallest tier instead of panicking.
	engine := NewEngine(WithNow(fixedNow))
	result := engine.ComputeRiskScore(context.Background(), InvoiceInput{
		InvoiceID:  "5",
		DebtorName: "Random Corp Ltd",
		DueDate:    dueInDays(60),
	})
	// 50 +0 -10 tiny +0 = 40
	assert.Equal(t, 40, result.Score)
}
