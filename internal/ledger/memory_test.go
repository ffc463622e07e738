package ledger

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"invox/internal/codec"
	"invox/internal/services/scoring"
	"invox/internal/services/verification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvoices(t *testing.T) InvoiceSource {
	t.Helper()
	now := time.Now().Unix()
	return func(ctx context.Context, invoiceID uint64) ([]string, error) {
		switch invoiceID {
		case 1:
			return []string{"1", "Apple Inc", "50000000000000000000000", strconv.FormatInt(now+60*86400, 10)}, nil
		case 2:
			return []string{"2", "Broken", "not-a-number", "0"}, nil
		default:
			return nil, errors.New("invoice not found")
		}
	}
}

func newTestLedger(t *testing.T) *Memory {
	engine := scoring.NewEngine()
	return NewMemory(engine.Execute, testInvoices(t))
}

func TestRequestVerification_RequiresSource(t *testing.T) {
	m := newTestLedger(t)

	_, err := m.RequestVerification(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestRequestVerification_EndToEnd(t *testing.T) {
	m := newTestLedger(t)
	require.NoError(t, m.SetVerificationSource(context.Background(), "registered"))

	var events []verification.Fulfillment
	done := make(chan struct{})
	m.OnFulfilled(1, func(ev verification.Fulfillment) {
		events = append(events, ev)
		close(done)
	})

	receipt, err := m.RequestVerification(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 1)
	assert.Equal(t, verification.EventVerificationRequested, receipt.Logs[0].Name)
	assert.Len(t, receipt.Logs[0].RequestID, 32)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fulfillment event never arrived")
	}

	require.Len(t, events, 1)
	assert.True(t, events[0].Success)
	assert.Equal(t, 90, events[0].RiskScore) // 50 +30 trusted +10 reasonable

	score, ok := m.Score(1)
	require.True(t, ok)
	assert.Equal(t, 90, score)
}

func TestRequestVerification_ComputeFailureEmitsFailed(t *testing.T) {
	m := newTestLedger(t)
	require.NoError(t, m.SetVerificationSource(context.Background(), "registered"))

	done := make(chan verification.Failure, 1)
	m.OnFailed(2, func(ev verification.Failure) { done <- ev })

	_, err := m.RequestVerification(context.Background(), 2)
	require.NoError(t, err)

	select {
	case ev := <-done:
		assert.Contains(t, ev.Reason, "compute")
	case <-time.After(2 * time.Second):
		t.Fatal("failure event never arrived")
	}
}

func TestRequestVerification_UnknownInvoice(t *testing.T) {
	m := newTestLedger(t)
	require.NoError(t, m.SetVerificationSource(context.Background(), "registered"))

	done := make(chan verification.Failure, 1)
	m.OnFailed(99, func(ev verification.Failure) { done <- ev })

	_, err := m.RequestVerification(context.Background(), 99)
	require.NoError(t, err)

	select {
	case ev := <-done:
		assert.Contains(t, ev.Reason, "invoice lookup")
	case <-time.After(2 * time.Second):
		t.Fatal("failure event never arrived")
	}
}

func TestManualVerify(t *testing.T) {
	m := newTestLedger(t)

	done := make(chan verification.Fulfillment, 1)
	m.OnFulfilled(1, func(ev verification.Fulfillment) { done <- ev })

	receipt, err := m.ManualVerify(context.Background(), 1, 85)
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.TxHash)

	select {
	case ev := <-done:
		assert.True(t, ev.Success)
		assert.Equal(t, 85, ev.RiskScore)
	case <-time.After(2 * time.Second):
		t.Fatal("fulfillment event never arrived")
	}
}

func TestManualVerify_ScoreOutOfRange(t *testing.T) {
	m := newTestLedger(t)

	_, err := m.ManualVerify(context.Background(), 1, 150)
	assert.ErrorIs(t, err, ErrScoreOutOfRange)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	m := newTestLedger(t)

	count := 0
	off := m.OnFulfilled(1, func(verification.Fulfillment) { count++ })
	off()
	off() // safe to repeat

	_, err := m.ManualVerify(context.Background(), 1, 40)
	require.NoError(t, err)

	// Give the async emit a moment; nothing should arrive.
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, count)
}

func TestResponseBufferIsCodecCompatible(t *testing.T) {
	engine := scoring.NewEngine()
	args := []string{"1", "Apple Inc", "50000000000000000000000", strconv.FormatInt(time.Now().Unix()+60*86400, 10)}

	buf, err := engine.Execute(context.Background(), args)
	require.NoError(t, err)

	success, score, err := codec.Decode(buf)
	require.NoError(t, err)
	assert.True(t, success)
	assert.Equal(t, 90, score)
}
