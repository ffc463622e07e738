// Package ledger provides the contract-layer collaborator implementations.
//
// Memory is an in-process ledger: it stores the verification source, runs the
// registered compute function locally and relays results as fulfillment
// events, standing in for the verifier contract and the oracle network in
// demo deployments and tests.
package ledger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sync"

	"invox/internal/codec"
	"invox/internal/services/verification"
)

// ComputeFunc runs the verification function: positional string args in,
// 64-byte ABI response out.
type ComputeFunc func(ctx context.Context, args []string) ([]byte, error)

// InvoiceSource supplies the scoring arguments for a stored invoice.
type InvoiceSource func(ctx context.Context, invoiceID uint64) ([]string, error)

var (
	ErrNoSource        = errors.New("verification source not set")
	ErrScoreOutOfRange = errors.New("risk score out of range")
)

// Memory is an in-process verification ledger.
type Memory struct {
	compute  ComputeFunc
	invoices InvoiceSource

	mu        sync.Mutex
	source    string
	block     uint64
	nextSub   uint64
	scores    map[uint64]int
	fulfilled map[uint64]map[uint64]func(verification.Fulfillment)
	failed    map[uint64]map[uint64]func(verification.Failure)
}

func NewMemory(compute ComputeFunc, invoices InvoiceSource) *Memory {
	return &Memory{
		compute:   compute,
		invoices:  invoices,
		scores:    make(map[uint64]int),
		fulfilled: make(map[uint64]map[uint64]func(verification.Fulfillment)),
		failed:    make(map[uint64]map[uint64]func(verification.Failure)),
	}
}

// RequestVerification mimics the contract call: it rejects when no source is
// uploaded, otherwise confirms with a VerificationRequested log and runs the
// compute function asynchronously, the way the oracle network would.
func (m *Memory) RequestVerification(ctx context.Context, invoiceID uint64) (*verification.SubmissionReceipt, error) {
	m.mu.Lock()
	if m.source == "" {
		m.mu.Unlock()
		return nil, ErrNoSource
	}
	m.block++
	block := m.block
	m.mu.Unlock()

	requestID := make([]byte, 32)
	if _, err := rand.Read(requestID); err != nil {
		return nil, fmt.Errorf("generate request id: %w", err)
	}

	receipt := &verification.SubmissionReceipt{
		TxHash:      "0x" + hex.EncodeToString(requestID[:16]),
		BlockNumber: block,
		Logs: []verification.EventLog{
			{
				Name:      verification.EventVerificationRequested,
				RequestID: requestID,
				InvoiceID: invoiceID,
			},
		},
	}

	go m.fulfill(invoiceID, requestID)

	return receipt, nil
}

// ManualVerify records the score directly and emits the fulfillment event,
// bypassing the compute round-trip.
func (m *Memory) ManualVerify(ctx context.Context, invoiceID uint64, score int) (*verification.SubmissionReceipt, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("%w: %d", ErrScoreOutOfRange, score)
	}

	m.mu.Lock()
	m.block++
	block := m.block
	m.scores[invoiceID] = score
	m.mu.Unlock()

	go m.emitFulfilled(verification.Fulfillment{
		InvoiceID:   invoiceID,
		RiskScore:   score,
		Success:     true,
		BlockNumber: block,
	})

	return &verification.SubmissionReceipt{
		TxHash:      fmt.Sprintf("0xmanual%d", block),
		BlockNumber: block,
	}, nil
}

func (m *Memory) SetVerificationSource(ctx context.Context, source string) error {
	if source == "" {
		return errors.New("source must not be empty")
	}
	m.mu.Lock()
	m.source = source
	m.mu.Unlock()
	log.Printf("Verification source updated (%d bytes)", len(source))
	return nil
}

func (m *Memory) OnFulfilled(invoiceID uint64, fn func(verification.Fulfillment)) verification.Unsubscribe {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fulfilled[invoiceID] == nil {
		m.fulfilled[invoiceID] = make(map[uint64]func(verification.Fulfillment))
	}
	m.nextSub++
	id := m.nextSub
	m.fulfilled[invoiceID][id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.fulfilled[invoiceID], id)
	}
}

func (m *Memory) OnFailed(invoiceID uint64, fn func(verification.Failure)) verification.Unsubscribe {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failed[invoiceID] == nil {
		m.failed[invoiceID] = make(map[uint64]func(verification.Failure))
	}
	m.nextSub++
	id := m.nextSub
	m.failed[invoiceID][id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.failed[invoiceID], id)
	}
}

// Score returns the last recorded risk score for an invoice.
func (m *Memory) Score(invoiceID uint64) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	score, ok := m.scores[invoiceID]
	return score, ok
}

// fulfill runs the verification function for one request and relays the
// outcome as an event. Compute failures become VerificationFailed events,
// never panics.
func (m *Memory) fulfill(invoiceID uint64, requestID []byte) {
	ctx := context.Background()

	args, err := m.invoices(ctx, invoiceID)
	if err != nil {
		m.emitFailed(invoiceID, requestID, fmt.Sprintf("invoice lookup: %v", err))
		return
	}

	buf, err := m.compute(ctx, args)
	if err != nil {
		m.emitFailed(invoiceID, requestID, fmt.Sprintf("compute: %v", err))
		return
	}

	success, score, err := codec.Decode(buf)
	if err != nil {
		m.emitFailed(invoiceID, requestID, fmt.Sprintf("decode response: %v", err))
		return
	}

	m.mu.Lock()
	m.block++
	block := m.block
	if success {
		m.scores[invoiceID] = score
	}
	m.mu.Unlock()

	m.emitFulfilled(verification.Fulfillment{
		InvoiceID:   invoiceID,
		RiskScore:   score,
		Success:     success,
		BlockNumber: block,
	})
}

func (m *Memory) emitFulfilled(ev verification.Fulfillment) {
	m.mu.Lock()
	handlers := make([]func(verification.Fulfillment), 0, len(m.fulfilled[ev.InvoiceID]))
	for _, fn := range m.fulfilled[ev.InvoiceID] {
		handlers = append(handlers, fn)
	}
	m.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

func (m *Memory) emitFailed(invoiceID uint64, requestID []byte, reason string) {
	m.mu.Lock()
	m.block++
	ev := verification.Failure{
		InvoiceID:   invoiceID,
		RequestID:   requestID,
		Reason:      reason,
		BlockNumber: m.block,
	}
	handlers := make([]func(verification.Failure), 0, len(m.failed[invoiceID]))
	for _, fn := range m.failed[invoiceID] {
		handlers = append(handlers, fn)
	}
	m.mu.Unlock()

	log.Printf("Verification for invoice %d failed: %s", invoiceID, reason)
	for _, fn := range handlers {
		fn(ev)
	}
}
