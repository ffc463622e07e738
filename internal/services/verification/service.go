package verification

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type service struct {
	ledger  Ledger
	audit   AuditStore
	metrics MetricsCollector

	mu       sync.RWMutex
	requests map[uint64]*Request
	watching map[uint64]struct{}
}

// NewService creates a verification orchestrator. The audit store may be nil.
func NewService(ledger Ledger, audit AuditStore, metrics MetricsCollector) Service {
	if ledger == nil {
		panic("ledger is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		ledger:   ledger,
		audit:    audit,
		metrics:  metrics,
		requests: make(map[uint64]*Request),
		watching: make(map[uint64]struct{}),
	}
}

func (s *service) Submit(ctx context.Context, invoiceID uint64) (*Request, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("submit", time.Since(start)) }()

	receipt, err := s.ledger.RequestVerification(ctx, invoiceID)
	if err != nil {
		// The tracked entry, if any, keeps its previous state.
		s.metrics.RecordSubmission("rejected")
		return nil, fmt.Errorf("%w: %v", ErrSubmissionRejected, err)
	}

	var requestID []byte
	for _, entry := range receipt.Logs {
		if entry.Name == EventVerificationRequested {
			requestID = entry.RequestID
			break
		}
	}
	if requestID == nil {
		log.Printf("No %s event in receipt %s, tracking invoice %d without a request id",
			EventVerificationRequested, receipt.TxHash, invoiceID)
	}

	req := &Request{
		CorrelationID: uuid.NewString(),
		InvoiceID:     invoiceID,
		RequestID:     requestID,
		Status:        StatusPending,
		SubmittedAt:   time.Now(),
	}

	// Last submit wins: a pending entry for the same invoice is overwritten.
	s.mu.Lock()
	s.requests[invoiceID] = req
	s.mu.Unlock()
	s.watch(invoiceID)

	s.persist(ctx, req)
	s.metrics.RecordSubmission("accepted")
	log.Printf("Verification requested for invoice %d (tx %s)", invoiceID, receipt.TxHash)

	return snapshot(req), nil
}

func (s *service) SubmitManual(ctx context.Context, invoiceID uint64, score int) (*Request, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}

	receipt, err := s.ledger.ManualVerify(ctx, invoiceID, score)
	if err != nil {
		s.metrics.RecordSubmission("rejected")
		return nil, fmt.Errorf("%w: %v", ErrSubmissionRejected, err)
	}

	// Manual verification skips the oracle round-trip: fulfilled immediately.
	req := &Request{
		CorrelationID: uuid.NewString(),
		InvoiceID:     invoiceID,
		Status:        StatusFulfilled,
		RiskScore:     score,
		SubmittedAt:   time.Now(),
	}

	s.mu.Lock()
	s.requests[invoiceID] = req
	s.mu.Unlock()

	s.persist(ctx, req)
	s.metrics.RecordSubmission("manual")
	s.metrics.RecordFulfillment(true, score)
	log.Printf("Invoice %d manually verified with score %d (tx %s)", invoiceID, score, receipt.TxHash)

	return snapshot(req), nil
}

func (s *service) UploadSource(ctx context.Context, source string) error {
	return s.ledger.SetVerificationSource(ctx, source)
}

// Subscribe registers a callback for fulfillment events of one invoice.
// Events are deduplicated by block height, so re-delivered or doubly
// registered logs fire the callback once per logical event.
func (s *service) Subscribe(invoiceID uint64, fn func(Fulfillment)) Unsubscribe {
	var seenMu sync.Mutex
	seen := make(map[uint64]struct{})

	off := s.ledger.OnFulfilled(invoiceID, func(ev Fulfillment) {
		seenMu.Lock()
		if _, dup := seen[ev.BlockNumber]; dup {
			seenMu.Unlock()
			return
		}
		seen[ev.BlockNumber] = struct{}{}
		seenMu.Unlock()

		fn(ev)
	})

	var once sync.Once
	return func() { once.Do(off) }
}

func (s *service) IsPending(invoiceID uint64) bool {
	return s.Status(invoiceID) == StatusPending
}

func (s *service) Status(invoiceID uint64) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[invoiceID]
	if !ok {
		return StatusIdle
	}
	return req.Status
}

func (s *service) Get(invoiceID uint64) (*Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[invoiceID]
	if !ok {
		return nil, false
	}
	return snapshot(req), true
}

// watch installs the service's own ledger subscriptions for an invoice. One
// watcher per invoice for the life of the service; the Pending guard in the
// handlers keeps stale or duplicate events from touching terminal entries.
func (s *service) watch(invoiceID uint64) {
	s.mu.Lock()
	if _, ok := s.watching[invoiceID]; ok {
		s.mu.Unlock()
		return
	}
	s.watching[invoiceID] = struct{}{}
	s.mu.Unlock()

	s.ledger.OnFulfilled(invoiceID, s.handleFulfilled)
	s.ledger.OnFailed(invoiceID, s.handleFailed)
}

func (s *service) handleFulfilled(ev Fulfillment) {
	s.mu.Lock()
	req, ok := s.requests[ev.InvoiceID]
	if !ok || req.Status != StatusPending {
		s.mu.Unlock()
		return
	}

	if ev.Success {
		req.Status = StatusFulfilled
		req.RiskScore = ev.RiskScore
	} else {
		req.Status = StatusFailed
		req.Reason = "oracle reported failure"
	}
	updated := snapshot(req)
	s.mu.Unlock()

	s.persist(context.Background(), updated)
	s.metrics.RecordFulfillment(ev.Success, ev.RiskScore)
	log.Printf("Verification for invoice %d %s (score %d, block %d)",
		ev.InvoiceID, updated.Status, ev.RiskScore, ev.BlockNumber)
}

func (s *service) handleFailed(ev Failure) {
	s.mu.Lock()
	req, ok := s.requests[ev.InvoiceID]
	if !ok || req.Status != StatusPending {
		s.mu.Unlock()
		return
	}

	req.Status = StatusFailed
	req.Reason = ev.Reason
	updated := snapshot(req)
	s.mu.Unlock()

	s.persist(context.Background(), updated)
	s.metrics.RecordFulfillment(false, 0)
	log.Printf("Verification for invoice %d failed: %s", ev.InvoiceID, ev.Reason)
}

func (s *service) persist(ctx context.Context, req *Request) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Save(ctx, snapshot(req)); err != nil {
		log.Printf("Failed to persist verification record for invoice %d: %v", req.InvoiceID, err)
	}
}

// snapshot copies a request so callers never share the mutable tracked entry.
func snapshot(req *Request) *Request {
	cp := *req
	if req.RequestID != nil {
		cp.RequestID = append([]byte(nil), req.RequestID...)
	}
	return &cp
}
