package verification

import "time"

// Status of a tracked verification request.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusFailed    Status = "failed"
)

// Ledger event names.
const (
	EventVerificationRequested = "VerificationRequested"
	EventVerificationFulfilled = "VerificationFulfilled"
	EventVerificationFailed    = "VerificationFailed"
)

// EventLog is one parsed log entry from a submission confirmation.
type EventLog struct {
	Name      string
	RequestID []byte
	InvoiceID uint64
}

// SubmissionReceipt is the confirmed result of a ledger call.
type SubmissionReceipt struct {
	TxHash      string
	BlockNumber uint64
	Logs        []EventLog
}

// Fulfillment is the ledger's VerificationFulfilled event.
type Fulfillment struct {
	InvoiceID   uint64
	RiskScore   int
	Success     bool
	BlockNumber uint64
}

// Failure is the ledger's VerificationFailed event.
type Failure struct {
	InvoiceID   uint64
	RequestID   []byte
	Reason      string
	BlockNumber uint64
}

// Request is the tracked state for one invoice. RequestID stays nil when the
// submission confirmation carried no VerificationRequested log; the entry is
// still Pending in that case.
type Request struct {
	CorrelationID string    `json:"correlation_id"`
	InvoiceID     uint64    `json:"invoice_id"`
	RequestID     []byte    `json:"request_id,omitempty"`
	Status        Status    `json:"status"`
	RiskScore     int       `json:"risk_score"`
	Reason        string    `json:"reason,omitempty"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// Unsubscribe cancels an event subscription. Calling it more than once, or
// after the event has fired, is a no-op.
type Unsubscribe func()
