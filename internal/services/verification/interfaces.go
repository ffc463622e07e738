package verification

import (
	"context"
	"time"
)

// Ledger is the contract-layer collaborator. Implementations deliver events
// asynchronously; handlers must not assume any particular goroutine.
type Ledger interface {
	RequestVerification(ctx context.Context, invoiceID uint64) (*SubmissionReceipt, error)
	ManualVerify(ctx context.Context, invoiceID uint64, score int) (*SubmissionReceipt, error)
	SetVerificationSource(ctx context.Context, source string) error

	OnFulfilled(invoiceID uint64, fn func(Fulfillment)) Unsubscribe
	OnFailed(invoiceID uint64, fn func(Failure)) Unsubscribe
}

// AuditStore persists request history. Optional; a nil store disables audit.
type AuditStore interface {
	Save(ctx context.Context, req *Request) error
}

// Service is the verification orchestrator API.
type Service interface {
	Submit(ctx context.Context, invoiceID uint64) (*Request, error)
	SubmitManual(ctx context.Context, invoiceID uint64, score int) (*Request, error)
	UploadSource(ctx context.Context, source string) error

	Subscribe(invoiceID uint64, fn func(Fulfillment)) Unsubscribe

	IsPending(invoiceID uint64) bool
	Status(invoiceID uint64) Status
	Get(invoiceID uint64) (*Request, bool)
}

// MetricsCollector receives orchestrator metrics.
type MetricsCollector interface {
	RecordSubmission(result string)
	RecordFulfillment(success bool, score int)
	RecordOperationDuration(operation string, d time.Duration)
}
