package models

import "time"

// Verification statuses as persisted in audit records.
const (
	VerificationStatusPending   = "pending"
	VerificationStatusFulfilled = "fulfilled"
	VerificationStatusFailed    = "failed"
)

// VerificationRecord is the audit trail of a verification request.
// One row per submission; the in-memory orchestrator state is authoritative
// for the current lifecycle, these rows are history.
type VerificationRecord struct {
	ID            uint   `gorm:"primarykey"`
	CorrelationID string `gorm:"index;not null" json:"correlation_id"`
	InvoiceID     uint64 `gorm:"index;not null" json:"invoice_id"`
	RequestID     string `json:"request_id"` // hex, empty when no event was found
	Status        string `gorm:"not null" json:"status"`
	RiskScore     int    `json:"risk_score"`
	Reason        string `json:"reason"`
	SubmittedAt   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
