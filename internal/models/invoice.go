package models

import (
	"strconv"
	"time"
)

// Invoice is a trade invoice registered for verification.
// FaceValueWei is kept as a decimal string because invoice amounts are
// 256-bit integers on the ledger and do not fit in any native type.
type Invoice struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	DebtorName   string `gorm:"not null" json:"debtor_name"`
	FaceValueWei string `gorm:"not null" json:"face_value_wei"`
	DueDate      int64  `gorm:"not null" json:"due_date"` // unix seconds
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ScoringArgs returns the invoice attributes in the positional form the
// verification function consumes: [invoiceId, debtorName, faceValueWei, dueDate].
func (i *Invoice) ScoringArgs() []string {
	return []string{
		strconv.FormatUint(i.ID, 10),
		i.DebtorName,
		i.FaceValueWei,
		strconv.FormatInt(i.DueDate, 10),
	}
}

// CreateInvoiceRequest is the payload for registering a new invoice.
type CreateInvoiceRequest struct {
	DebtorName   string `json:"debtor_name"`
	FaceValueWei string `json:"face_value_wei"`
	DueDate      int64  `json:"due_date"`
}
