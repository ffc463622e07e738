package scoring

import "math/big"

// InvoiceInput holds the four attributes the engine scores. Immutable per call.
type InvoiceInput struct {
	InvoiceID    string
	DebtorName   string
	FaceValueWei *big.Int
	DueDate      int64 // unix seconds
}

// Factor is one breakdown entry: a label and the delta it contributed.
// The breakdown feeds audit logs only, never control flow.
type Factor struct {
	Label string `json:"label"`
	Delta int    `json:"delta"`
}

// Result is a computed risk score with its factor breakdown.
type Result struct {
	Score     int      `json:"score"`
	Breakdown []Factor `json:"breakdown"`
}
