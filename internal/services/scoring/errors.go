package scoring

import "errors"

// Input errors abort the scoring call; they are never retried automatically.
var (
	ErrArgCount         = errors.New("expected 4 arguments: invoiceId, debtorName, faceValue, dueDate")
	ErrInvalidFaceValue = errors.New("face value is not a valid integer")
	ErrInvalidDueDate   = errors.New("due date is not a valid unix timestamp")
)
