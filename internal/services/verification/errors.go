package verification

import "errors"

// Service errors
var (
	// ErrSubmissionRejected wraps a ledger rejection (revert, access control,
	// insufficient funds). The tracked status is left unchanged.
	ErrSubmissionRejected = errors.New("verification submission rejected")

	// ErrInvalidScore rejects manual verification outside [0, 100].
	ErrInvalidScore = errors.New("risk score must be between 0 and 100")
)
