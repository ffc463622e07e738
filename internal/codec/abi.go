// Package codec encodes verification results in the two-word ABI layout the
// verifier contract expects: abi.encode(bool success, uint256 riskScore).
package codec

import (
	"errors"
	"fmt"
	"math/big"
)

// ResponseLen is the fixed length of an encoded response: two 32-byte words.
const ResponseLen = 64

const wordLen = 32

var (
	ErrInvalidScore    = errors.New("risk score out of range")
	ErrMalformedBuffer = errors.New("malformed response buffer")
)

// Encode packs (success, score) into a 64-byte buffer. Word 0 holds the bool
// in its last byte, word 1 holds the score as a big-endian uint256.
func Encode(success bool, score int) ([]byte, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}

	buf := make([]byte, ResponseLen)
	if success {
		buf[wordLen-1] = 1
	}
	big.NewInt(int64(score)).FillBytes(buf[wordLen:])
	return buf, nil
}

// Decode is the inverse of Encode. The buffer must be exactly 64 bytes.
func Decode(buf []byte) (bool, int, error) {
	if len(buf) != ResponseLen {
		return false, 0, fmt.Errorf("%w: got %d bytes, want %d", ErrMalformedBuffer, len(buf), ResponseLen)
	}

	success := buf[wordLen-1] == 1
	score := new(big.Int).SetBytes(buf[wordLen:])
	if !score.IsInt64() {
		return false, 0, fmt.Errorf("%w: score word overflows int64", ErrMalformedBuffer)
	}
	return success, int(score.Int64()), nil
}
