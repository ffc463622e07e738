package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Layout(t *testing.T) {
	buf, err := Encode(true, 85)
	require.NoError(t, err)
	require.Len(t, buf, ResponseLen)

	// Word 0: all zeros except the bool byte.
	for i := 0; i < 31; i++ {
		assert.Zero(t, buf[i], "word 0 byte %d", i)
	}
	assert.EqualValues(t, 1, buf[31])

	// Word 1: big-endian uint256.
	for i := 32; i < 63; i++ {
		assert.Zero(t, buf[i], "word 1 byte %d", i)
	}
	assert.EqualValues(t, 85, buf[63])
}

func TestEncode_FalseSuccess(t *testing.T) {
	buf, err := Encode(false, 0)
	require.NoError(t, err)
	for _, b := range buf {
		assert.Zero(t, b)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, success := range []bool{true, false} {
		for score := 0; score <= 100; score++ {
			buf, err := Encode(success, score)
			require.NoError(t, err)

			gotSuccess, gotScore, err := Decode(buf)
			require.NoError(t, err)
			assert.Equal(t, success, gotSuccess)
			assert.Equal(t, score, gotScore)
		}
	}
}

func TestEncode_ScoreOutOfRange(t *testing.T) {
	for _, score := range []int{-1, 101, 1000} {
		_, err := Encode(true, score)
		assert.ErrorIs(t, err, ErrInvalidScore, "score %d", score)
	}
}

func TestDecode_WrongLength(t *testing.T) {
	for _, n := range []int{0, 32, 63, 65, 128} {
		_, _, err := Decode(make([]byte, n))
		assert.ErrorIs(t, err, ErrMalformedBuffer, "length %d", n)
	}
}
