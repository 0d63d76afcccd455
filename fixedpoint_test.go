package uci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFixedPointFromFloatRange(t *testing.T) {
	_, err := NewFixedPointFromFloat(128, true, 3, 4)
	require.Error(t, err)

	fp, err := NewFixedPointFromFloat(-5.5, true, 3, 4)
	require.NoError(t, err)
	assert.InDelta(t, -5.5, fp.AsFloat(), 1.0/16)
}

func TestFixedPointBytesWidth(t *testing.T) {
	fp := NewFixedPointFromBits(0x2a, false, 8, 8)
	assert.Len(t, fp.Bytes(), 2)

	fp2 := NewFixedPointFromBits(-1, true, 3, 4)
	assert.Len(t, fp2.Bytes(), 1)
}

func TestSignExtend(t *testing.T) {
	assert.Equal(t, int64(-1), SignExtend(0x0f, 4))
	assert.Equal(t, int64(7), SignExtend(0x07, 4))
}

// TestFixedPointRoundTripProperty is spec.md §8.1 property 5: encoding a
// Qm.n value to bytes and decoding it back recovers the exact raw integer,
// for both signed and unsigned fields.
func TestFixedPointRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		signed := rapid.Bool().Draw(t, "signed")
		var raw int64
		var nInt, nFract int
		if signed {
			// Q3.4 signed: 8 total bits including sign.
			nInt, nFract = 3, 4
			raw = rapid.Int64Range(-128, 127).Draw(t, "raw")
		} else {
			// Q8.8 unsigned: 16 total bits.
			nInt, nFract = 8, 8
			raw = rapid.Int64Range(0, 65535).Draw(t, "raw")
		}
		fp := NewFixedPointFromBits(raw, signed, nInt, nFract)
		wire := fp.Bytes()

		got, err := NewFixedPointFromBytes(wire, signed, nInt, nFract)
		require.NoError(t, err)
		assert.Equal(t, raw, got.AsInt())
	})
}
