package uci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPopAdvancesCursor(t *testing.T) {
	b := NewBuffer([]byte{1, 2, 3, 4})
	got, err := b.Pop(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, got)
	assert.Equal(t, 2, b.RemainingSize())

	rest, err := b.Pop(-1)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 4}, rest)
	assert.Equal(t, 0, b.RemainingSize())
}

func TestBufferPopUnderflow(t *testing.T) {
	b := NewBuffer([]byte{1})
	_, err := b.Pop(2)
	require.Error(t, err)
	var uf *ErrUnderflow
	require.ErrorAs(t, err, &uf)
	assert.Equal(t, 2, uf.Wanted)
	assert.Equal(t, 1, uf.Remaining)
}

func TestBufferPopUintLittleEndian(t *testing.T) {
	b := NewBuffer([]byte{0x34, 0x12, 0x78, 0x56})
	v, err := b.PopUint(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1234), v)
	v, err = b.PopUint(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x5678), v)
}

func TestBufferPopIntSignExtends(t *testing.T) {
	b := NewBuffer([]byte{0xff, 0xfe, 0xff})
	v, err := b.PopInt(1)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), v)
	v, err = b.PopInt(2)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), v)
}

func TestBufferPopReverse(t *testing.T) {
	b := NewBuffer([]byte{0x01, 0x02, 0x03})
	got, err := b.PopReverse(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x02, 0x01}, got)
}

func TestBufferResetParsing(t *testing.T) {
	b := NewBuffer([]byte{1, 2})
	_, err := b.Pop(2)
	require.NoError(t, err)
	b.ResetParsing()
	assert.Equal(t, 2, b.RemainingSize())
}

func TestBufferPopFloatQ87(t *testing.T) {
	b := NewBuffer([]byte{0x80, 0x00}) // raw 0x0080 = 128, /2^7 = 1.0
	v, err := b.PopFloat(true, 8, 7)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}
