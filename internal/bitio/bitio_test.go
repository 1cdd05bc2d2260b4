package bitio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBitsMSBFirst(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0b101, 3)
	require.Equal(t, 1, w.Len())
	assert.Equal(t, byte(0b10100000), w.Bytes()[0])
}

func TestWriteByteDoesNotDisturbPartialBitByte(t *testing.T) {
	w := NewWriter()
	w.WriteBit(1)
	w.WriteBit(0)
	// Two bits written into byte 0; WriteByte must land in a fresh byte 1,
	// not continue filling byte 0.
	require.NoError(t, w.WriteByte(0xAB))
	require.Equal(t, 2, w.Len())
	assert.Equal(t, byte(0x80), w.Bytes()[0])
	assert.Equal(t, byte(0xAB), w.Bytes()[1])

	// Subsequent bits resume filling byte 0, not byte 2.
	w.WriteBit(1)
	require.Equal(t, 2, w.Len())
	assert.Equal(t, byte(0xA0), w.Bytes()[0])
}

func TestRoundTripBitsAndBytes(t *testing.T) {
	w := NewWriter()
	w.WriteBit(1)
	w.WriteBits(0b1011, 4)
	require.NoError(t, w.WriteByte(0x7F))
	w.WriteBit(0)
	w.WriteBit(1)

	r := NewReader(w.Bytes())
	b1, err := r.ReadBit()
	require.NoError(t, err)
	assert.Equal(t, 1, b1)

	v, err := r.ReadBits(4)
	require.NoError(t, err)
	assert.Equal(t, 0b1011, v)

	by, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x7F), by)

	b2, err := r.ReadBit()
	require.NoError(t, err)
	assert.Equal(t, 0, b2)

	b3, err := r.ReadBit()
	require.NoError(t, err)
	assert.Equal(t, 1, b3)
}

func TestReadPastEndReturnsEOF(t *testing.T) {
	r := NewReader([]byte{0xFF})
	for i := 0; i < 8; i++ {
		_, err := r.ReadBit()
		require.NoError(t, err)
	}
	_, err := r.ReadBit()
	require.Error(t, err)
	assert.True(t, IsEOF(err))

	r2 := NewReader(nil)
	_, err = r2.ReadByte()
	require.Error(t, err)
	assert.True(t, IsEOF(err))
}
