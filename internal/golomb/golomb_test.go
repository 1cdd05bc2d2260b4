package golomb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musclesoft/dan3/internal/bitio"
)

func TestGammaRoundTripAndBitCount(t *testing.T) {
	for v := 1; v <= MaxGamma; v++ {
		w := bitio.NewWriter()
		WriteGamma(w, v)

		assert.Equal(t, GammaBits(v), w.BitLen(), "value %d", v)

		r := bitio.NewReader(w.Bytes())
		got, err := ReadGamma(r)
		require.NoError(t, err)
		assert.Equal(t, v, got, "value %d", v)
	}
}

func TestGammaSentinelDistinctFromAnyValue(t *testing.T) {
	w := bitio.NewWriter()
	for i := 0; i < BitGolombMax; i++ {
		w.WriteBit(0)
	}
	w.WriteBit(1) // whatever follows the sentinel is up to the caller

	r := bitio.NewReader(w.Bytes())
	got, err := ReadGamma(r)
	require.NoError(t, err)
	assert.Equal(t, -1, got)
}

func TestOffsetRoundTripLength1(t *testing.T) {
	for v := 0; v < MaxOffset0; v++ {
		offset := v + 1
		w := bitio.NewWriter()
		WriteOffset(w, offset, 1, 0)

		r := bitio.NewReader(w.Bytes())
		got, err := ReadOffset(r, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, offset, got, "offset %d", offset)
		assert.Positive(t, OffsetBits(offset, 1, 0))
	}
}

func TestOffsetRoundTripLongForm(t *testing.T) {
	regime := 3
	cases := []int{1, 10, MaxOffset1 - 1, MaxOffset1, MaxOffset1 + 1, MaxOffset2 - 1, MaxOffset2, MaxOffset2 + 1, MaxOffset3(regime)}
	for _, offset := range cases {
		w := bitio.NewWriter()
		WriteOffset(w, offset, 2, regime)

		r := bitio.NewReader(w.Bytes())
		got, err := ReadOffset(r, 2, regime)
		require.NoError(t, err)
		assert.Equal(t, offset, got, "offset %d", offset)
	}
}

func TestBitOffset3AndMaxOffset3(t *testing.T) {
	assert.Equal(t, 9, BitOffset3(0))
	assert.Equal(t, 16, BitOffset3(7))
	assert.Equal(t, 1<<9+MaxOffset2, MaxOffset3(0))
	assert.Equal(t, 1<<16+MaxOffset2, MaxOffset3(7))
}
