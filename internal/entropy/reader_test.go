package entropy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReader_exhaustionDefaults(t *testing.T) {
	r := New(nil)
	require.True(t, r.IsEmpty())
	require.False(t, r.Bool())
	require.EqualValues(t, 0, r.Byte())
	require.Equal(t, 5, r.IntInRange(5, 9))
	require.EqualValues(t, 5, r.Uint32InRange(5, 9))
	require.Equal(t, 0, r.Choose(3))
	require.Nil(t, r.Bytes(4))
	require.Empty(t, r.TakeRest())
}

func TestReader_boolConsumesLowBit(t *testing.T) {
	r := New([]byte{0x01, 0x02, 0x00})
	require.True(t, r.Bool())
	require.False(t, r.Bool())
	require.False(t, r.Bool())
	require.True(t, r.IsEmpty())
}

func TestReader_intInRangeWithinBounds(t *testing.T) {
	r := New([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	for i := 0; i < 100; i++ {
		v := r.IntInRange(10, 20)
		require.GreaterOrEqual(t, v, 10)
		require.LessOrEqual(t, v, 20)
	}
}

func TestReader_intInRangeDegenerate(t *testing.T) {
	r := New([]byte{0xff})
	require.Equal(t, 7, r.IntInRange(7, 7))
	require.Equal(t, 7, r.IntInRange(7, 3))
}

func TestReader_weightedChooseDefaultsToFirstNonZeroWeight(t *testing.T) {
	r := New(nil)
	require.Equal(t, 2, r.WeightedChoose([]uint32{0, 0, 5}))
	require.Equal(t, 1, New(nil).WeightedChoose([]uint32{0, 3, 5}))
	require.Equal(t, 0, New(nil).WeightedChoose(nil))
}

func TestReader_weightedChooseRespectsAllZero(t *testing.T) {
	r := New([]byte{0x42})
	require.Equal(t, 0, r.WeightedChoose([]uint32{0, 0, 0}))
}

func TestReader_bytesShorterThanRequestedOnceExhausted(t *testing.T) {
	r := New([]byte{1, 2, 3})
	require.Equal(t, []byte{1, 2, 3}, r.Bytes(10))
	require.True(t, r.IsEmpty())
	require.Nil(t, r.Bytes(1))
}

func TestReader_determinism(t *testing.T) {
	seed := []byte{0x13, 0x37, 0x42, 0x99, 0xde, 0xad, 0xbe, 0xef}
	r1, r2 := New(seed), New(seed)
	for i := 0; i < 8; i++ {
		require.Equal(t, r1.Choose(17), r2.Choose(17))
		require.Equal(t, r1.IntInRange(0, 1000), r2.IntInRange(0, 1000))
	}
}
