package leb128

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeUint32_roundTrip(t *testing.T) {
	cases := []uint32{0, 1, 127, 128, 300, math.MaxUint32}
	for _, v := range cases {
		enc := EncodeUint32(nil, v, 1)
		got, n := DecodeUint32(enc)
		require.Equal(t, v, got)
		require.Equal(t, len(enc), n)
	}
}

func TestEncodeUint32_knownBytes(t *testing.T) {
	require.Equal(t, []byte{0x00}, EncodeUint32(nil, 0, 1))
	require.Equal(t, []byte{0x7f}, EncodeUint32(nil, 127, 1))
	require.Equal(t, []byte{0x80, 0x01}, EncodeUint32(nil, 128, 1))
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}, EncodeUint32(nil, math.MaxUint32, 1))
}

func TestEncodeInt32_knownBytes(t *testing.T) {
	require.Equal(t, []byte{0x00}, EncodeInt32(nil, 0, 1))
	require.Equal(t, []byte{0x7f}, EncodeInt32(nil, -1, 1))
	require.Equal(t, []byte{0x9b, 0xf1, 0x59}, EncodeInt32(nil, -624485, 1))
}

func TestEncodeDecodeInt32_roundTrip(t *testing.T) {
	cases := []int32{0, -1, 1, 63, -63, 64, -64, math.MaxInt32, math.MinInt32, -624485}
	for _, v := range cases {
		enc := EncodeInt32(nil, v, 1)
		got, n := DecodeInt32(enc)
		require.Equal(t, v, got)
		require.Equal(t, len(enc), n)
	}
}

func TestEncodeDecodeInt64_roundTrip(t *testing.T) {
	cases := []int64{0, -1, 1, math.MaxInt64, math.MinInt64, -624485}
	for _, v := range cases {
		enc := EncodeInt64(nil, v, 1)
		got, n := DecodeInt64(enc)
		require.Equal(t, v, got)
		require.Equal(t, len(enc), n)
	}
}

func TestEncodeUint32_minWidthPadsWithOverlongEncoding(t *testing.T) {
	enc := EncodeUint32(nil, 0, 5)
	require.Len(t, enc, 5)
	require.Equal(t, []byte{0x80, 0x80, 0x80, 0x80, 0x00}, enc)
	got, n := DecodeUint32(enc)
	require.EqualValues(t, 0, got)
	require.Equal(t, 5, n)
}

func TestEncodeInt32_minWidthPadsAndDecodesSameValue(t *testing.T) {
	minimal := EncodeInt32(nil, -1, 1)
	require.Len(t, minimal, 1)

	padded := EncodeInt32(nil, -1, 4)
	require.Len(t, padded, 4)
	got, n := DecodeInt32(padded)
	require.EqualValues(t, -1, got)
	require.Equal(t, 4, n)
}

func TestEncodeUint32_minWidthNoopWhenNaturalEncodingAlreadyWider(t *testing.T) {
	enc := EncodeUint32(nil, 300, 1)
	require.Len(t, enc, 2)
	enc2 := EncodeUint32(nil, 300, 2)
	require.Equal(t, enc, enc2)
}

func TestDecode_stopsAtFirstTerminatedByte(t *testing.T) {
	src := []byte{0x80, 0x01, 0xff, 0xff}
	v, n := DecodeUint32(src)
	require.EqualValues(t, 128, v)
	require.Equal(t, 2, n)
}

func TestEncodeUint32_appendsToExistingSlice(t *testing.T) {
	dst := []byte{0xAB}
	enc := EncodeUint32(dst, 1, 1)
	require.Equal(t, []byte{0xAB, 0x01}, enc)
}
