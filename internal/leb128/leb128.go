// Package leb128 encodes and decodes the variable-length integers used
// throughout the Wasm binary format.
//
// Every encoder here accepts a minWidth parameter: the generation source
// lets a Config demand that LEB-encoded integers never be shorter than some
// number of bytes, padding with the continuation bit and trailing zero
// payload bits ("over-long encoding") so that decoders are forced to handle
// more than the minimal one-byte case. The teacher's own codec (adapted
// from wazero's internal/wasm/binary) has no such knob; minWidth is this
// port's addition, threaded explicitly through every call rather than held
// as global state, so two encodes with different widths can't interfere.
package leb128

// EncodeUint32 appends the unsigned LEB128 encoding of v to dst, padded to
// at least minWidth bytes.
func EncodeUint32(dst []byte, v uint32, minWidth int) []byte {
	return encodeUint64(dst, uint64(v), minWidth)
}

// EncodeUint64 appends the unsigned LEB128 encoding of v to dst, padded to
// at least minWidth bytes.
func EncodeUint64(dst []byte, v uint64, minWidth int) []byte {
	return encodeUint64(dst, v, minWidth)
}

func encodeUint64(dst []byte, v uint64, minWidth int) []byte {
	n := 0
	for {
		b := byte(v & 0x7f)
		v >>= 7
		n++
		more := v != 0 || n < minWidth
		if more {
			b |= 0x80
		}
		dst = append(dst, b)
		if !more {
			break
		}
	}
	return dst
}

// EncodeInt32 appends the signed LEB128 encoding of v to dst, padded to at
// least minWidth bytes.
func EncodeInt32(dst []byte, v int32, minWidth int) []byte {
	return encodeInt64(dst, int64(v), minWidth)
}

// EncodeInt64 appends the signed LEB128 encoding of v to dst, padded to at
// least minWidth bytes.
func EncodeInt64(dst []byte, v int64, minWidth int) []byte {
	return encodeInt64(dst, v, minWidth)
}

func encodeInt64(dst []byte, v int64, minWidth int) []byte {
	n := 0
	for {
		b := byte(v & 0x7f)
		v >>= 7
		n++
		signBitSet := b&0x40 != 0
		done := (v == 0 && !signBitSet) || (v == -1 && signBitSet)
		more := !done || n < minWidth
		if more {
			b |= 0x80
		}
		dst = append(dst, b)
		if !more {
			break
		}
		if done {
			// Still padding to minWidth: once the natural encoding has
			// terminated, every further byte just repeats the sign's
			// continuation payload (0 for positive, 0x7f for negative).
			for n < minWidth {
				pad := byte(0)
				if v == -1 {
					pad = 0x7f
				}
				n++
				if n < minWidth {
					pad |= 0x80
				}
				dst = append(dst, pad)
			}
			break
		}
	}
	return dst
}

// DecodeUint32 reads an unsigned LEB128 value from the front of src,
// returning the value and the number of bytes consumed.
func DecodeUint32(src []byte) (uint32, int) {
	v, n := decodeUint64(src)
	return uint32(v), n
}

// DecodeUint64 reads an unsigned LEB128 value from the front of src,
// returning the value and the number of bytes consumed.
func DecodeUint64(src []byte) (uint64, int) {
	return decodeUint64(src)
}

func decodeUint64(src []byte) (uint64, int) {
	var result uint64
	var shift uint
	for i, b := range src {
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, i + 1
		}
		shift += 7
	}
	return result, len(src)
}

// DecodeInt32 reads a signed LEB128 value from the front of src, returning
// the value and the number of bytes consumed.
func DecodeInt32(src []byte) (int32, int) {
	v, n := decodeInt64(src)
	return int32(v), n
}

// DecodeInt64 reads a signed LEB128 value from the front of src, returning
// the value and the number of bytes consumed.
func DecodeInt64(src []byte) (int64, int) {
	return decodeInt64(src)
}

func decodeInt64(src []byte) (int64, int) {
	var result int64
	var shift uint
	var b byte
	i := 0
	for ; i < len(src); i++ {
		b = src[i]
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	if shift < 64 && b&0x40 != 0 {
		result |= -1 << shift
	}
	return result, i + 1
}
