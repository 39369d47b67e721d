// Package entropy implements a typed, total reader over a finite byte
// slice: the generator's only non-configuration input.
//
// Every method is infallible. Once the underlying slice is exhausted, reads
// return deterministic defaults (the minimum of a range, false for
// booleans, the first non-zero-weight choice for a weighted pick) rather
// than erroring, so
// that the module builder and instruction selector never need to handle an
// entropy failure as a distinct case from "ran out of interesting bits".
package entropy

// Reader pulls typed values from a byte slice front-to-back. It never
// blocks and never fails: see the package doc for the exhaustion policy.
type Reader struct {
	data []byte
	pos  int
}

// New wraps data for typed consumption. data is not copied or mutated.
func New(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unconsumed bytes.
func (r *Reader) Len() int {
	return len(r.data) - r.pos
}

// IsEmpty reports whether the reader has no more bytes to consume.
func (r *Reader) IsEmpty() bool {
	return r.Len() <= 0
}

// Size is the size in bytes of the slice the reader was created with,
// consumed or not.
func (r *Reader) Size() int {
	return len(r.data)
}

func (r *Reader) nextByte() (byte, bool) {
	if r.IsEmpty() {
		return 0, false
	}
	b := r.data[r.pos]
	r.pos++
	return b, true
}

// Bool consumes one byte's low bit. Defaults to false on exhaustion.
func (r *Reader) Bool() bool {
	b, ok := r.nextByte()
	return ok && b&1 == 1
}

// Byte consumes a single byte, or 0 on exhaustion.
func (r *Reader) Byte() byte {
	b, _ := r.nextByte()
	return b
}

// Uint32 consumes up to 4 bytes, little-endian, zero-extending any bytes
// that entropy doesn't have left to offer.
func (r *Reader) Uint32() uint32 {
	var v uint32
	for i := 0; i < 4; i++ {
		b, ok := r.nextByte()
		if !ok {
			break
		}
		v |= uint32(b) << (8 * i)
	}
	return v
}

// Uint64 consumes up to 8 bytes, little-endian, zero-extending any bytes
// that entropy doesn't have left to offer.
func (r *Reader) Uint64() uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		b, ok := r.nextByte()
		if !ok {
			break
		}
		v |= uint64(b) << (8 * i)
	}
	return v
}

// IntInRange returns a value in [lo, hi], inclusive. If the reader is
// already exhausted, it returns lo without consuming anything, matching the
// "minimum of any range" exhaustion default. hi < lo is treated as hi == lo.
func (r *Reader) IntInRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	if r.IsEmpty() {
		return lo
	}
	span := uint64(hi-lo) + 1
	return lo + int(r.Uint64()%span)
}

// Uint32InRange is IntInRange for the unsigned 32-bit domain used by count
// and size knobs.
func (r *Reader) Uint32InRange(lo, hi uint32) uint32 {
	if hi <= lo {
		return lo
	}
	if r.IsEmpty() {
		return lo
	}
	span := uint64(hi-lo) + 1
	return lo + uint32(r.Uint64()%span)
}

// Choose picks an index in [0, n). Defaults to 0 (the first choice) on
// exhaustion or a non-positive n.
func (r *Reader) Choose(n int) int {
	if n <= 0 {
		return 0
	}
	if r.IsEmpty() {
		return 0
	}
	b, _ := r.nextByte()
	return int(b) % n
}

// WeightedChoose picks an index in [0, len(weights)) with probability
// proportional to weights[i]. All-zero weights, or exhaustion, default to
// the first index whose weight is non-zero (or 0 if every weight is zero).
func (r *Reader) WeightedChoose(weights []uint32) int {
	var total uint64
	for _, w := range weights {
		total += uint64(w)
	}
	if total == 0 {
		return 0
	}
	if r.IsEmpty() {
		for i, w := range weights {
			if w > 0 {
				return i
			}
		}
		return 0
	}
	target := r.Uint64() % total
	var acc uint64
	for i, w := range weights {
		acc += uint64(w)
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}

// Bytes consumes up to n bytes and returns whatever is available, which may
// be shorter than n (or empty) once the reader is exhausted.
func (r *Reader) Bytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	avail := r.Len()
	if n > avail {
		n = avail
	}
	if n <= 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, r.data[r.pos:r.pos+n])
	r.pos += n
	return out
}

// TakeRest consumes and returns every remaining byte.
func (r *Reader) TakeRest() []byte {
	return r.Bytes(r.Len())
}
