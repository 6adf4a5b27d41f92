// Package bitio implements a low-level bit stream Reader and Writer on top of
// ordinary byte streams. It allows reading and writing data that is not
// aligned to standard 8-bit byte boundaries.
//
// Use Case:
// - Packing boolean flags (1 bit instead of 8).
// - Custom small integers (e.g., a 3-bit field).
// - The cursor layer under the codec package's primitive and collection codecs.
//
// Because the underlying stream only yields whole bytes, both sides keep a
// register of fewer than 8 pending bits between calls: the Reader stashes the
// unconsumed tail of the last byte it pulled in, the Writer accumulates
// fragments until a whole byte can be flushed. A single call moves at most 64
// bits (a uint64 carrier); wider values are chunked by the caller.
package bitio

// Order selects which end of a physical byte the first logical bit maps to.
// It is carried as an explicit parameter on order-sensitive calls, never as
// stream-global state, because bit order may change from field to field.
type Order uint8

const (
	// Msb0 places the first logical bit at the most significant bit of the
	// byte. The default everywhere an Order is not given.
	Msb0 Order = iota
	// Lsb0 places the first logical bit at the least significant bit of the
	// byte, filling upward.
	Lsb0
)

func (o Order) String() string {
	switch o {
	case Msb0:
		return "msb0"
	case Lsb0:
		return "lsb0"
	}
	return "unknown"
}

// BytesKind reports which path a Reader.ReadFull call took.
type BytesKind uint8

const (
	// KindRaw means the bytes were copied straight from the underlying
	// stream with no bit shifting (the cursor was byte-aligned).
	KindRaw BytesKind = iota
	// KindBits means the cursor sat mid-byte and the bytes were assembled
	// from 8-bit reads.
	KindBits
)

func (k BytesKind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindBits:
		return "bits"
	}
	return "unknown"
}

// mask returns a value with the low n bits set, n in [0,64].
func mask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (1 << uint(n)) - 1
}
