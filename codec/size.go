package codec

import "fmt"

// Size is an optional explicit width for a single value, measured in bits.
// The zero value means unset, which lets each codec fall back to the type's
// natural width.
type Size struct {
	bits uint64
	set  bool
}

// Bits returns an explicit width of n bits.
func Bits(n uint64) Size {
	return Size{bits: n, set: true}
}

// Bytes returns an explicit width of n whole bytes.
func Bytes(n uint64) Size {
	return Size{bits: n * 8, set: true}
}

// IsSet reports whether an explicit width was given.
func (s Size) IsSet() bool {
	return s.set
}

// BitCount returns the explicit width in bits. Only meaningful when IsSet.
func (s Size) BitCount() uint64 {
	return s.bits
}

// ByteCount converts the width to whole bytes, failing with an
// InvalidParamError when it is not byte-divisible. Byte-oriented requests
// go through this so a 12-bit size cannot silently round.
func (s Size) ByteCount() (uint64, error) {
	if s.bits%8 != 0 {
		return 0, &InvalidParamError{Msg: fmt.Sprintf("size of %d bits is not byte-divisible", s.bits)}
	}
	return s.bits / 8, nil
}

func (s Size) String() string {
	if !s.set {
		return "unset"
	}
	return fmt.Sprintf("%d bits", s.bits)
}
