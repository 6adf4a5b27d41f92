package codec

import (
	"fmt"

	"github.com/veldt-labs/bitcodec/bitio"
)

// Ctx is the per-call codec context: which byte order multi-byte values use,
// an optional explicit bit width, and which end of each byte fills first.
//
// The zero value means native endianness, natural width, Msb0 order, which
// is the right default for ordinary byte-oriented formats. Contexts are
// plain values; the With helpers derive variants without mutating the
// original, so a struct codec can hand each field its own context.
type Ctx struct {
	Endian Endian
	Size   Size
	Order  bitio.Order
}

// WithEndian returns a copy of the context with the byte order replaced.
func (c Ctx) WithEndian(e Endian) Ctx {
	c.Endian = e
	return c
}

// WithSize returns a copy of the context with the explicit width replaced.
func (c Ctx) WithSize(s Size) Ctx {
	c.Size = s
	return c
}

// WithOrder returns a copy of the context with the bit order replaced.
func (c Ctx) WithOrder(o bitio.Order) Ctx {
	c.Order = o
	return c
}

func (c Ctx) String() string {
	return fmt.Sprintf("codec.Ctx{%s, %s, %s}", c.Endian, c.Size, c.Order)
}
