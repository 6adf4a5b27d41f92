package codec

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/veldt-labs/bitcodec/bitio"
)

// normIncomplete widens a truncation error to the size of the whole request,
// so a multi-chunk read that dies on its second chunk still reports the full
// width the caller asked for.
func normIncomplete(err error, wantBits int) error {
	if errors.Is(err, bitio.ErrIncomplete) {
		return &bitio.IncompleteError{Bits: uint64(wantBits)}
	}
	return err
}

// width resolves the effective bit width of a request against the type's
// natural width max. An explicit Size may narrow the width, down to zero,
// but never widen it past the carrier.
func width(c Ctx, max int) (int, error) {
	if !c.Size.IsSet() {
		return max, nil
	}
	if c.Size.BitCount() > uint64(max) {
		return 0, &SizeMismatchError{Need: c.Size.BitCount(), Capacity: uint64(max)}
	}
	return int(c.Size.BitCount()), nil
}

// readUint decodes an unsigned value of natural width max under c and
// returns it zero-extended to 64 bits.
//
// Three layouts, most specific first:
//  1. Byte-divisible width on an aligned cursor: whole bytes are pulled in
//     one ReadFull and assembled per endianness. Order is irrelevant here
//     since no byte is ever split.
//  2. Little endian wider than a byte: the value arrives low chunk first,
//     as full 8-bit chunks followed by the partial high chunk, each chunk
//     read under c.Order.
//  3. Everything else: one bit-level read of the whole width. For big and
//     native-big endianness the stream bits are the value most significant
//     first, which is exactly what a single Msb0-style read yields.
func (d *Decoder) readUint(c Ctx, max int) (uint64, error) {
	want, err := width(c, max)
	if err != nil {
		return 0, err
	}

	if want%8 == 0 && d.R.Aligned() {
		nb := want / 8
		buf := d.buf[:nb]
		if _, err := d.R.ReadFull(buf); err != nil {
			return 0, err
		}
		var v uint64
		if c.Endian.little() {
			for i := nb - 1; i >= 0; i-- {
				v = v<<8 | uint64(buf[i])
			}
		} else {
			for i := 0; i < nb; i++ {
				v = v<<8 | uint64(buf[i])
			}
		}
		return v, nil
	}

	if c.Endian.little() && want > 8 {
		var v uint64
		shift := 0
		for rem := want; rem > 0; {
			step := rem
			if step > 8 {
				step = 8
			}
			chunk, err := d.R.ReadBitsOrder(step, c.Order)
			if err != nil {
				return 0, normIncomplete(err, want)
			}
			v |= chunk << uint(shift)
			shift += step
			rem -= step
		}
		return v, nil
	}

	v, err := d.R.ReadBitsOrder(want, c.Order)
	if err != nil {
		return 0, normIncomplete(err, want)
	}
	return v, nil
}

// writeUint encodes an unsigned value of natural width max under c. It is
// the exact mirror of readUint, with one extra check: the value must fit
// the effective width, otherwise nothing is written and the mismatch is
// reported with the value's own bit length as Need.
func (e *Encoder) writeUint(v uint64, c Ctx, max int) error {
	want, err := width(c, max)
	if err != nil {
		return err
	}
	if bits.Len64(v) > want {
		return &SizeMismatchError{Need: uint64(bits.Len64(v)), Capacity: uint64(want)}
	}

	if want%8 == 0 && e.W.Aligned() {
		nb := want / 8
		buf := e.buf[:nb]
		if c.Endian.little() {
			for i := 0; i < nb; i++ {
				buf[i] = byte(v >> uint(8*i))
			}
		} else {
			for i := 0; i < nb; i++ {
				buf[i] = byte(v >> uint(8*(nb-1-i)))
			}
		}
		return e.W.WriteBytes(buf)
	}

	if c.Endian.little() && want > 8 {
		for rem := want; rem > 0; {
			step := rem
			if step > 8 {
				step = 8
			}
			if err := e.W.WriteBitsOrder(v, step, c.Order); err != nil {
				return err
			}
			v >>= uint(step)
			rem -= step
		}
		return nil
	}

	return e.W.WriteBitsOrder(v, want, c.Order)
}

// writeInt encodes a signed value given as its two's complement pattern u of
// width max. Negative values have no sub-width two's complement form, so
// narrowing them is rejected; non-negative values narrow exactly like
// unsigned ones.
func (e *Encoder) writeInt(u uint64, neg bool, c Ctx, max int) error {
	if neg && c.Size.IsSet() && c.Size.BitCount() < uint64(max) {
		return &SizeMismatchError{Need: uint64(max), Capacity: c.Size.BitCount()}
	}
	return e.writeUint(u, c, max)
}

// U8 reads an unsigned 8-bit value. An explicit Size narrows the width; the
// unread high bits of the result are zero.
func (d *Decoder) U8(c Ctx) (uint8, error) {
	v, err := d.readUint(c, 8)
	return uint8(v), err
}

// U16 reads an unsigned 16-bit value.
func (d *Decoder) U16(c Ctx) (uint16, error) {
	v, err := d.readUint(c, 16)
	return uint16(v), err
}

// U32 reads an unsigned 32-bit value.
func (d *Decoder) U32(c Ctx) (uint32, error) {
	v, err := d.readUint(c, 32)
	return uint32(v), err
}

// U64 reads an unsigned 64-bit value.
func (d *Decoder) U64(c Ctx) (uint64, error) {
	return d.readUint(c, 64)
}

// I8 reads a signed 8-bit value. Sub-width reads are zero-extended, so a
// narrowed field can never come back negative.
func (d *Decoder) I8(c Ctx) (int8, error) {
	v, err := d.readUint(c, 8)
	return int8(uint8(v)), err
}

// I16 reads a signed 16-bit value.
func (d *Decoder) I16(c Ctx) (int16, error) {
	v, err := d.readUint(c, 16)
	return int16(uint16(v)), err
}

// I32 reads a signed 32-bit value.
func (d *Decoder) I32(c Ctx) (int32, error) {
	v, err := d.readUint(c, 32)
	return int32(uint32(v)), err
}

// I64 reads a signed 64-bit value.
func (d *Decoder) I64(c Ctx) (int64, error) {
	v, err := d.readUint(c, 64)
	return int64(v), err
}

// floatWidth validates the Size of a float request. Floats only exist at
// their natural IEEE 754 width: a larger request cannot be satisfied and a
// smaller one has no defined encoding.
func floatWidth(c Ctx, natural int) error {
	if !c.Size.IsSet() || c.Size.BitCount() == uint64(natural) {
		return nil
	}
	if c.Size.BitCount() > uint64(natural) {
		return &SizeMismatchError{Need: c.Size.BitCount(), Capacity: uint64(natural)}
	}
	return &InvalidParamError{Msg: fmt.Sprintf("float%d cannot be narrowed to %d bits", natural, c.Size.BitCount())}
}

// F32 reads an IEEE 754 single-precision float. The bit pattern is carried
// verbatim, NaN payloads included.
func (d *Decoder) F32(c Ctx) (float32, error) {
	if err := floatWidth(c, 32); err != nil {
		return 0, err
	}
	v, err := d.readUint(c, 32)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

// F64 reads an IEEE 754 double-precision float.
func (d *Decoder) F64(c Ctx) (float64, error) {
	if err := floatWidth(c, 64); err != nil {
		return 0, err
	}
	v, err := d.readUint(c, 64)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// Bool reads a boolean, encoded as an unsigned integer of one byte unless
// Size narrows it. Only the patterns 0 and 1 are valid.
func (d *Decoder) Bool(c Ctx) (bool, error) {
	v, err := d.readUint(c, 8)
	if err != nil {
		return false, err
	}
	if v > 1 {
		return false, &ParseError{Msg: fmt.Sprintf("boolean pattern 0x%02X is neither 0 nor 1", v)}
	}
	return v == 1, nil
}

// Bytes fills p with len(p) bytes from the stream. An explicit Size must be
// byte-divisible and agree with len(p). Under Msb0 (or on an aligned
// cursor, where order cannot matter) the bytes come via the cursor's bulk
// path; a mid-byte Lsb0 run assembles each byte from an 8-bit Lsb0 read.
func (d *Decoder) Bytes(p []byte, c Ctx) error {
	if err := bytesWidth(c, len(p)); err != nil {
		return err
	}
	if c.Order == bitio.Msb0 || d.R.Aligned() {
		_, err := d.R.ReadFull(p)
		return err
	}
	for i := range p {
		v, err := d.R.ReadBitsOrder(8, c.Order)
		if err != nil {
			return normIncomplete(err, len(p)*8)
		}
		p[i] = byte(v)
	}
	return nil
}

func bytesWidth(c Ctx, n int) error {
	if !c.Size.IsSet() {
		return nil
	}
	nb, err := c.Size.ByteCount()
	if err != nil {
		return err
	}
	if nb != uint64(n) {
		return &SizeMismatchError{Need: uint64(n) * 8, Capacity: c.Size.BitCount()}
	}
	return nil
}

// U8 writes an unsigned 8-bit value.
func (e *Encoder) U8(v uint8, c Ctx) error {
	return e.writeUint(uint64(v), c, 8)
}

// U16 writes an unsigned 16-bit value.
func (e *Encoder) U16(v uint16, c Ctx) error {
	return e.writeUint(uint64(v), c, 16)
}

// U32 writes an unsigned 32-bit value.
func (e *Encoder) U32(v uint32, c Ctx) error {
	return e.writeUint(uint64(v), c, 32)
}

// U64 writes an unsigned 64-bit value.
func (e *Encoder) U64(v uint64, c Ctx) error {
	return e.writeUint(v, c, 64)
}

// I8 writes a signed 8-bit value.
func (e *Encoder) I8(v int8, c Ctx) error {
	return e.writeInt(uint64(uint8(v)), v < 0, c, 8)
}

// I16 writes a signed 16-bit value.
func (e *Encoder) I16(v int16, c Ctx) error {
	return e.writeInt(uint64(uint16(v)), v < 0, c, 16)
}

// I32 writes a signed 32-bit value.
func (e *Encoder) I32(v int32, c Ctx) error {
	return e.writeInt(uint64(uint32(v)), v < 0, c, 32)
}

// I64 writes a signed 64-bit value.
func (e *Encoder) I64(v int64, c Ctx) error {
	return e.writeInt(uint64(v), v < 0, c, 64)
}

// F32 writes an IEEE 754 single-precision float, bit pattern verbatim.
func (e *Encoder) F32(v float32, c Ctx) error {
	if err := floatWidth(c, 32); err != nil {
		return err
	}
	return e.writeUint(uint64(math.Float32bits(v)), c, 32)
}

// F64 writes an IEEE 754 double-precision float.
func (e *Encoder) F64(v float64, c Ctx) error {
	if err := floatWidth(c, 64); err != nil {
		return err
	}
	return e.writeUint(math.Float64bits(v), c, 64)
}

// Bool writes a boolean as 1 or 0.
func (e *Encoder) Bool(v bool, c Ctx) error {
	var u uint64
	if v {
		u = 1
	}
	return e.writeUint(u, c, 8)
}

// Bytes writes p verbatim, mirroring Decoder.Bytes.
func (e *Encoder) Bytes(p []byte, c Ctx) error {
	if err := bytesWidth(c, len(p)); err != nil {
		return err
	}
	if c.Order == bitio.Msb0 || e.W.Aligned() {
		return e.W.WriteBytes(p)
	}
	for _, b := range p {
		if err := e.W.WriteBitsOrder(uint64(b), 8, c.Order); err != nil {
			return err
		}
	}
	return nil
}
