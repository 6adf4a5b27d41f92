package codec

import (
	"encoding/binary"
	"math/big"
)

// The fixed-width integer codecs top out at the 64-bit carrier; 128-bit
// values ride on math/big and are chunked through the cursor in at most
// 64-bit pieces.

var (
	// two128 is 1<<128, the modulus of the 128-bit two's complement space.
	two128 = new(big.Int).Lsh(big.NewInt(1), 128)
	// minI128 is -1<<127, the smallest signed 128-bit value.
	minI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// bigWidth resolves the effective width of a 128-bit request.
func bigWidth(c Ctx) (int, error) {
	if !c.Size.IsSet() {
		return 128, nil
	}
	if c.Size.BitCount() > 128 {
		return 0, &SizeMismatchError{Need: c.Size.BitCount(), Capacity: 128}
	}
	return int(c.Size.BitCount()), nil
}

// BigUint reads an unsigned 128-bit value. The chunking mirrors readUint:
// little endian arrives low byte chunk first, big endian as one high piece
// followed by the low 64 bits.
func (d *Decoder) BigUint(c Ctx) (*big.Int, error) {
	want, err := bigWidth(c)
	if err != nil {
		return nil, err
	}
	return d.readBig(want, c)
}

func (d *Decoder) readBig(want int, c Ctx) (*big.Int, error) {
	buf := d.buf[:16]
	for i := range buf {
		buf[i] = 0
	}

	if c.Endian.little() && want > 8 {
		// Low chunk first; buf is filled from its big end so that
		// SetBytes, which is big-endian, sees the right layout.
		i := 0
		for rem := want; rem > 0; i++ {
			step := rem
			if step > 8 {
				step = 8
			}
			chunk, err := d.R.ReadBitsOrder(step, c.Order)
			if err != nil {
				return nil, normIncomplete(err, want)
			}
			buf[15-i] = byte(chunk)
			rem -= step
		}
	} else {
		var hi, lo uint64
		if want > 64 {
			var err error
			if hi, err = d.R.ReadBitsOrder(want-64, c.Order); err != nil {
				return nil, normIncomplete(err, want)
			}
			if lo, err = d.R.ReadBitsOrder(64, c.Order); err != nil {
				return nil, normIncomplete(err, want)
			}
		} else {
			var err error
			if lo, err = d.R.ReadBitsOrder(want, c.Order); err != nil {
				return nil, normIncomplete(err, want)
			}
		}
		binary.BigEndian.PutUint64(buf[0:8], hi)
		binary.BigEndian.PutUint64(buf[8:16], lo)
	}
	return new(big.Int).SetBytes(buf), nil
}

// BigInt reads a signed 128-bit value. At the full width the top bit is the
// sign and the pattern is two's complement; sub-width reads zero-extend and
// therefore always come back non-negative, like the narrower signed codecs.
func (d *Decoder) BigInt(c Ctx) (*big.Int, error) {
	want, err := bigWidth(c)
	if err != nil {
		return nil, err
	}
	v, err := d.readBig(want, c)
	if err != nil {
		return nil, err
	}
	if want == 128 && v.Bit(127) == 1 {
		v.Sub(v, two128)
	}
	return v, nil
}

// BigUint writes an unsigned 128-bit value. Negative input is a caller
// mistake, not a layout problem, and is rejected as an invalid parameter.
func (e *Encoder) BigUint(v *big.Int, c Ctx) error {
	if v.Sign() < 0 {
		return &InvalidParamError{Msg: "negative value for an unsigned 128-bit field"}
	}
	want, err := bigWidth(c)
	if err != nil {
		return err
	}
	if v.BitLen() > want {
		return &SizeMismatchError{Need: uint64(v.BitLen()), Capacity: uint64(want)}
	}
	return e.writeBig(v, want, c)
}

func (e *Encoder) writeBig(v *big.Int, want int, c Ctx) error {
	raw := v.FillBytes(e.buf[:16])

	if c.Endian.little() && want > 8 {
		for i, rem := 0, want; rem > 0; i++ {
			step := rem
			if step > 8 {
				step = 8
			}
			if err := e.W.WriteBitsOrder(uint64(raw[15-i]), step, c.Order); err != nil {
				return err
			}
			rem -= step
		}
		return nil
	}

	hi := binary.BigEndian.Uint64(raw[0:8])
	lo := binary.BigEndian.Uint64(raw[8:16])
	if want > 64 {
		if err := e.W.WriteBitsOrder(hi, want-64, c.Order); err != nil {
			return err
		}
		return e.W.WriteBitsOrder(lo, 64, c.Order)
	}
	return e.W.WriteBitsOrder(lo, want, c.Order)
}

// BigInt writes a signed 128-bit value. Negative values exist only at the
// full width, as two's complement; narrowing one is a size mismatch, matching
// the fixed-width signed codecs. Positive values at the full width must
// leave the sign bit clear.
func (e *Encoder) BigInt(v *big.Int, c Ctx) error {
	want, err := bigWidth(c)
	if err != nil {
		return err
	}
	if v.Sign() < 0 {
		if want < 128 {
			return &SizeMismatchError{Need: 128, Capacity: uint64(want)}
		}
		if v.Cmp(minI128) < 0 {
			return &SizeMismatchError{Need: uint64(v.BitLen()) + 1, Capacity: 128}
		}
		return e.writeBig(new(big.Int).Add(v, two128), want, c)
	}
	if want == 128 {
		if v.BitLen() > 127 {
			return &SizeMismatchError{Need: uint64(v.BitLen()) + 1, Capacity: 128}
		}
	} else if v.BitLen() > want {
		return &SizeMismatchError{Need: uint64(v.BitLen()), Capacity: uint64(want)}
	}
	return e.writeBig(v, want, c)
}
