package bitio

import (
	"encoding/binary"
	"errors"
	"io"
)

// Reader is a bit-granular cursor over a byte stream.
//
// The underlying stream only yields whole bytes, so a read that stops
// mid-byte leaves the unconsumed tail of that byte in a pending register.
// The register holds the remaining bits right-aligned with their relative
// positions preserved, which lets a later call of either Order pick up from
// the correct end: Msb0 consumes from the high end downward, Lsb0 from the
// low end upward.
//
// A Reader exclusively owns its stream for its whole lifetime. Nested
// decoders share stream position by threading the same *Reader, not by
// aliasing the stream.
type Reader struct {
	src io.Reader
	// pend holds the unconsumed bits of the current partial byte.
	pend uint64
	// pendN is the pending bit count, 0..8. It only reaches 8 when AtEnd
	// caches a probed byte; read operations always leave fewer than 8.
	pendN int
	// bitsRead is the lifetime total of bits handed out, equal to the sum
	// of all read amounts. AtEnd probes and finalize padding never count.
	bitsRead uint64
	scratch  [8]byte
}

// NewReader creates a bit cursor over src positioned at its first bit.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src}
}

// ReadBits reads the next n bits in Msb0 order, 0 <= n <= 64.
func (r *Reader) ReadBits(n int) (uint64, error) {
	return r.ReadBitsOrder(n, Msb0)
}

// ReadBitsOrder reads the next n bits under the given bit order and returns
// them as the low n bits of the result. It fails with an IncompleteError
// carrying n when the stream cannot supply enough bytes; other stream errors
// pass through terminally. On success the cursor advances by exactly n bits.
//
// Three cases, decided by comparing n against the pending register:
// equal or smaller requests are served from the register alone; larger
// requests consume the whole register, pull in just enough whole bytes to
// cover the shortfall, and stash the unused tail of the last byte as the new
// register.
func (r *Reader) ReadBitsOrder(n int, o Order) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, &BitCountError{Bits: n}
	}
	if n == 0 {
		return 0, nil
	}

	if n <= r.pendN {
		var v uint64
		if o == Msb0 {
			// Take from the high end of the register.
			v = r.pend >> uint(r.pendN-n)
			r.pend &= mask(r.pendN - n)
		} else {
			// Take from the low end of the register.
			v = r.pend & mask(n)
			r.pend >>= uint(n)
		}
		r.pendN -= n
		r.bitsRead += uint64(n)
		return v, nil
	}

	// The register alone cannot satisfy the request: read exactly enough
	// whole bytes to cover the shortfall.
	short := n - r.pendN
	nbytes := (short + 7) / 8
	if _, err := io.ReadFull(r.src, r.scratch[:nbytes]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, &IncompleteError{Bits: uint64(n)}
		}
		return 0, err
	}
	keep := nbytes*8 - short

	var v uint64
	if o == Msb0 {
		// Assemble the new bytes big-endian: the first byte's high bit is
		// the next logical bit. The result is the register followed by the
		// leading shortfall bits; the trailing bits become the new register.
		var chunk uint64
		if nbytes == 8 {
			chunk = binary.BigEndian.Uint64(r.scratch[:8])
		} else {
			for _, b := range r.scratch[:nbytes] {
				chunk = chunk<<8 | uint64(b)
			}
		}
		v = r.pend<<uint(short) | chunk>>uint(keep)
		r.pend = chunk & mask(keep)
	} else {
		// Assemble little-endian: the first byte's low bit is the next
		// logical bit. The register supplies the low end of the result, the
		// low shortfall bits of the chunk sit above it, and the top of the
		// last byte becomes the new register.
		var chunk uint64
		if nbytes == 8 {
			chunk = binary.LittleEndian.Uint64(r.scratch[:8])
		} else {
			for i := nbytes - 1; i >= 0; i-- {
				chunk = chunk<<8 | uint64(r.scratch[i])
			}
		}
		v = r.pend | (chunk&mask(short))<<uint(r.pendN)
		r.pend = chunk >> uint(short)
	}
	r.pendN = keep
	r.bitsRead += uint64(n)
	return v, nil
}

// ReadFull fills p with the next len(p)*8 bits and reports which path was
// taken. With an aligned cursor the bytes are copied straight from the
// stream (KindRaw, no bit shifting); mid-byte they are assembled from 8-bit
// Msb0 reads (KindBits). Fails with an IncompleteError carrying len(p)*8 if
// the stream runs out.
func (r *Reader) ReadFull(p []byte) (BytesKind, error) {
	if len(p) == 0 {
		return KindRaw, nil
	}
	if r.pendN == 0 {
		if _, err := io.ReadFull(r.src, p); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return KindRaw, &IncompleteError{Bits: uint64(len(p)) * 8}
			}
			return KindRaw, err
		}
		r.bitsRead += uint64(len(p)) * 8
		return KindRaw, nil
	}
	for i := range p {
		v, err := r.ReadBits(8)
		if err != nil {
			if errors.Is(err, ErrIncomplete) {
				err = &IncompleteError{Bits: uint64(len(p)) * 8}
			}
			return KindBits, err
		}
		p[i] = byte(v)
	}
	return KindBits, nil
}

// SkipBits discards the next n bits. Used to apply a starting bit offset
// before real decoding begins.
func (r *Reader) SkipBits(n uint64) error {
	total := n
	for n > 0 {
		step := n
		if step > 64 {
			step = 64
		}
		if _, err := r.ReadBitsOrder(int(step), Msb0); err != nil {
			if errors.Is(err, ErrIncomplete) {
				err = &IncompleteError{Bits: total}
			}
			return err
		}
		n -= step
	}
	return nil
}

// AtEnd probes whether the stream has any bits left. With pending bits it
// answers false immediately. Otherwise it reads one byte: a clean EOF means
// true; a successful read caches the byte in the pending register (so
// nothing is lost to the probe) and answers false. Any other stream failure
// also answers false and is left for the next real read to report.
func (r *Reader) AtEnd() bool {
	if r.pendN > 0 {
		return false
	}
	if _, err := io.ReadFull(r.src, r.scratch[:1]); err != nil {
		return err == io.EOF
	}
	r.pend = uint64(r.scratch[0])
	r.pendN = 8
	return false
}

// PartialBits returns the pending unconsumed bits, highest position first.
// Diagnostic only; it does not consume anything.
func (r *Reader) PartialBits() []bool {
	out := make([]bool, r.pendN)
	for i := 0; i < r.pendN; i++ {
		out[i] = r.pend>>uint(r.pendN-1-i)&1 == 1
	}
	return out
}

// BitsRead returns the lifetime total of bits consumed.
func (r *Reader) BitsRead() uint64 {
	return r.bitsRead
}

// Aligned reports whether the cursor sits on a byte boundary.
func (r *Reader) Aligned() bool {
	return r.pendN == 0
}
