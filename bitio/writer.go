package bitio

import (
	"io"
	"math/bits"
)

// Writer is the write-side mirror of Reader: it accumulates sub-byte
// fragments in a pending register until whole bytes can be flushed to the
// underlying stream.
//
// Unlike the Reader's positional register, the Writer's register holds its
// bits in the sequence convention of the Order that produced them, and is
// tagged with that Order. When a call arrives under the other Order the
// register is re-seated (bit-reversed) into the caller's convention before
// merging, so each field's bits land in the byte exactly as its own order
// dictates.
//
// Dropping a Writer with pending bits silently loses them; Finalize must be
// called at the end of every top-level encode.
type Writer struct {
	dst io.Writer
	// pend holds the pending bits in pendOrd's sequence convention: Msb0
	// keeps the earliest bit highest, Lsb0 keeps it lowest.
	pend uint64
	// pendN is the pending bit count, always 0..7.
	pendN   int
	pendOrd Order
	// bitsWritten is the lifetime total of bits accepted, pending register
	// included, finalize padding excluded. It mirrors the Reader's
	// cumulative BitsRead so round-trip totals line up.
	bitsWritten uint64
	scratch     [8]byte
}

// NewWriter creates a bit sink flushing whole bytes to dst.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{dst: dst}
}

// WriteBits appends the low n bits of v in Msb0 order, 0 <= n <= 64.
func (w *Writer) WriteBits(v uint64, n int) error {
	return w.WriteBitsOrder(v, n, Msb0)
}

// WriteBitsOrder appends the low n bits of v under the given bit order.
// Bits of v above n are ignored. If the combined pending length stays under
// 8, nothing reaches the stream; otherwise whole bytes are carved out and
// flushed, and the remainder becomes the new pending register tagged with
// this call's order.
//
// An Msb0 call appends after the pending bits and carves complete bytes from
// the most significant end; an Lsb0 call appends above the pending bits and
// carves from the least significant end, filling each byte upward.
func (w *Writer) WriteBitsOrder(v uint64, n int, o Order) error {
	if n < 0 || n > 64 {
		return &BitCountError{Bits: n}
	}
	if n == 0 {
		return nil
	}
	v &= mask(n)

	if w.pendN > 0 && w.pendOrd != o {
		// Re-seat the register into this call's convention.
		w.pend = uint64(bits.Reverse8(uint8(w.pend))) >> uint(8-w.pendN)
	}
	w.pendOrd = o

	var err error
	if o == Msb0 {
		err = w.writeMsb0(v, n)
	} else {
		err = w.writeLsb0(v, n)
	}
	if err != nil {
		return err
	}
	w.bitsWritten += uint64(n)
	return nil
}

// writeMsb0 merges v after the pending bits and flushes from the high end:
// the first complete byte is [pending][leading bits of v], any further whole
// bytes come straight from v, and v's trailing remainder is retained.
func (w *Writer) writeMsb0(v uint64, n int) error {
	need := 8 - w.pendN
	if n < need {
		w.pend = w.pend<<uint(n) | v
		w.pendN += n
		return nil
	}
	if err := w.emit(byte(w.pend<<uint(need) | v>>uint(n-need))); err != nil {
		return err
	}
	n -= need
	for n >= 8 {
		if err := w.emit(byte(v >> uint(n-8))); err != nil {
			return err
		}
		n -= 8
	}
	w.pend = v & mask(n)
	w.pendN = n
	return nil
}

// writeLsb0 merges v above the pending bits and flushes from the low end:
// the first complete byte is v's leading bits slotted over the pending low
// bits, further whole bytes come from v low-first, and the remainder is
// retained.
func (w *Writer) writeLsb0(v uint64, n int) error {
	need := 8 - w.pendN
	if n < need {
		w.pend |= v << uint(w.pendN)
		w.pendN += n
		return nil
	}
	if err := w.emit(byte(w.pend | v<<uint(w.pendN))); err != nil {
		return err
	}
	v >>= uint(need)
	n -= need
	for n >= 8 {
		if err := w.emit(byte(v)); err != nil {
			return err
		}
		v >>= 8
		n -= 8
	}
	w.pend = v
	w.pendN = n
	return nil
}

// WriteBytes appends whole bytes. With an aligned sink they go straight to
// the stream; mid-byte they degrade to per-byte Msb0 bit writes.
func (w *Writer) WriteBytes(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if w.pendN == 0 {
		n, err := w.dst.Write(p)
		if err != nil {
			return &WriteError{Err: err}
		}
		if n != len(p) {
			return &WriteError{Err: io.ErrShortWrite}
		}
		w.bitsWritten += uint64(len(p)) * 8
		return nil
	}
	for _, b := range p {
		if err := w.WriteBits(uint64(b), 8); err != nil {
			return err
		}
	}
	return nil
}

// Finalize pads the pending register with zero bits up to a byte boundary
// and flushes it. The padding goes on the sequence-right: an Msb0 register
// is padded in the low bits, an Lsb0 register in the high bits. Calling
// Finalize with nothing pending is a no-op, so it is idempotent. The pad
// bits do not count toward BitsWritten.
func (w *Writer) Finalize() error {
	if w.pendN == 0 {
		return nil
	}
	var b byte
	if w.pendOrd == Msb0 {
		b = byte(w.pend << uint(8-w.pendN))
	} else {
		b = byte(w.pend)
	}
	if err := w.emit(b); err != nil {
		return err
	}
	w.pend = 0
	w.pendN = 0
	return nil
}

// PartialBits returns the pending bits in sequence order. Diagnostic only.
func (w *Writer) PartialBits() []bool {
	out := make([]bool, w.pendN)
	for i := 0; i < w.pendN; i++ {
		if w.pendOrd == Msb0 {
			out[i] = w.pend>>uint(w.pendN-1-i)&1 == 1
		} else {
			out[i] = w.pend>>uint(i)&1 == 1
		}
	}
	return out
}

// BitsWritten returns the lifetime total of bits accepted, including any
// still pending, excluding finalize padding.
func (w *Writer) BitsWritten() uint64 {
	return w.bitsWritten
}

// Aligned reports whether the sink sits on a byte boundary.
func (w *Writer) Aligned() bool {
	return w.pendN == 0
}

func (w *Writer) emit(b byte) error {
	w.scratch[0] = b
	n, err := w.dst.Write(w.scratch[:1])
	if err != nil {
		return &WriteError{Err: err}
	}
	if n != 1 {
		return &WriteError{Err: io.ErrShortWrite}
	}
	return nil
}
