package codec

import (
	"io"

	"github.com/veldt-labs/bitcodec/bitio"
	"github.com/veldt-labs/bitcodec/bytebuf"
)

// Unmarshaler is implemented by types that decode themselves from a bit
// stream. Implementations read their fields through d and must leave the
// cursor exactly past their own encoding, so the caller can keep decoding
// whatever follows.
type Unmarshaler interface {
	UnmarshalBits(d *Decoder, c Ctx) error
}

// Marshaler is the write-side counterpart. Implementations must not
// finalize the sink; the top-level entry owns the final padding.
type Marshaler interface {
	MarshalBits(e *Encoder, c Ctx) error
}

// Unmarshal decodes v from data, starting at the given bit offset from the
// start of the buffer. It returns the total bits consumed including the
// offset, which is the position where decoding of a following value would
// start.
func Unmarshal(data []byte, offsetBits uint64, v Unmarshaler, c Ctx) (uint64, error) {
	r := bitio.NewReader(bytebuf.NewReader(data))
	if err := r.SkipBits(offsetBits); err != nil {
		return 0, err
	}
	if err := v.UnmarshalBits(NewDecoder(r), c); err != nil {
		return 0, err
	}
	return r.BitsRead(), nil
}

// UnmarshalFull decodes v from data and requires the value to account for
// the whole buffer: any untouched trailing byte fails with a
// TrailingDataError. Unread bits inside the final partially consumed byte
// are tolerated, since the encode side pads exactly there.
func UnmarshalFull(data []byte, v Unmarshaler, c Ctx) error {
	r := bitio.NewReader(bytebuf.NewReader(data))
	if err := v.UnmarshalBits(NewDecoder(r), c); err != nil {
		return err
	}
	touched := (r.BitsRead() + 7) / 8
	if rest := uint64(len(data)) - touched; rest > 0 {
		return &TrailingDataError{Bits: rest * 8}
	}
	return nil
}

// UnmarshalReader decodes v from an arbitrary byte stream and returns the
// bits consumed. The reader is left positioned at the next whole byte only
// if the value's encoding is byte-divisible; a bit-granular tail stays in
// the cursor and is lost with it.
func UnmarshalReader(src io.Reader, v Unmarshaler, c Ctx) (uint64, error) {
	r := bitio.NewReader(src)
	if err := v.UnmarshalBits(NewDecoder(r), c); err != nil {
		return 0, err
	}
	return r.BitsRead(), nil
}

// Marshal encodes v into a fresh byte buffer, padding the last partial byte
// with zero bits.
func Marshal(v Marshaler, c Ctx) ([]byte, error) {
	out := bytebuf.NewWriter(nil)
	w := bitio.NewWriter(out)
	if err := v.MarshalBits(NewEncoder(w), c); err != nil {
		return nil, err
	}
	if err := w.Finalize(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// MarshalWriter encodes v to an arbitrary byte stream and returns the bits
// written, excluding the final padding.
func MarshalWriter(dst io.Writer, v Marshaler, c Ctx) (uint64, error) {
	w := bitio.NewWriter(dst)
	if err := v.MarshalBits(NewEncoder(w), c); err != nil {
		return 0, err
	}
	if err := w.Finalize(); err != nil {
		return 0, err
	}
	return w.BitsWritten(), nil
}
