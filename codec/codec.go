// Package codec implements typed value encoding and decoding on top of the
// bitio cursor layer.
//
// Every read and write takes an explicit Ctx carrying endianness, an
// optional bit-level size, and bit order, so the same value type can be laid
// out differently from field to field. Primitives cover the fixed-width
// integers, floats, booleans and raw byte runs; 128-bit integers ride on
// math/big; variable-length collections are driven by a Limit describing
// when to stop. The top-level entry points in marshal.go tie a whole value
// tree to a byte buffer with a starting bit offset.
//
// All decoding errors unwrap to a small set of sentinels, so callers can
// classify failures with errors.Is without string matching.
package codec

import (
	"github.com/veldt-labs/bitcodec/bitio"
)

// Decoder reads typed values from a bit cursor. Nested decoders share
// stream position by threading the same Decoder, never by re-wrapping the
// underlying reader.
type Decoder struct {
	R *bitio.Reader

	buf [16]byte
}

// NewDecoder wraps an existing bit cursor.
func NewDecoder(r *bitio.Reader) *Decoder {
	return &Decoder{R: r}
}

// Encoder writes typed values to a bit sink. The caller owns finalization:
// after the last value, bitio.Writer.Finalize must flush the partial byte.
type Encoder struct {
	W *bitio.Writer

	buf [16]byte
}

// NewEncoder wraps an existing bit sink.
func NewEncoder(w *bitio.Writer) *Encoder {
	return &Encoder{W: w}
}
