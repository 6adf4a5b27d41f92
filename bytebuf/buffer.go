// Package bytebuf provides lightweight, non-thread-safe byte cursors used as
// the in-memory ends of a bit stream.
//
// Standard bytes.Buffer or bufio can be overkill for simple, linear
// serialization tasks. Reader walks a slice with an integer offset and Writer
// appends to a slice, nothing more. Unlike a bare slice cursor, Reader
// implements io.Reader/io.ByteReader honestly: running past the end yields
// io.EOF instead of a panic, which the bit layer above turns into its own
// incomplete-read error.
package bytebuf

import "io"

type Reader struct {
	// buf is the underlying data source.
	buf []byte
	// off tracks the current reading position (cursor).
	off int
}

type Writer struct {
	// buf is the accumulating byte slice.
	buf []byte
}

// NewReader creates a Reader that consumes the provided byte slice.
// The slice is not copied; the caller must not mutate it while reading.
func NewReader(bb []byte) *Reader {
	return &Reader{buf: bb}
}

// NewWriter creates a Writer that appends to the provided initial slice.
// Often called with make([]byte, 0, capacity) to pre-allocate memory.
func NewWriter(bb []byte) *Writer {
	return &Writer{buf: bb}
}

// Read copies up to len(p) bytes into p and advances the cursor.
// Returns io.EOF once the buffer is exhausted.
func (b *Reader) Read(p []byte) (int, error) {
	if b.off >= len(b.buf) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.off:])
	b.off += n
	return n, nil
}

// ReadByte consumes and returns a single byte, or io.EOF at the end.
func (b *Reader) ReadByte() (byte, error) {
	if b.off >= len(b.buf) {
		return 0, io.EOF
	}
	v := b.buf[b.off]
	b.off++
	return v, nil
}

// Next consumes and returns the next n bytes, or fewer if the buffer runs
// out. The returned slice shares memory with the underlying buffer and is
// only valid until the buffer is mutated.
func (b *Reader) Next(n int) []byte {
	if rem := len(b.buf) - b.off; n > rem {
		n = rem
	}
	res := b.buf[b.off : b.off+n]
	b.off += n
	return res
}

// Position returns the current cursor index of the Reader.
// Useful for determining how many bytes have been consumed.
func (b *Reader) Position() int {
	return b.off
}

// Len returns the number of unread bytes remaining.
func (b *Reader) Len() int {
	return len(b.buf) - b.off
}

// Empty reports whether the Reader has reached the end of the buffer.
func (b *Reader) Empty() bool {
	return b.off >= len(b.buf)
}

// Bytes returns the entire underlying buffer of the Reader.
func (b *Reader) Bytes() []byte {
	return b.buf
}

// Write appends p to the buffer. It never fails; the error is always nil and
// exists to satisfy io.Writer.
func (b *Writer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteByte appends a single byte to the buffer.
func (b *Writer) WriteByte(v byte) error {
	b.buf = append(b.buf, v)
	return nil
}

// Len returns the number of bytes accumulated so far.
func (b *Writer) Len() int {
	return len(b.buf)
}

// Bytes returns the accumulated content of the Writer.
func (b *Writer) Bytes() []byte {
	return b.buf
}
