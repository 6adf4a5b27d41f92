package bitio

import (
	"errors"
	"fmt"
)

// Sentinel values for errors.Is checks. The concrete error types below carry
// the detail and unwrap to these.
var (
	ErrIncomplete = errors.New("bitio: incomplete read: stream ended before the requested bits")
	ErrWrite      = errors.New("bitio: write to underlying stream failed")
	ErrBitCount   = errors.New("bitio: bit count out of range")
)

// IncompleteError reports that the underlying stream could not supply a
// requested read. Bits is the total size of the failed request, not the
// shortfall.
type IncompleteError struct {
	Bits uint64
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("bitio: incomplete read: need %d bits", e.Bits)
}

func (e *IncompleteError) Unwrap() error {
	return ErrIncomplete
}

// WriteError wraps a failure of the underlying output stream. The transport
// cause remains reachable through Unwrap; errors.Is(err, ErrWrite) matches
// regardless of cause.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("bitio: write to underlying stream failed: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

// BitCountError reports a per-call bit count outside [0,64].
type BitCountError struct {
	Bits int
}

func (e *BitCountError) Error() string {
	return fmt.Sprintf("bitio: bit count %d out of range [0,64]", e.Bits)
}

func (e *BitCountError) Unwrap() error {
	return ErrBitCount
}
