package codec

import (
	"errors"
	"fmt"

	"github.com/veldt-labs/bitcodec/bitio"
)

// Sentinel values for errors.Is checks. The concrete error types below carry
// the detail and unwrap to these. Truncation and sink failures keep the
// bitio sentinels; they are re-exported here so codec callers need a single
// import to classify any decode or encode failure.
var (
	ErrSizeMismatch = errors.New("codec: size mismatch")
	ErrInvalidParam = errors.New("codec: invalid parameter")
	ErrTrailingData = errors.New("codec: trailing data")
	ErrParse        = errors.New("codec: parse failed")
	ErrAssertion    = errors.New("codec: assertion failed")

	ErrIncomplete = bitio.ErrIncomplete
	ErrWrite      = bitio.ErrWrite
)

// SizeMismatchError reports a width conflict: either a requested width
// exceeds what the type can carry, or a value needs more bits than the
// requested width provides. Need is what the failing side required,
// Capacity what was available.
type SizeMismatchError struct {
	Need     uint64
	Capacity uint64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("codec: size mismatch: need %d bits, capacity %d bits", e.Need, e.Capacity)
}

func (e *SizeMismatchError) Unwrap() error {
	return ErrSizeMismatch
}

// InvalidParamError reports a malformed request, detectable without looking
// at stream content.
type InvalidParamError struct {
	Msg string
}

func (e *InvalidParamError) Error() string {
	return "codec: invalid parameter: " + e.Msg
}

func (e *InvalidParamError) Unwrap() error {
	return ErrInvalidParam
}

// TrailingDataError reports unconsumed input after a strict full-buffer
// decode. Bits counts the whole untouched trailing bytes; unread bits
// inside the final partially consumed byte are tolerated as padding and
// never counted.
type TrailingDataError struct {
	Bits uint64
}

func (e *TrailingDataError) Error() string {
	return fmt.Sprintf("codec: %d bits of trailing data after decode", e.Bits)
}

func (e *TrailingDataError) Unwrap() error {
	return ErrTrailingData
}

// ParseError reports stream content that maps to no valid value of the
// requested type.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return "codec: parse failed: " + e.Msg
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// AssertionError reports a successfully decoded value that violates a
// constraint declared by the type's codec.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string {
	return "codec: assertion failed: " + e.Msg
}

func (e *AssertionError) Unwrap() error {
	return ErrAssertion
}
