package gni

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedEnd is returned when the input ends part way through a
	// fixed width field.
	ErrUnexpectedEnd = errors.New("gni: unexpected end of input")
	// ErrMissingTerminator is returned when a command is not followed by
	// exactly one newline.
	ErrMissingTerminator = errors.New("gni: missing line terminator")
	// ErrZeroIndex is returned when an image upload targets the reserved
	// slot 0.
	ErrZeroIndex = errors.New("gni: image index zero is reserved")
	// ErrImageSize is returned when image data does not match its
	// dimensions.
	ErrImageSize = errors.New("gni: image data does not match size")
	// ErrNibbleRange is returned when a value does not fit in 4 bits.
	ErrNibbleRange = errors.New("gni: nibble out of range")
)

// InvalidByteError records a byte that was not a valid hex digit, opcode or
// sub-opcode at the position it was read.
type InvalidByteError byte

func (e InvalidByteError) Error() string {
	return fmt.Sprintf("gni: invalid byte %q", byte(e))
}

// LineError wraps an error with the 1-based line number it occurred on.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
