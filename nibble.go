package gni

import "io"

// Nibble is a 4-bit palette index.
type Nibble uint8

// NewNibble returns v as a Nibble, failing if it does not fit in 4 bits.
func NewNibble(v uint8) (Nibble, error) {
	if v > 0x0f {
		return 0, ErrNibbleRange
	}
	return Nibble(v), nil
}

// ReadNibble decodes a Nibble from a single hex digit.
func ReadNibble(r io.ByteReader) (Nibble, error) {
	b, err := next(r)
	if err != nil {
		return 0, err
	}
	v, err := Digit(b)
	if err != nil {
		return 0, err
	}
	return Nibble(v), nil
}
