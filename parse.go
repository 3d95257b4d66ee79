package gni

import (
	"bytes"
	"fmt"
	"io"
)

// Parse decodes a single value from b using read, one of the ReadX
// functions. Any bytes beyond the fixed width of the value are left unread.
func Parse[T any](b []byte, read func(io.ByteReader) (T, error)) (T, error) {
	return read(bytes.NewReader(b))
}

// next reads one byte that must be present, mapping a clean end of input
// to ErrUnexpectedEnd.
func next(r io.ByteReader) (byte, error) {
	b, err := r.ReadByte()
	switch err {
	case nil:
		return b, nil
	case io.EOF:
		return 0, ErrUnexpectedEnd
	default:
		return 0, fmt.Errorf("gni: read: %w", err)
	}
}

// ReadUint8 decodes a byte from two hex digits.
func ReadUint8(r io.ByteReader) (uint8, error) {
	var tmp [2]byte
	for i := range tmp {
		b, err := next(r)
		if err != nil {
			return 0, err
		}
		tmp[i] = b
	}
	return ByteFromHex(tmp)
}

// ReadUint16 decodes a 16-bit value from four hex digits, most significant
// byte first.
func ReadUint16(r io.ByteReader) (uint16, error) {
	hi, err := ReadUint8(r)
	if err != nil {
		return 0, err
	}
	lo, err := ReadUint8(r)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}
