package gni

const hexDigits = "0123456789abcdef"

// Digit decodes a single lowercase hex digit. Any other byte, including an
// uppercase digit, is returned unchanged as an InvalidByteError.
func Digit(b byte) (uint8, error) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', nil
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, nil
	}
	return 0, InvalidByteError(b)
}

// ByteFromHex combines two hex digits, high nibble first, into a byte.
func ByteFromHex(b [2]byte) (byte, error) {
	hi, err := Digit(b[0])
	if err != nil {
		return 0, err
	}
	lo, err := Digit(b[1])
	if err != nil {
		return 0, err
	}
	return hi<<4 | lo, nil
}

func appendNibble(dst []byte, n uint8) []byte {
	return append(dst, hexDigits[n&0x0f])
}

func appendUint8(dst []byte, v uint8) []byte {
	return append(dst, hexDigits[v>>4], hexDigits[v&0x0f])
}

func appendUint16(dst []byte, v uint16) []byte {
	return appendUint8(appendUint8(dst, uint8(v>>8)), uint8(v))
}
