package gni

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigit(t *testing.T) {
	for i, c := range hexDigits {
		v, err := Digit(byte(c))
		require.NoError(t, err)
		assert.Equal(t, uint8(i), v)
	}

	for _, c := range []byte("ABCDEFGgz/:`@ \n\x00\xff") {
		_, err := Digit(c)
		assert.Equal(t, InvalidByteError(c), err, "byte %q", c)
	}
}

func TestByteFromHex(t *testing.T) {
	for i, hi := range hexDigits {
		for j, lo := range hexDigits {
			b, err := ByteFromHex([2]byte{byte(hi), byte(lo)})
			require.NoError(t, err)
			assert.Equal(t, byte(16*i+j), b)
		}
	}

	tables := []struct {
		in  string
		err error
	}{
		{"FF", InvalidByteError('F')},
		{"qw", InvalidByteError('q')},
		{"0G", InvalidByteError('G')},
		{"x0", InvalidByteError('x')},
	}

	for _, table := range tables {
		t.Run(table.in, func(t *testing.T) {
			_, err := ByteFromHex([2]byte{table.in[0], table.in[1]})
			assert.Equal(t, table.err, err)
		})
	}
}

func TestAppendHex(t *testing.T) {
	assert.Equal(t, "0f", string(appendUint8(nil, 0x0f)))
	assert.Equal(t, "ff", string(appendUint8(nil, 0xff)))
	assert.Equal(t, "8000", string(appendUint16(nil, 0x8000)))
	assert.Equal(t, "a", string(appendNibble(nil, 0x0a)))
}
