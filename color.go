package gni

import "io"

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface, Color is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// ReadColor decodes a Color from six hex digits in red, green, blue order.
func ReadColor(r io.ByteReader) (Color, error) {
	var c Color
	for _, p := range []*uint8{&c.R, &c.G, &c.B} {
		v, err := ReadUint8(r)
		if err != nil {
			return Color{}, err
		}
		*p = v
	}
	return c, nil
}

func (c Color) appendHex(dst []byte) []byte {
	return appendUint8(appendUint8(appendUint8(dst, c.R), c.G), c.B)
}
