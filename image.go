package gni

import "io"

// Image is a width by height grid of palette indices stored row by row.
type Image struct {
	width, height uint8
	data          []Nibble
}

// NewImage returns an Image of the given size. The length of data must be
// exactly width * height.
func NewImage(data []Nibble, width, height uint8) (Image, error) {
	if len(data) != int(width)*int(height) {
		return Image{}, ErrImageSize
	}
	m := Image{
		width:  width,
		height: height,
		data:   make([]Nibble, len(data)),
	}
	copy(m.data, data)
	return m, nil
}

// Size returns the width and height of the image.
func (m Image) Size() (uint8, uint8) {
	return m.width, m.height
}

// Data returns a copy of the image data.
func (m Image) Data() []Nibble {
	return append([]Nibble(nil), m.data...)
}

// At returns the index at column x, row y.
func (m Image) At(x, y int) Nibble {
	return m.data[y*int(m.width)+x]
}

// Equal reports whether m and o have the same size and data.
func (m Image) Equal(o Image) bool {
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// ReadImage decodes a two digit width, a two digit height and then one
// digit per pixel.
func ReadImage(r io.ByteReader) (Image, error) {
	w, err := ReadUint8(r)
	if err != nil {
		return Image{}, err
	}
	h, err := ReadUint8(r)
	if err != nil {
		return Image{}, err
	}
	data := make([]Nibble, int(w)*int(h))
	for i := range data {
		n, err := ReadNibble(r)
		if err != nil {
			return Image{}, err
		}
		data[i] = n
	}
	return Image{width: w, height: h, data: data}, nil
}

func (m Image) appendHex(dst []byte) []byte {
	dst = appendUint8(appendUint8(dst, m.width), m.height)
	for _, n := range m.data {
		dst = appendNibble(dst, uint8(n))
	}
	return dst
}
