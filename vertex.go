package gni

import "io"

// Vertex is a single corner of a Triangle.
//
// Positions are sent as unsigned 16-bit values and reinterpreted as two's
// complement, so 8000 through ffff decode as negative.
type Vertex struct {
	Pos [3]int16
	Tex [2]uint8
	Col Nibble
}

// ReadVertex decodes a Vertex from 17 hex digits: x, y and z positions of
// four digits each, u and v texture coordinates of two digits each and a
// single digit color index.
func ReadVertex(r io.ByteReader) (Vertex, error) {
	var v Vertex
	for i := range v.Pos {
		p, err := ReadUint16(r)
		if err != nil {
			return Vertex{}, err
		}
		v.Pos[i] = int16(p)
	}
	for i := range v.Tex {
		t, err := ReadUint8(r)
		if err != nil {
			return Vertex{}, err
		}
		v.Tex[i] = t
	}
	col, err := ReadNibble(r)
	if err != nil {
		return Vertex{}, err
	}
	v.Col = col
	return v, nil
}

func (v Vertex) appendHex(dst []byte) []byte {
	for _, p := range v.Pos {
		dst = appendUint16(dst, uint16(p))
	}
	for _, t := range v.Tex {
		dst = appendUint8(dst, t)
	}
	return appendNibble(dst, uint8(v.Col))
}
