package gni

import "io"

// Triangle is three vertices in drawing order.
type Triangle [3]Vertex

// ReadTriangle decodes three consecutive vertices.
func ReadTriangle(r io.ByteReader) (Triangle, error) {
	var t Triangle
	for i := range t {
		v, err := ReadVertex(r)
		if err != nil {
			return Triangle{}, err
		}
		t[i] = v
	}
	return t, nil
}

func (t Triangle) appendHex(dst []byte) []byte {
	for _, v := range t {
		dst = v.appendHex(dst)
	}
	return dst
}
