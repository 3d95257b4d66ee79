package raster

import "github.com/bodgit/gni"

// vertex is a protocol vertex mapped into normalised coordinates.
type vertex struct {
	x, y, z float64
	u, v    float64
	col     uint8
}

func newVertex(p gni.Vertex) vertex {
	return vertex{
		x:   float64(p.Pos[0]) / positionScale,
		y:   float64(p.Pos[1]) / positionScale,
		z:   float64(p.Pos[2]) / positionScale,
		u:   float64(p.Tex[0])/textureScale + textureOffset,
		v:   float64(p.Tex[1])/textureScale + textureOffset,
		col: uint8(p.Col),
	}
}

// drawBuffer holds triangles waiting to be rasterised.
type drawBuffer struct {
	vertices []vertex
}

func newDrawBuffer(triangles int) *drawBuffer {
	return &drawBuffer{
		vertices: make([]vertex, 0, triangles*3),
	}
}

// add appends a triangle, reporting false if there is no room for it.
func (b *drawBuffer) add(t [3]vertex) bool {
	if len(b.vertices)+3 > cap(b.vertices) {
		return false
	}
	b.vertices = append(b.vertices, t[:]...)
	return true
}

func (b *drawBuffer) triangles() int {
	return len(b.vertices) / 3
}

func (b *drawBuffer) triangle(i int) (vertex, vertex, vertex) {
	return b.vertices[i*3], b.vertices[i*3+1], b.vertices[i*3+2]
}

func (b *drawBuffer) clear() {
	b.vertices = b.vertices[:0]
}
