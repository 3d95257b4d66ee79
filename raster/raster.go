/*
Package raster implements a software renderer for the gni drawing protocol.

A Renderer is a gni.Output that draws into an RGBA framebuffer. Positions are
divided by 256 to give normalised device coordinates where -1 to 1 spans the
frame, with y pointing up. Texture coordinates are divided by 256 and offset by
half a texel of a 256 wide texture so 00 addresses the centre of the first
texel.

Triangles are buffered and only rasterised when the buffer fills or the frame
is finished, so palette changes and image selection apply to every buffered
triangle at that point.
*/
package raster

const (
	paletteSize = 16

	// DefaultWidth and DefaultHeight are the framebuffer dimensions used
	// when a Config leaves them unset.
	DefaultWidth  = 512
	DefaultHeight = 512
	// DefaultBuffer is the number of triangles buffered before a flush.
	DefaultBuffer = 128

	positionScale = 256
	textureScale  = 256
	textureOffset = 1.0 / 512
)

// Config controls the size of the framebuffer and the draw buffer.
type Config struct {
	Width  int
	Height int
	Buffer int
}

// DefaultConfig returns a Config with the default sizes.
func DefaultConfig() Config {
	return Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Buffer: DefaultBuffer,
	}
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Buffer <= 0 {
		c.Buffer = DefaultBuffer
	}
	return c
}
