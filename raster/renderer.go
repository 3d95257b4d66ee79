package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/bodgit/gni"
	"github.com/rs/zerolog"
)

// FrameFunc is called with a snapshot of the framebuffer each time a frame
// is finished. n counts frames from 0. It is called without the Renderer's
// lock held so it may call back into the Renderer.
type FrameFunc func(n int, m *image.RGBA) error

// Renderer draws protocol commands into an RGBA framebuffer. It implements
// gni.Output.
type Renderer struct {
	mu     sync.Mutex
	cfg    Config
	logger zerolog.Logger

	palette [paletteSize]gni.Color
	frame   *image.RGBA
	buffer  *drawBuffer
	images  map[uint8]gni.Image
	active  uint8

	frames  int
	onFrame FrameFunc
	err     error
}

// New returns a Renderer with a black palette, a black framebuffer and no
// images.
func New(cfg Config, logger zerolog.Logger) *Renderer {
	cfg = cfg.withDefaults()
	return &Renderer{
		cfg:    cfg,
		logger: logger,
		frame:  image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
		buffer: newDrawBuffer(cfg.Buffer),
		images: make(map[uint8]gni.Image),
	}
}

// OnFrame sets the function called for each finished frame. The first
// error it returns is kept and reported by Err.
func (r *Renderer) OnFrame(fn FrameFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onFrame = fn
}

// Err returns the first error returned by the FrameFunc.
func (r *Renderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Frames returns the number of frames finished so far.
func (r *Renderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Frame returns a copy of the framebuffer. Buffered triangles that have not
// been flushed are not included.
func (r *Renderer) Frame() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

func (r *Renderer) snapshot() *image.RGBA {
	m := image.NewRGBA(r.frame.Bounds())
	copy(m.Pix, r.frame.Pix)
	return m
}

// Palette sets palette entry idx.
func (r *Renderer) Palette(idx gni.Nibble, col gni.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.palette[idx] = col
}

// Clear fills the framebuffer with palette entry idx.
func (r *Renderer) Clear(idx gni.Nibble) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.palette[idx]
	draw.Draw(r.frame, r.frame.Bounds(), image.NewUniform(color.RGBA{c.R, c.G, c.B, 0xff}), image.Point{}, draw.Src)
}

// DrawTriangle queues a triangle, flushing the buffer first if it is full.
func (r *Renderer) DrawTriangle(tri gni.Triangle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := [3]vertex{newVertex(tri[0]), newVertex(tri[1]), newVertex(tri[2])}
	if r.buffer.add(t) {
		return
	}
	r.flush()
	r.buffer.add(t)
}

// Image stores img in slot idx, replacing any previous image. If the slot
// is the active one the new image is used immediately.
func (r *Renderer) Image(idx uint8, img gni.Image) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx == 0 {
		r.logger.Warn().Msg("ignoring image for reserved slot 0")
		return
	}
	_, replaced := r.images[idx]
	r.images[idx] = img

	w, h := img.Size()
	r.logger.Debug().Uint8("slot", idx).Uint8("width", w).Uint8("height", h).Bool("replaced", replaced).Msg("image uploaded")
}

// SetImage makes slot idx the active texture. Selecting an empty slot
// disables texturing.
func (r *Renderer) SetImage(idx uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.images[idx]; ok {
		r.active = idx
		return
	}
	if idx != 0 {
		r.logger.Debug().Uint8("slot", idx).Msg("no image in slot, texturing disabled")
	}
	r.active = 0
}

// Finish flushes the buffered triangles and completes the frame.
func (r *Renderer) Finish() {
	r.mu.Lock()
	r.flush()

	n := r.frames
	r.frames++
	r.logger.Debug().Int("frame", n).Msg("frame finished")

	fn := r.onFrame
	if fn == nil {
		r.mu.Unlock()
		return
	}
	m := r.snapshot()
	r.mu.Unlock()

	if err := fn(n, m); err != nil {
		r.logger.Error().Err(err).Int("frame", n).Msg("frame callback failed")

		r.mu.Lock()
		if r.err == nil {
			r.err = err
		}
		r.mu.Unlock()
	}
}

// Flush rasterises any buffered triangles.
func (r *Renderer) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flush()
}

func (r *Renderer) flush() {
	n := r.buffer.triangles()
	if n == 0 {
		return
	}

	var tex *gni.Image
	if img, ok := r.images[r.active]; ok && r.active != 0 {
		tex = &img
	}

	for i := 0; i < n; i++ {
		a, b, c := r.buffer.triangle(i)
		r.fill(a, b, c, tex)
	}
	r.logger.Trace().Int("triangles", n).Msg("buffer flushed")
	r.buffer.clear()
}

type rgb struct {
	r, g, b float64
}

func (r *Renderer) color(i uint8) rgb {
	if int(i) >= paletteSize {
		return rgb{1, 0, 0}
	}
	c := r.palette[i]
	return rgb{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

// screen maps normalised coordinates to pixel space.
func (r *Renderer) screen(v vertex) (float64, float64) {
	w, h := float64(r.cfg.Width), float64(r.cfg.Height)
	return (v.x + 1) / 2 * w, (1 - v.y) / 2 * h
}

func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// fill rasterises one triangle, sampling pixel centres. Colors are
// interpolated from the vertex palette entries and, when a texture is
// bound, multiplied by the palette entry of the nearest texel.
func (r *Renderer) fill(a, b, c vertex, tex *gni.Image) {
	ax, ay := r.screen(a)
	bx, by := r.screen(b)
	cx, cy := r.screen(c)

	area := edge(ax, ay, bx, by, cx, cy)
	if area == 0 {
		return
	}

	bounds := r.frame.Bounds()
	minX := clamp(int(math.Floor(math.Min(ax, math.Min(bx, cx)))), bounds.Min.X, bounds.Max.X)
	maxX := clamp(int(math.Ceil(math.Max(ax, math.Max(bx, cx)))), bounds.Min.X, bounds.Max.X)
	minY := clamp(int(math.Floor(math.Min(ay, math.Min(by, cy)))), bounds.Min.Y, bounds.Max.Y)
	maxY := clamp(int(math.Ceil(math.Max(ay, math.Max(by, cy)))), bounds.Min.Y, bounds.Max.Y)

	ca, cb, cc := r.color(a.col), r.color(b.col), r.color(c.col)

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5

			w0 := edge(bx, by, cx, cy, px, py) / area
			w1 := edge(cx, cy, ax, ay, px, py) / area
			w2 := edge(ax, ay, bx, by, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			col := rgb{
				w0*ca.r + w1*cb.r + w2*cc.r,
				w0*ca.g + w1*cb.g + w2*cc.g,
				w0*ca.b + w1*cb.b + w2*cc.b,
			}
			if tex != nil {
				t := r.color(sample(tex, w0*a.u+w1*b.u+w2*c.u, w0*a.v+w1*b.v+w2*c.v))
				col = rgb{col.r * t.r, col.g * t.g, col.b * t.b}
			}

			r.frame.SetRGBA(x, y, color.RGBA{channel(col.r), channel(col.g), channel(col.b), 0xff})
		}
	}
}

// sample returns the palette index of the texel nearest u, v, repeating the
// image in both directions.
func sample(m *gni.Image, u, v float64) uint8 {
	w, h := m.Size()
	if w == 0 || h == 0 {
		return 0
	}
	x := wrap(int(math.Floor(u*float64(w))), int(w))
	y := wrap(int(math.Floor(v*float64(h))), int(h))
	return uint8(m.At(x, y))
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func channel(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 0xff
	}
	return uint8(math.Round(f * 255))
}
