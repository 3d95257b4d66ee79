package image

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/bodgit/gni"
)

var (
	errNoImage   = errors.New("image: no image upload found")
	errTooMuch   = errors.New("image: more than one image upload")
	errBadFinish = errors.New("image: unexpected finish command")
)

// ToPaletted returns img as a paletted image using p, which should have 16
// entries. Indices beyond the end of p are left as they are.
func ToPaletted(img gni.Image, p color.Palette) *image.Paletted {
	w, h := img.Size()
	m := image.NewPaletted(image.Rect(0, 0, int(w), int(h)), p)
	for y := 0; y < int(h); y++ {
		for x := 0; x < int(w); x++ {
			m.SetColorIndex(x, y, uint8(img.At(x, y)))
		}
	}
	return m
}

// Palette converts a gni palette to a color.Palette.
func Palette(p [colorsPerPalette]gni.Color) color.Palette {
	out := make(color.Palette, len(p))
	for i, c := range p {
		out[i] = color.RGBA{c.R, c.G, c.B, 0xff}
	}
	return out
}

// decoder collects palette entries and a single image from a command
// stream.
type decoder struct {
	palette [colorsPerPalette]gni.Color
	image   *gni.Image
	err     error
}

func (d *decoder) Palette(idx gni.Nibble, col gni.Color) {
	d.palette[idx] = col
}

func (d *decoder) Clear(gni.Nibble) {}

func (d *decoder) DrawTriangle(gni.Triangle) {}

func (d *decoder) Image(_ uint8, img gni.Image) {
	if d.image != nil {
		d.err = errTooMuch
		return
	}
	d.image = &img
}

func (d *decoder) SetImage(uint8) {}

func (d *decoder) Finish() {
	d.err = errBadFinish
}

func (d *decoder) decode(r io.Reader) error {
	dec := gni.NewDecoder(r)
	for {
		cmd, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		gni.Apply(cmd, d)
		if d.err != nil {
			return d.err
		}
	}
	if d.image == nil {
		return errNoImage
	}
	return nil
}

// Decode reads palette commands and one image upload from r and returns the
// image as an *image.Paletted with a 16 color palette. Entries not set by a
// palette command are black.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return ToPaletted(*d.image, Palette(d.palette)), nil
}

// DecodeConfig returns the color model and dimensions of the image in r.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return image.Config{}, err
	}
	w, h := d.image.Size()
	return image.Config{
		ColorModel: Palette(d.palette),
		Width:      int(w),
		Height:     int(h),
	}, nil
}
