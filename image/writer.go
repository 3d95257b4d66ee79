package image

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/bodgit/gni"
	"github.com/ericpauley/go-quantize/quantize"
)

var errTooBig = errors.New("image: picture larger than 255 by 255")

// FromPicture converts m to a gni image and the palette its indices refer
// to. Pictures that are already paletted with no more than 16 colors keep
// their palette, anything else is quantized down to 16 colors.
func FromPicture(m image.Image) (gni.Image, color.Palette, error) {
	b := m.Bounds()
	if b.Dx() > maxWidth || b.Dy() > maxHeight {
		return gni.Image{}, nil, errTooBig
	}
	if b.Empty() {
		img, err := gni.NewImage(nil, uint8(b.Dx()), uint8(b.Dy()))
		return img, nil, err
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok {
			pm = image.NewPaletted(b, cp)
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					pm.Set(x, y, cp.Convert(m.At(x, y)))
				}
			}
		}
	}
	if pm == nil || len(pm.Palette) > colorsPerPalette {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colorsPerPalette), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	w, h := b.Dx(), b.Dy()
	data := make([]gni.Nibble, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// This is masking off any bits leaving a 0-15 value
			data[y*w+x] = gni.Nibble(pm.ColorIndexAt(b.Min.X+x, b.Min.Y+y) & 0x0f)
		}
	}

	img, err := gni.NewImage(data, uint8(w), uint8(h))
	if err != nil {
		return gni.Image{}, nil, err
	}
	return img, pm.Palette, nil
}

// ToColor converts any color to the opaque 24-bit color used by palette
// commands.
func ToColor(c color.Color) gni.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return gni.Color{R: n.R, G: n.G, B: n.B}
}

// Commands returns the palette commands and upload command that send m to
// image slot.
func Commands(slot uint8, m image.Image) ([]gni.Command, error) {
	if slot == 0 {
		return nil, gni.ErrZeroIndex
	}

	img, p, err := FromPicture(m)
	if err != nil {
		return nil, err
	}

	cmds := make([]gni.Command, 0, len(p)+1)
	for i, c := range p {
		cmds = append(cmds, gni.SetPalette{
			Index: gni.Nibble(i),
			Color: ToColor(c),
		})
	}
	return append(cmds, gni.UploadImage{Index: slot, Image: img}), nil
}

// Encode writes m to w as commands uploading it to image slot.
func Encode(w io.Writer, slot uint8, m image.Image) error {
	cmds, err := Commands(slot, m)
	if err != nil {
		return err
	}

	e := gni.NewEncoder(w)
	for _, cmd := range cmds {
		if err := e.Encode(cmd); err != nil {
			return err
		}
	}
	return nil
}
