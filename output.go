package gni

import "io"

// Output receives decoded commands. Arguments are always fully validated;
// an image index passed to Image is never zero.
type Output interface {
	Palette(idx Nibble, col Color)
	Clear(idx Nibble)
	DrawTriangle(tri Triangle)
	Image(idx uint8, img Image)
	SetImage(idx uint8)
	Finish()
}

type discard struct{}

func (discard) Palette(Nibble, Color) {}
func (discard) Clear(Nibble) {}
func (discard) DrawTriangle(Triangle) {}
func (discard) Image(uint8, Image) {}
func (discard) SetImage(uint8) {}
func (discard) Finish() {}

// Discard is an Output on which all calls succeed without doing anything.
var Discard Output = discard{}

// ParseCommand decodes one line from r and delivers it to out. It returns
// true if more commands may follow and false once the stream is complete,
// either because the input is exhausted or an empty line was read.
//
// A decoding error is returned before out is called. After a command has
// been delivered the next byte must be a newline, otherwise
// ErrMissingTerminator is returned.
func ParseCommand(r io.ByteReader, out Output) (bool, error) {
	cmd, err := ReadCommand(r)
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	Apply(cmd, out)
	if _, ok := cmd.(Finish); ok {
		return false, nil
	}

	if b, err := r.ReadByte(); err != nil || b != '\n' {
		return false, ErrMissingTerminator
	}
	return true, nil
}
