package gni

import (
	"fmt"
	"io"
)

// Command is one decoded protocol line. The set of commands is closed; the
// concrete types are SetPalette, Clear, DrawTriangle, UploadImage,
// SelectImage and Finish.
type Command interface {
	MarshalText() ([]byte, error)
	command()
}

// SetPalette sets palette entry Index to Color.
type SetPalette struct {
	Index Nibble
	Color Color
}

// Clear clears the screen to palette entry Index.
type Clear struct {
	Index Nibble
}

// DrawTriangle draws a single triangle.
type DrawTriangle struct {
	Triangle Triangle
}

// UploadImage stores Image in slot Index, which is never zero.
type UploadImage struct {
	Index uint8
	Image Image
}

// SelectImage selects slot Index as the active texture.
type SelectImage struct {
	Index uint8
}

// Finish ends the current frame.
type Finish struct{}

func (SetPalette) command() {}
func (Clear) command() {}
func (DrawTriangle) command() {}
func (UploadImage) command() {}
func (SelectImage) command() {}
func (Finish) command() {}

const (
	opPalette  = 'p'
	opClear    = 'c'
	opTriangle = 't'
	opImage    = 'i'
	opSelect   = 's'
	opFinish   = '\n'
)

// ReadCommand decodes the opcode and payload of one command. The trailing
// newline of a non-empty line is not consumed. If no byte is available at
// all io.EOF is returned.
func ReadCommand(r io.ByteReader) (Command, error) {
	op, err := r.ReadByte()
	switch err {
	case nil:
	case io.EOF:
		return nil, io.EOF
	default:
		return nil, fmt.Errorf("gni: read: %w", err)
	}

	switch op {
	case opPalette:
		idx, err := ReadNibble(r)
		if err != nil {
			return nil, err
		}
		col, err := ReadColor(r)
		if err != nil {
			return nil, err
		}
		return SetPalette{Index: idx, Color: col}, nil
	case opClear:
		idx, err := ReadNibble(r)
		if err != nil {
			return nil, err
		}
		return Clear{Index: idx}, nil
	case opTriangle:
		tri, err := ReadTriangle(r)
		if err != nil {
			return nil, err
		}
		return DrawTriangle{Triangle: tri}, nil
	case opImage:
		idx, err := ReadUint8(r)
		if err != nil {
			return nil, err
		}
		if idx == 0 {
			return nil, ErrZeroIndex
		}
		img, err := ReadImage(r)
		if err != nil {
			return nil, err
		}
		return UploadImage{Index: idx, Image: img}, nil
	case opSelect:
		sub, err := next(r)
		if err != nil {
			return nil, err
		}
		if sub != opImage {
			return nil, InvalidByteError(sub)
		}
		idx, err := ReadUint8(r)
		if err != nil {
			return nil, err
		}
		return SelectImage{Index: idx}, nil
	case opFinish:
		return Finish{}, nil
	}
	return nil, InvalidByteError(op)
}

// Apply invokes the Output method matching cmd.
func Apply(cmd Command, out Output) {
	switch c := cmd.(type) {
	case SetPalette:
		out.Palette(c.Index, c.Color)
	case Clear:
		out.Clear(c.Index)
	case DrawTriangle:
		out.DrawTriangle(c.Triangle)
	case UploadImage:
		out.Image(c.Index, c.Image)
	case SelectImage:
		out.SetImage(c.Index)
	case Finish:
		out.Finish()
	}
}
