package gni

import "io"

// MarshalText encodes the command as a single line including the newline.
func (c SetPalette) MarshalText() ([]byte, error) {
	b := appendNibble([]byte{opPalette}, uint8(c.Index))
	return append(c.Color.appendHex(b), '\n'), nil
}

// MarshalText encodes the command as a single line including the newline.
func (c Clear) MarshalText() ([]byte, error) {
	return append(appendNibble([]byte{opClear}, uint8(c.Index)), '\n'), nil
}

// MarshalText encodes the command as a single line including the newline.
func (c DrawTriangle) MarshalText() ([]byte, error) {
	b := make([]byte, 0, 53)
	return append(c.Triangle.appendHex(append(b, opTriangle)), '\n'), nil
}

// MarshalText encodes the command as a single line including the newline.
// Slot 0 is reserved and returns ErrZeroIndex.
func (c UploadImage) MarshalText() ([]byte, error) {
	if c.Index == 0 {
		return nil, ErrZeroIndex
	}
	b := make([]byte, 0, 8+len(c.Image.data))
	b = appendUint8(append(b, opImage), c.Index)
	return append(c.Image.appendHex(b), '\n'), nil
}

// MarshalText encodes the command as a single line including the newline.
func (c SelectImage) MarshalText() ([]byte, error) {
	return append(appendUint8([]byte{opSelect, opImage}, c.Index), '\n'), nil
}

// MarshalText encodes the command as an empty line.
func (Finish) MarshalText() ([]byte, error) {
	return []byte{opFinish}, nil
}

// An Encoder writes commands to an output stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes cmd as one line.
func (e *Encoder) Encode(cmd Command) error {
	b, err := cmd.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(b)
	return err
}
