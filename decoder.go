package gni

import (
	"bufio"
	"io"
)

// A Decoder reads commands from an input stream, tracking line numbers so
// errors can be reported against the offending line.
type Decoder struct {
	r    *bufio.Reader
	nl   int
	line int
	last byte
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{r: br}
}

// Line returns the number of the line the most recent command started on,
// counting from 1.
func (d *Decoder) Line() int {
	return d.line
}

// ReadByte implements io.ByteReader, remembering the byte for Skip.
func (d *Decoder) ReadByte() (byte, error) {
	b, err := d.r.ReadByte()
	if err == nil {
		d.last = b
		if b == '\n' {
			d.nl++
		}
	}
	return b, err
}

// Decode reads the next complete line, including its terminator, and
// returns the command. It returns io.EOF when the input is exhausted
// between lines. Other errors are returned as a *LineError.
func (d *Decoder) Decode() (Command, error) {
	if _, err := d.r.Peek(1); err == io.EOF {
		return nil, io.EOF
	}
	d.line = d.nl + 1

	cmd, err := ReadCommand(d)
	if err != nil {
		return nil, &LineError{Line: d.line, Err: err}
	}
	if _, ok := cmd.(Finish); ok {
		return cmd, nil
	}
	if b, err := d.ReadByte(); err != nil || b != '\n' {
		return nil, &LineError{Line: d.line, Err: ErrMissingTerminator}
	}
	return cmd, nil
}

// Skip discards the remainder of the current line so decoding can carry on
// after an error. If the last byte read was already a newline nothing is
// discarded.
func (d *Decoder) Skip() error {
	if d.last == '\n' {
		return nil
	}
	for {
		b, err := d.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if b == '\n' {
			return nil
		}
	}
}

// Run delivers commands to out until the current frame is finished or the
// input is exhausted and returns the number of commands delivered,
// including any Finish.
func (d *Decoder) Run(out Output) (int, error) {
	var n int
	for {
		if _, err := d.r.Peek(1); err == io.EOF {
			return n, nil
		}
		d.line = d.nl + 1
		more, err := ParseCommand(d, out)
		if err != nil {
			return n, &LineError{Line: d.line, Err: err}
		}
		n++
		if !more {
			return n, nil
		}
	}
}

// More reports whether any input remains.
func (d *Decoder) More() bool {
	_, err := d.r.Peek(1)
	return err == nil
}
