package gni

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is an Output that records each call as a string.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Palette(idx Nibble, col Color) { r.add("palette %d %v", idx, col) }

func (r *recorder) Clear(idx Nibble) { r.add("clear %d", idx) }

func (r *recorder) DrawTriangle(tri Triangle) { r.add("triangle %v", tri) }

func (r *recorder) Image(idx uint8, img Image) {
	w, h := img.Size()
	r.add("image %d %dx%d %v", idx, w, h, img.Data())
}

func (r *recorder) SetImage(idx uint8) { r.add("set_image %d", idx) }

func (r *recorder) Finish() { r.add("finish") }

func TestParseCommand(t *testing.T) {
	tables := []struct {
		name  string
		in    string
		more  bool
		err   error
		calls []string
		rest  string
	}{
		{
			name:  "palette",
			in:    "p0ff0000\n",
			more:  true,
			calls: []string{"palette 0 {255 0 0}"},
		},
		{
			name:  "clear",
			in:    "c0\n",
			more:  true,
			calls: []string{"clear 0"},
		},
		{
			name:  "image",
			in:    "i0101023f\n",
			more:  true,
			calls: []string{"image 1 1x2 [3 15]"},
		},
		{
			name:  "select image",
			in:    "si01\n",
			more:  true,
			calls: []string{"set_image 1"},
		},
		{
			name:  "finish",
			in:    "\nc0\n",
			calls: []string{"finish"},
			rest:  "c0\n",
		},
		{
			name: "end of input",
			in:   "",
		},
		{
			name: "zero index",
			in:   "i000102ab\n",
			err:  ErrZeroIndex,
			rest: "0102ab\n",
		},
		{
			name: "uppercase",
			in:   "p0FF0000\n",
			err:  InvalidByteError('F'),
		},
		{
			name:  "missing terminator at end",
			in:    "c0",
			err:   ErrMissingTerminator,
			calls: []string{"clear 0"},
		},
		{
			name:  "trailing byte",
			in:    "c0x\n",
			err:   ErrMissingTerminator,
			calls: []string{"clear 0"},
			rest:  "\n",
		},
		{
			name: "unknown opcode",
			in:   "x\n",
			err:  InvalidByteError('x'),
			rest: "\n",
		},
		{
			name: "bad select",
			in:   "sx01\n",
			err:  InvalidByteError('x'),
			rest: "01\n",
		},
		{
			name: "select at end",
			in:   "s",
			err:  ErrUnexpectedEnd,
		},
		{
			name: "short triangle",
			in:   "t0011\n",
			err:  ErrUnexpectedEnd,
		},
		{
			name: "short palette",
			in:   "p0ff",
			err:  ErrUnexpectedEnd,
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			r := strings.NewReader(table.in)
			out := new(recorder)
			more, err := ParseCommand(r, out)
			assert.Equal(t, table.err, err)
			assert.Equal(t, table.more, more)
			assert.Equal(t, table.calls, out.calls)

			rest, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, table.rest, string(rest))
		})
	}
}

func TestParseCommandTriangle(t *testing.T) {
	line := "t" + strings.Repeat("7fff8000000010201", 3) + "\n"
	out := new(recorder)
	more, err := ParseCommand(strings.NewReader(line), out)
	require.NoError(t, err)
	assert.True(t, more)

	v := Vertex{Pos: [3]int16{32767, -32768, 0}, Tex: [2]uint8{0x10, 0x20}, Col: 1}
	assert.Equal(t, []string{fmt.Sprintf("triangle %v", Triangle{v, v, v})}, out.calls)
}

func TestParseCommandStream(t *testing.T) {
	in := strings.NewReader("p1000000\nc1\nsi02\n\np0ffffff\n")
	out := new(recorder)

	var n int
	for {
		more, err := ParseCommand(in, out)
		require.NoError(t, err)
		n++
		if !more {
			break
		}
	}
	assert.Equal(t, 4, n)
	assert.Equal(t, []string{"palette 1 {0 0 0}", "clear 1", "set_image 2", "finish"}, out.calls)
}

func TestDiscard(t *testing.T) {
	more, err := ParseCommand(bytes.NewReader([]byte("c5\n")), Discard)
	require.NoError(t, err)
	assert.True(t, more)
}

func TestApplyEachCommand(t *testing.T) {
	img, err := NewImage(nibbles(t, 7), 1, 1)
	require.NoError(t, err)

	out := new(recorder)
	for _, cmd := range []Command{
		SetPalette{Index: 2, Color: Color{1, 2, 3}},
		Clear{Index: 3},
		DrawTriangle{},
		UploadImage{Index: 9, Image: img},
		SelectImage{Index: 9},
		Finish{},
	} {
		Apply(cmd, out)
	}
	assert.Len(t, out.calls, 6)
	assert.Equal(t, "image 9 1x1 [7]", out.calls[3])
	assert.Equal(t, "finish", out.calls[5])
}
