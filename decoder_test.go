package gni

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderDecode(t *testing.T) {
	d := NewDecoder(strings.NewReader("c1\nsi02\n\n"))

	cmd, err := d.Decode()
	require.NoError(t, err)
	assert.Equal(t, Clear{Index: 1}, cmd)

	cmd, err = d.Decode()
	require.NoError(t, err)
	assert.Equal(t, SelectImage{Index: 2}, cmd)

	cmd, err = d.Decode()
	require.NoError(t, err)
	assert.Equal(t, Finish{}, cmd)
	assert.Equal(t, 3, d.Line())

	_, err = d.Decode()
	assert.Equal(t, io.EOF, err)
	assert.False(t, d.More())
}

func TestDecoderSkip(t *testing.T) {
	d := NewDecoder(strings.NewReader("cX\np1gg0000\nc0x\nc2\n"))

	var (
		cmds  []Command
		lines []int
	)
	for {
		cmd, err := d.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			var le *LineError
			require.True(t, errors.As(err, &le))
			lines = append(lines, le.Line)
			require.NoError(t, d.Skip())
			continue
		}
		cmds = append(cmds, cmd)
	}

	assert.Equal(t, []int{1, 2, 3}, lines)
	assert.Equal(t, []Command{Clear{Index: 2}}, cmds)
}

func TestDecoderLineAcrossNewline(t *testing.T) {
	d := NewDecoder(strings.NewReader("p1\nc0\nc2\n"))

	_, err := d.Decode()
	require.Error(t, err)
	assert.Equal(t, 1, d.Line())

	// The short palette line swallowed the start of line 2
	require.NoError(t, d.Skip())

	cmd, err := d.Decode()
	require.NoError(t, err)
	assert.Equal(t, Clear{Index: 2}, cmd)
	assert.Equal(t, 3, d.Line())
}

func TestDecoderLineError(t *testing.T) {
	d := NewDecoder(strings.NewReader("c1\ni00\n"))
	_, err := d.Decode()
	require.NoError(t, err)

	_, err = d.Decode()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrZeroIndex))
	assert.Equal(t, "line 2: gni: image index zero is reserved", err.Error())
}

func TestDecoderRun(t *testing.T) {
	d := NewDecoder(strings.NewReader("p1ffffff\nc1\n\nc2\n\n"))

	out := new(recorder)
	n, err := d.Run(out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, d.More())

	n, err = d.Run(out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = d.Run(out)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, []string{"palette 1 {255 255 255}", "clear 1", "finish", "clear 2", "finish"}, out.calls)
}

func TestDecoderRunError(t *testing.T) {
	d := NewDecoder(strings.NewReader("c1\nc1c\n"))
	_, err := d.Run(new(recorder))

	var le *LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 2, le.Line)
	assert.Equal(t, ErrMissingTerminator, le.Err)
}
