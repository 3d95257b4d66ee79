package batch

import (
	"context"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/gni/raster"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func newTestBatch(keepGoing bool) *Batch {
	return New(raster.Config{Width: 8, Height: 8, Buffer: 4}, 2, keepGoing, zerolog.Nop())
}

func TestFrameName(t *testing.T) {
	assert.Equal(t, "dir/intro-0003.png", FrameName("dir/intro.gni", 3))
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.gni"), "p1ff0000\nc1\n\np100ff00\nc1\n\n")
	writeFile(t, filepath.Join(dir, "sub", "b.gni"), "p20000ff\nc2\n\n")
	writeFile(t, filepath.Join(dir, ".hidden", "c.gni"), "c1\n\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a stream")

	require.NoError(t, newTestBatch(false).Render(context.Background(), dir))

	for file, want := range map[string]color.RGBA{
		filepath.Join(dir, "a-0000.png"):        {0xff, 0x00, 0x00, 0xff},
		filepath.Join(dir, "a-0001.png"):        {0x00, 0xff, 0x00, 0xff},
		filepath.Join(dir, "sub", "b-0000.png"): {0x00, 0x00, 0xff, 0xff},
	} {
		f, err := os.Open(file)
		require.NoError(t, err, file)
		m, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, want, color.RGBAModel.Convert(m.At(4, 4)), file)
	}

	_, err := os.Stat(filepath.Join(dir, ".hidden", "c-0000.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestRenderError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.gni"), "c1\nq\n\n")

	err := newTestBatch(false).Render(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.gni")
	assert.Contains(t, err.Error(), "line 2")

	require.NoError(t, newTestBatch(true).Render(context.Background(), dir))
	_, err = os.Stat(filepath.Join(dir, "bad-0000.png"))
	assert.NoError(t, err)
}

func TestRenderMissingDirectory(t *testing.T) {
	err := newTestBatch(false).Render(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
