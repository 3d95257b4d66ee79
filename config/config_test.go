package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gni.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 512, cfg.Raster().Width)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	path := writeConfig(t, `
width = 320
height = 200
buffer = 16
output = " frames "
db = "gni.db"
log_level = "debug"
keep_going = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
	assert.Equal(t, 16, cfg.Buffer)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "frames", cfg.Output)
	assert.Equal(t, "frame-%04d.png", cfg.Pattern)
	assert.Equal(t, "gni.db", cfg.DB)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.True(t, cfg.KeepGoing)
}

func TestLoadEnvLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(writeConfig(t, `log_level = "debug"`))
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	tables := []struct {
		name string
		body string
	}{
		{"bad toml", `width = `},
		{"unknown key", `colour = "red"`},
		{"bad level", `log_level = "loud"`},
		{"zero width", `width = 0`},
		{"negative buffer", `buffer = -1`},
		{"empty pattern", `pattern = ""`},
		{"pattern without verb", `pattern = "frame.png"`},
		{"no workers", `workers = 0`},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, table.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, ok := ParseLevel(" TRACE ")
	assert.True(t, ok)
	assert.Equal(t, zerolog.TraceLevel, lvl)

	lvl, ok = ParseLevel("off")
	assert.True(t, ok)
	assert.Equal(t, zerolog.Disabled, lvl)

	_, ok = ParseLevel("")
	assert.False(t, ok)
}
