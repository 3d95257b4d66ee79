/*
Package config loads the settings shared by the gni commands from an optional
TOML file and the environment.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bodgit/gni/raster"
	"github.com/rs/zerolog"
)

// EnvLogLevel overrides the log level from the file.
const EnvLogLevel = "GNI_LOG_LEVEL"

// Config holds the renderer and output settings.
type Config struct {
	Width     int
	Height    int
	Buffer    int
	Workers   int
	Output    string
	Pattern   string
	DB        string
	LogLevel  zerolog.Level
	KeepGoing bool
}

type fileConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Buffer    int    `toml:"buffer"`
	Workers   int    `toml:"workers"`
	Output    string `toml:"output"`
	Pattern   string `toml:"pattern"`
	DB        string `toml:"db"`
	LogLevel  string `toml:"log_level"`
	KeepGoing bool   `toml:"keep_going"`
}

// Default returns the built in settings.
func Default() Config {
	rc := raster.DefaultConfig()
	return Config{
		Width:    rc.Width,
		Height:   rc.Height,
		Buffer:   rc.Buffer,
		Workers:  4,
		Output:   ".",
		Pattern:  "frame-%04d.png",
		LogLevel: zerolog.InfoLevel,
	}
}

// Load returns the default settings overlaid with any keys set in the file
// at path and then the environment. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		var raw fileConfig
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
		}

		if meta.IsDefined("width") {
			cfg.Width = raw.Width
		}
		if meta.IsDefined("height") {
			cfg.Height = raw.Height
		}
		if meta.IsDefined("buffer") {
			cfg.Buffer = raw.Buffer
		}
		if meta.IsDefined("workers") {
			cfg.Workers = raw.Workers
		}
		if meta.IsDefined("output") {
			cfg.Output = strings.TrimSpace(raw.Output)
		}
		if meta.IsDefined("pattern") {
			cfg.Pattern = raw.Pattern
		}
		if meta.IsDefined("db") {
			cfg.DB = strings.TrimSpace(raw.DB)
		}
		if meta.IsDefined("log_level") {
			lvl, ok := ParseLevel(raw.LogLevel)
			if !ok {
				return Config{}, fmt.Errorf("load config: invalid log_level %q", raw.LogLevel)
			}
			cfg.LogLevel = lvl
		}
		if meta.IsDefined("keep_going") {
			cfg.KeepGoing = raw.KeepGoing
		}
	}

	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.LogLevel = lvl
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	}
	if c.Buffer <= 0 {
		return fmt.Errorf("config: invalid buffer %d", c.Buffer)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("config: invalid workers %d", c.Workers)
	}
	if strings.TrimSpace(c.Pattern) == "" {
		return errors.New("config: missing pattern")
	}
	if !strings.Contains(c.Pattern, "%") {
		return fmt.Errorf("config: pattern %q has no frame number verb", c.Pattern)
	}
	return nil
}

// Raster returns the renderer settings.
func (c Config) Raster() raster.Config {
	return raster.Config{
		Width:  c.Width,
		Height: c.Height,
		Buffer: c.Buffer,
	}
}

// ParseLevel maps a level name to a zerolog level. The second result is
// false for an empty or unknown name.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
