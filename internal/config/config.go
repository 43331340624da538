// Package config loads the canephora CLI configuration from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tinyrange/canephora/jcgl"
)

type Config struct {
	Log          Log          `toml:"log"`
	Restrictions Restrictions `toml:"restrictions"`
	Render       Render       `toml:"render"`
}

type Log struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
}

// Restrictions emulates a weaker driver. It implements jcgl.Restrictions.
type Restrictions struct {
	TextureUnits     int      `toml:"texture_units"`
	HiddenExtensions []string `toml:"hidden_extensions"`
}

type Render struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Output string `toml:"output"`
}

const configFile = "canephora.toml"

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Log: Log{Level: "info"},
		Render: Render{
			Width:  256,
			Height: 256,
			Output: "quad.png",
		},
	}
}

// DefaultPath is the configuration file under the user's config directory.
func DefaultPath() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), "canephora", configFile)
}

func xdgOrFallback(xdg string, fallback string) string {
	dir := os.Getenv(xdg)
	if dir != "" {
		return dir
	}
	return fallback
}

// Load reads path over the defaults. A missing file yields the defaults;
// unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("read config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.validate()
}

// Write stores cfg at path, creating the directory if needed.
func Write(path string, cfg Config) error {
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(&cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, buffer.Bytes(), 0o644)
}

func (c Config) validate() error {
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Restrictions.TextureUnits < 0 {
		return fmt.Errorf("restrictions.texture_units: %d is negative", c.Restrictions.TextureUnits)
	}
	if c.Render.Width < 2 || c.Render.Height < 2 {
		return fmt.Errorf("render: size %dx%d is below 2x2", c.Render.Width, c.Render.Height)
	}
	return nil
}

// SlogLevel parses Level.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

func (r Restrictions) limits() jcgl.Limits {
	return jcgl.Limits{TextureUnits: r.TextureUnits, HiddenExtensions: r.HiddenExtensions}
}

func (r Restrictions) ExtensionVisible(name string) bool { return r.limits().ExtensionVisible(name) }
func (r Restrictions) TextureUnitCount(n int) int        { return r.limits().TextureUnitCount(n) }

var _ jcgl.Restrictions = Restrictions{}
