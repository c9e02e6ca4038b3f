package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/gogpu/glestex"
	"github.com/pelletier/go-toml/v2"
)

// Config is the texprobe configuration file.
type Config struct {
	Driver   string         `toml:"driver"`
	Watch    bool           `toml:"watch"`
	Log      LogConfig      `toml:"log"`
	Renderer RendererConfig `toml:"renderer"`
	Uploads  []UploadConfig `toml:"upload"`

	// dir resolves relative image paths.
	dir string
}

// LogConfig configures the terminal logger.
type LogConfig struct {
	Level      string `toml:"level"`
	Timestamps bool   `toml:"timestamps"`
}

// RendererConfig maps onto glestex options.
type RendererConfig struct {
	DebugMarkers bool `toml:"debug_markers"`
}

// UploadConfig describes one texture to create.
type UploadConfig struct {
	Name   string  `toml:"name"`
	Format string  `toml:"format"`
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Stride int     `toml:"stride"`
	Image  string  `toml:"image"`
	Write  *Region `toml:"write"`
}

// Region is a sub-rectangle rewritten after upload.
type Region struct {
	X      int `toml:"x"`
	Y      int `toml:"y"`
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// DefaultConfig returns the configuration used for keys the file omits.
func DefaultConfig() *Config {
	return &Config{
		Driver:   "egl",
		Log:      LogConfig{Level: "info"},
		Renderer: RendererConfig{DebugMarkers: true},
		dir:      ".",
	}
}

// LoadConfig reads and validates a TOML configuration file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := decodeConfig(f)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

func decodeConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, errors.Newf("unknown keys:\n%s", strict.String())
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that do not depend on the driver.
func (c *Config) Validate() error {
	if c.Driver == "" {
		return errors.New("driver is empty")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(err, "log.level %q", c.Log.Level)
	}
	seen := make(map[string]bool, len(c.Uploads))
	for i, u := range c.Uploads {
		if u.Name == "" {
			return errors.Newf("upload %d has no name", i)
		}
		if seen[u.Name] {
			return errors.Newf("upload %q defined twice", u.Name)
		}
		seen[u.Name] = true

		if _, err := glestex.ParseFormat(u.Format); err != nil {
			return errors.Wrapf(err, "upload %q", u.Name)
		}
		if u.Image == "" && (u.Width <= 0 || u.Height <= 0) {
			return errors.Newf("upload %q needs an image or a positive size", u.Name)
		}
		if u.Stride < 0 {
			return errors.Newf("upload %q has negative stride %d", u.Name, u.Stride)
		}
		if w := u.Write; w != nil && (w.Width <= 0 || w.Height <= 0 || w.X < 0 || w.Y < 0) {
			return errors.Newf("upload %q has invalid write region %+v", u.Name, *w)
		}
	}
	return nil
}

// imagePath resolves an upload image relative to the config file.
func (c *Config) imagePath(u UploadConfig) string {
	if u.Image == "" || filepath.IsAbs(u.Image) {
		return u.Image
	}
	return filepath.Join(c.dir, u.Image)
}
