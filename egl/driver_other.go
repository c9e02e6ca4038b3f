//go:build !linux || (js && wasm)

package egl

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/glestex"
)

// Config selects the GLES context created by New.
type Config struct {
	GLVersionMajor int
	GLVersionMinor int
	Debug          bool
}

// DefaultConfig returns a GLES 2.0 configuration.
func DefaultConfig() Config {
	return Config{GLVersionMajor: 2, GLVersionMinor: 0}
}

// Driver is unavailable on this platform.
type Driver struct {
	glestex.Driver
}

// New always fails on this platform.
func New(Config) (*Driver, error) {
	return nil, errors.WithStack(ErrUnsupportedPlatform)
}

// Wrap always fails on this platform.
func Wrap(_, _, _, _ uintptr) (*Driver, error) {
	return nil, errors.WithStack(ErrUnsupportedPlatform)
}

// Close is a no-op.
func (d *Driver) Close() {}

// Renderer returns an empty string.
func (d *Driver) Renderer() string { return "" }

// Version returns an empty string.
func (d *Driver) Version() string { return "" }
