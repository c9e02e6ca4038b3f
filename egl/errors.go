package egl

import "github.com/cockroachdb/errors"

// ErrUnsupportedPlatform is returned by New and Wrap where EGL is not
// available.
var ErrUnsupportedPlatform = errors.New("egl: unsupported platform")
