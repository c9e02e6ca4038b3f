package glestex

import "github.com/cockroachdb/errors"

// Error kinds. Every error returned by this package wraps exactly one of
// these; match with errors.Is.
var (
	// ErrUnsupportedFormat is returned when a pixel format or an EGL buffer
	// format tag has no GLES2 mapping.
	ErrUnsupportedFormat = errors.New("glestex: unsupported pixel format")

	// ErrInvalidStride is returned when a stride is not a multiple of the
	// bytes-per-pixel or too small for the row width.
	ErrInvalidStride = errors.New("glestex: invalid stride")

	// ErrAllocation is returned when the driver fails to allocate a texture name.
	ErrAllocation = errors.New("glestex: allocation failed")

	// ErrCapabilityMissing is returned when a zero-copy import is requested
	// but the driver lacks the required entry point or extension.
	ErrCapabilityMissing = errors.New("glestex: driver capability missing")

	// ErrImageImport is returned when the driver fails to create an EGL image.
	ErrImageImport = errors.New("glestex: image import failed")

	// ErrImmutableTexture is returned when writing to an imported texture.
	ErrImmutableTexture = errors.New("glestex: cannot write pixels to immutable texture")

	// ErrContextSwitch is returned when the renderer context cannot be made current.
	ErrContextSwitch = errors.New("glestex: cannot make renderer context current")

	// ErrShortBuffer is returned when a pixel buffer is smaller than the
	// bytes an upload would read.
	ErrShortBuffer = errors.New("glestex: pixel buffer too small")

	// ErrInvalidDimensions is returned for non-positive widths or heights.
	ErrInvalidDimensions = errors.New("glestex: invalid dimensions")

	// ErrInvalidRegion is returned when a write region falls outside the
	// texture or the source buffer origin is negative.
	ErrInvalidRegion = errors.New("glestex: invalid region")

	// ErrInvalidDMABUF is returned for malformed DMA-BUF descriptions.
	ErrInvalidDMABUF = errors.New("glestex: invalid DMA-BUF attributes")

	// ErrTextureDestroyed is returned when operating on a destroyed texture.
	ErrTextureDestroyed = errors.New("glestex: texture has been destroyed")

	// ErrNilDriver is returned by NewRenderer when no driver is given.
	ErrNilDriver = errors.New("glestex: nil driver")
)
