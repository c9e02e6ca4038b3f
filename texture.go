package glestex

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"
	"github.com/google/uuid"
)

// Source identifies how a texture was constructed.
type Source uint8

const (
	// SourcePixels textures own a copy of caller pixels and are writable.
	SourcePixels Source = iota + 1
	// SourceWLDRM textures sample a wl_drm buffer through an EGL image.
	SourceWLDRM
	// SourceDMABUF textures sample a DMA-BUF through an EGL image.
	SourceDMABUF
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourcePixels:
		return "pixels"
	case SourceWLDRM:
		return "wl_drm"
	case SourceDMABUF:
		return "dmabuf"
	default:
		return "unknown"
	}
}

// Texture is a GL texture owned by a Renderer.
//
// A Texture is created by one of FromPixels, FromImage, FromWLDRM or
// FromDMABUF and stays valid until Destroy. Only textures created from
// pixels can be written; imported textures share storage with the buffer
// they were imported from.
type Texture struct {
	renderer *Renderer
	id       uuid.UUID
	source   Source

	width  int
	height int

	target    Target
	tex       uint32
	image     Image
	format    Format
	hasAlpha  bool
	invertedY bool

	released atomic.Bool
}

// Attribs is what the rendering stage needs to sample a texture.
type Attribs struct {
	Target    Target
	Tex       uint32
	InvertedY bool
	HasAlpha  bool
}

// TexCoordTransform returns the matrix applied to [0,1] texture
// coordinates before sampling: identity, or a vertical flip for textures
// whose rows are stored bottom-up.
func (a Attribs) TexCoordTransform() mgl32.Mat3 {
	if !a.InvertedY {
		return mgl32.Ident3()
	}
	return mgl32.Translate2D(0, 1).Mul3(mgl32.Scale2D(1, -1))
}

func (r *Renderer) newTexture(src Source, width, height int) *Texture {
	return &Texture{
		renderer: r,
		id:       uuid.New(),
		source:   src,
		width:    width,
		height:   height,
	}
}

// created accounts for a fully constructed texture.
func (r *Renderer) created(t *Texture, op string) {
	r.stats.created.Add(1)
	r.stats.liveTextures.Add(1)
	if t.image != NoImage {
		r.stats.liveImages.Add(1)
	}
	slogger().Debug("glestex: texture created",
		"op", op,
		"texture", t.id,
		"target", t.target,
		"width", t.width,
		"height", t.height,
		"format", t.format,
		"has_alpha", t.hasAlpha,
		"inverted_y", t.invertedY)
}

// clampToEdge sets CLAMP_TO_EDGE wrapping on the texture bound to target.
func (r *Renderer) clampToEdge(target Target) {
	r.drv.TexParameteri(target, glTextureWrapS, glClampToEdge)
	r.drv.TexParameteri(target, glTextureWrapT, glClampToEdge)
}

// setUnpack points GL at a sub-rectangle of a caller buffer with the given
// stride. resetUnpack must follow the upload.
func (r *Renderer) setUnpack(info FormatInfo, stride, skipPixels, skipRows int) {
	r.drv.PixelStorei(UnpackRowLength, int32(stride/info.BytesPerPixel()))
	r.drv.PixelStorei(UnpackSkipPixels, int32(skipPixels))
	r.drv.PixelStorei(UnpackSkipRows, int32(skipRows))
	if a := unpackAlignment(stride); a != defaultUnpackAlignment {
		r.drv.PixelStorei(UnpackAlignment, a)
	}
}

// resetUnpack restores the unpack state changed by setUnpack.
func (r *Renderer) resetUnpack(stride int) {
	r.drv.PixelStorei(UnpackRowLength, 0)
	r.drv.PixelStorei(UnpackSkipPixels, 0)
	r.drv.PixelStorei(UnpackSkipRows, 0)
	if unpackAlignment(stride) != defaultUnpackAlignment {
		r.drv.PixelStorei(UnpackAlignment, defaultUnpackAlignment)
	}
}

// ID returns the identifier used for this texture in logs and debug labels.
func (t *Texture) ID() uuid.UUID { return t.id }

// Source returns how the texture was constructed.
func (t *Texture) Source() Source { return t.source }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Target returns the GL target the texture is sampled through.
func (t *Texture) Target() Target { return t.target }

// Format returns the pixel format of a writable texture, or FormatInvalid
// for imported textures.
func (t *Texture) Format() Format { return t.format }

// HasAlpha reports whether the texture carries an alpha channel.
func (t *Texture) HasAlpha() bool { return t.hasAlpha }

// IsOpaque reports whether the texture can be drawn without blending.
func (t *Texture) IsOpaque() bool { return !t.hasAlpha }

// InvertedY reports whether rows are stored bottom-up.
func (t *Texture) InvertedY() bool { return t.invertedY }

// Writable reports whether Write may be called on the texture.
func (t *Texture) Writable() bool {
	return t.source == SourcePixels && t.format != FormatInvalid
}

// IsDestroyed reports whether Destroy has been called.
func (t *Texture) IsDestroyed() bool { return t.released.Load() }

// Attribs returns the sampling attributes of the texture.
func (t *Texture) Attribs() Attribs {
	return Attribs{
		Target:    t.target,
		Tex:       t.tex,
		InvertedY: t.invertedY,
		HasAlpha:  t.hasAlpha,
	}
}

// Write uploads a width x height block of pixels to (dstX, dstY). The block
// is read from data starting srcX pixels into row srcY, with rows stride
// bytes apart. data is not retained.
//
// Write fails with ErrImmutableTexture on imported textures without
// touching the driver.
func (t *Texture) Write(stride, width, height, srcX, srcY, dstX, dstY int, data []byte) error {
	const op = "texture.write"
	r := t.renderer
	args := []any{
		"texture", t.id, "format", t.format, "stride", stride,
		"width", width, "height", height, "dst_x", dstX, "dst_y", dstY,
	}

	if t.released.Load() {
		return r.fail(op, ErrTextureDestroyed, args...)
	}
	if !t.Writable() {
		return r.fail(op, errors.Wrapf(ErrImmutableTexture, "%s texture", t.source), args...)
	}
	info, ok := r.formats.Lookup(t.format)
	if !ok {
		return r.fail(op, errors.Wrapf(ErrUnsupportedFormat, "format %v", t.format), args...)
	}
	if err := CheckStride(info, stride, width); err != nil {
		return r.fail(op, err, args...)
	}
	if width <= 0 || height <= 0 || !fitsGLInt(width, height) {
		return r.fail(op, errors.Wrapf(ErrInvalidDimensions, "%dx%d", width, height), args...)
	}
	if !fitsGLInt(srcX, srcY, dstX, dstY) ||
		int64(dstX)+int64(width) > int64(t.width) || int64(dstY)+int64(height) > int64(t.height) {
		return r.fail(op, errors.Wrapf(ErrInvalidRegion,
			"src (%d,%d) dst (%d,%d) size %dx%d in %dx%d texture",
			srcX, srcY, dstX, dstY, width, height, t.width, t.height), args...)
	}
	if err := checkUploadLength(info, stride, srcX, srcY, width, height, len(data)); err != nil {
		return r.fail(op, err, args...)
	}

	g, err := r.acquire(op, t.id)
	if err != nil {
		return r.fail(op, err, args...)
	}
	defer g.release()

	r.drv.BindTexture(Target2D, t.tex)
	r.setUnpack(info, stride, srcX, srcY)
	r.drv.TexSubImage2D(Target2D, dstX, dstY, width, height, info.GLFormat, info.GLType, data)
	r.resetUnpack(stride)
	r.drv.BindTexture(Target2D, 0)
	return nil
}

// tightStride returns the stride of a tightly packed row of width pixels,
// or 0 when the texture has no pixel format.
func (t *Texture) tightStride(width int) int {
	info, ok := t.renderer.formats.Lookup(t.format)
	if !ok {
		return 0
	}
	return width * info.BytesPerPixel()
}

// UpdateData replaces the whole texture with tightly packed pixels in the
// texture's format.
func (t *Texture) UpdateData(data []byte) error {
	return t.Write(t.tightStride(t.width), t.width, t.height, 0, 0, 0, 0, data)
}

// UpdateRegion replaces a w x h region at (x, y) with tightly packed
// pixels in the texture's format.
func (t *Texture) UpdateRegion(x, y, w, h int, data []byte) error {
	return t.Write(t.tightStride(w), w, h, 0, 0, x, y, data)
}

// Destroy deletes the GL texture and the imported EGL image, if any.
// Destroy on a nil or already destroyed texture does nothing. Release
// failures are logged, not returned.
func (t *Texture) Destroy() {
	if t == nil || !t.released.CompareAndSwap(false, true) {
		return
	}
	const op = "texture.destroy"
	r := t.renderer

	g, err := r.acquire(op, t.id)
	if err != nil {
		slogger().Warn("glestex: leaking texture, context unavailable",
			"texture", t.id, "err", err)
		return
	}
	defer g.release()

	r.drv.DeleteTexture(t.tex)
	r.stats.liveTextures.Add(-1)
	if t.image != NoImage {
		if err := r.drv.DestroyImage(t.image); err != nil {
			slogger().Warn("glestex: failed to destroy EGL image",
				"texture", t.id, "err", err)
		}
		r.stats.liveImages.Add(-1)
	}
	r.stats.destroyed.Add(1)

	slogger().Debug("glestex: texture destroyed", "texture", t.id, "source", t.source)
}

// Compile-time interface checks.
var (
	_ gpucontext.Texture              = (*Texture)(nil)
	_ gpucontext.TextureUpdater       = (*Texture)(nil)
	_ gpucontext.TextureRegionUpdater = (*Texture)(nil)
)
