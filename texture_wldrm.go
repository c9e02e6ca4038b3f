package glestex

import "github.com/cockroachdb/errors"

// FromWLDRM imports a wl_drm buffer without copying. The texture is
// sampled through GL_TEXTURE_EXTERNAL_OES and cannot be written.
//
// FromWLDRM fails with ErrCapabilityMissing, without calling the driver,
// when EGL images cannot be bound to textures.
func (r *Renderer) FromWLDRM(buf WLBuffer) (*Texture, error) {
	const op = "texture.from_wl_drm"
	args := []any{"buffer", uintptr(buf)}

	if err := r.requireImageTarget(op); err != nil {
		return nil, r.fail(op, err, args...)
	}

	t := r.newTexture(SourceWLDRM, 0, 0)
	t.target = TargetExternal
	t.format = FormatInvalid

	g, err := r.acquire(op, t.id)
	if err != nil {
		return nil, r.fail(op, err, args...)
	}
	defer g.release()

	img, err := r.drv.CreateImageFromWLDRM(buf)
	if err != nil {
		return nil, r.fail(op, errors.Mark(errors.Wrap(err, "create image from wl_drm buffer"), ErrImageImport), args...)
	}
	args = append(args, "width", img.Width, "height", img.Height, "egl_format", img.Format)

	switch img.Format {
	case ImageFormatRGB:
		t.hasAlpha = false
	case ImageFormatRGBA, ImageFormatExternalWL:
		t.hasAlpha = true
	default:
		r.destroyImage(img.Image)
		return nil, r.fail(op, errors.Wrapf(ErrUnsupportedFormat, "EGL texture format 0x%X", int32(img.Format)), args...)
	}
	if img.Width <= 0 || img.Height <= 0 {
		r.destroyImage(img.Image)
		return nil, r.fail(op, errors.Wrapf(ErrImageImport, "buffer reports %dx%d", img.Width, img.Height), args...)
	}
	t.width = img.Width
	t.height = img.Height
	t.invertedY = img.InvertedY

	if err := r.bindImage(t, img.Image); err != nil {
		return nil, r.fail(op, err, args...)
	}
	r.created(t, op)
	return t, nil
}

// bindImage generates a texture name for t and attaches img as its
// storage. On failure img and the texture name are released.
func (r *Renderer) bindImage(t *Texture, img Image) error {
	t.tex = r.drv.GenTexture()
	if t.tex == 0 {
		r.destroyImage(img)
		return errors.Wrap(ErrAllocation, "glGenTextures returned 0")
	}

	r.drv.BindTexture(t.target, t.tex)
	r.clampToEdge(t.target)
	err := r.drv.ImageTargetTexture2D(t.target, img)
	r.drv.BindTexture(t.target, 0)
	if err != nil {
		r.drv.DeleteTexture(t.tex)
		t.tex = 0
		r.destroyImage(img)
		return errors.Mark(errors.Wrap(err, "bind EGL image"), ErrImageImport)
	}
	t.image = img
	return nil
}

// destroyImage releases an image that never made it into a texture.
func (r *Renderer) destroyImage(img Image) {
	if err := r.drv.DestroyImage(img); err != nil {
		slogger().Warn("glestex: failed to destroy EGL image", "err", err)
	}
}
