package glestex

import "github.com/cockroachdb/errors"

// FromDMABUF imports a DMA-BUF without copying. The texture is never
// writable. It is sampled through GL_TEXTURE_EXTERNAL_OES when the driver
// reports the buffer's format and modifier as external-only, and through
// GL_TEXTURE_2D otherwise.
//
// The plane file descriptors stay owned by attrs; the caller closes them
// with Finish once it no longer needs the buffer.
//
// FromDMABUF fails with ErrCapabilityMissing, without calling the driver,
// when DMA-BUF import or image binding is unsupported.
func (r *Renderer) FromDMABUF(attrs *DMABUFAttributes) (*Texture, error) {
	const op = "texture.from_dmabuf"

	if err := r.requireImageTarget(op); err != nil {
		return nil, r.fail(op, err)
	}
	if !r.caps.DMABUFImport {
		return nil, r.fail(op, errors.Wrapf(ErrCapabilityMissing, "%s: EGL_EXT_image_dma_buf_import not supported", op))
	}
	if attrs == nil {
		return nil, r.fail(op, errors.Wrap(ErrInvalidDMABUF, "nil attributes"))
	}
	args := []any{
		"format", attrs.Format, "modifier", attrs.Modifier,
		"width", attrs.Width, "height", attrs.Height, "planes", attrs.NPlanes,
	}
	if err := attrs.Validate(); err != nil {
		return nil, r.fail(op, err, args...)
	}

	t := r.newTexture(SourceDMABUF, attrs.Width, attrs.Height)
	t.format = FormatInvalid
	t.invertedY = attrs.InvertedY()
	t.hasAlpha = true
	if info, ok := r.formats.Lookup(attrs.Format); ok {
		t.hasAlpha = info.HasAlpha
	}

	g, err := r.acquire(op, t.id)
	if err != nil {
		return nil, r.fail(op, err, args...)
	}
	defer g.release()

	img, externalOnly, err := r.drv.CreateImageFromDMABUF(attrs)
	if err != nil {
		return nil, r.fail(op, errors.Mark(errors.Wrap(err, "create image from DMA-BUF"), ErrImageImport), args...)
	}
	t.target = Target2D
	if externalOnly {
		t.target = TargetExternal
	}

	if err := r.bindImage(t, img); err != nil {
		return nil, r.fail(op, err, args...)
	}
	r.created(t, op)
	return t, nil
}
