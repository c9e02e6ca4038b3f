package glestex

import "github.com/cockroachdb/errors"

// FromPixels creates a writable GL_TEXTURE_2D texture holding a copy of
// data. Rows of data are stride bytes apart and laid out as format.
// data is not retained.
func (r *Renderer) FromPixels(format Format, stride, width, height int, data []byte) (*Texture, error) {
	const op = "texture.from_pixels"
	args := []any{"format", format, "stride", stride, "width", width, "height", height}

	info, ok := r.formats.Lookup(format)
	if !ok {
		return nil, r.fail(op, errors.Wrapf(ErrUnsupportedFormat, "format %v", format), args...)
	}
	if width <= 0 || height <= 0 || !fitsGLInt(width, height) {
		return nil, r.fail(op, errors.Wrapf(ErrInvalidDimensions, "%dx%d", width, height), args...)
	}
	if err := CheckStride(info, stride, width); err != nil {
		return nil, r.fail(op, err, args...)
	}
	if err := checkUploadLength(info, stride, 0, 0, width, height, len(data)); err != nil {
		return nil, r.fail(op, err, args...)
	}

	t := r.newTexture(SourcePixels, width, height)
	t.target = Target2D
	t.format = format
	t.hasAlpha = info.HasAlpha

	g, err := r.acquire(op, t.id)
	if err != nil {
		return nil, r.fail(op, err, args...)
	}
	defer g.release()

	t.tex = r.drv.GenTexture()
	if t.tex == 0 {
		return nil, r.fail(op, errors.Wrap(ErrAllocation, "glGenTextures returned 0"), args...)
	}

	r.drv.BindTexture(Target2D, t.tex)
	r.clampToEdge(Target2D)
	r.setUnpack(info, stride, 0, 0)
	r.drv.TexImage2D(Target2D, int32(info.GLFormat), width, height, info.GLFormat, info.GLType, data)
	r.resetUnpack(stride)
	r.drv.BindTexture(Target2D, 0)

	r.created(t, op)
	return t, nil
}
