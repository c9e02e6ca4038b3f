package glestex

import (
	"image"

	"github.com/cockroachdb/errors"
	"golang.org/x/image/draw"
)

// FromImage uploads img as a writable ABGR8888 texture (R,G,B,A bytes in
// memory). Images that are not *image.RGBA are converted first.
func (r *Renderer) FromImage(img image.Image) (*Texture, error) {
	if img == nil {
		return nil, r.fail("texture.from_image", errors.Wrap(ErrInvalidDimensions, "nil image"))
	}
	rgba := toRGBA(img)
	b := rgba.Bounds()
	return r.FromPixels(FormatABGR8888, rgba.Stride, b.Dx(), b.Dy(), rgba.Pix)
}

// WriteImage uploads img to the texture with its top-left corner at dst.
// The texture must be a writable 8-bit-per-channel RGB texture.
func (t *Texture) WriteImage(img image.Image, dst image.Point) error {
	if img == nil {
		return t.renderer.fail("texture.write_image", errors.Wrap(ErrInvalidDimensions, "nil image"))
	}
	rgba := toRGBA(img)
	b := rgba.Bounds()
	pix := rgba.Pix

	switch t.format {
	case FormatABGR8888, FormatXBGR8888:
	case FormatARGB8888, FormatXRGB8888:
		pix = swapRB(rgba)
	default:
		if t.Writable() {
			return t.renderer.fail("texture.write_image",
				errors.Wrapf(ErrUnsupportedFormat, "cannot write image to %v texture", t.format))
		}
	}
	return t.Write(rgba.Stride, b.Dx(), b.Dy(), 0, 0, dst.X, dst.Y, pix)
}

// toRGBA returns img as premultiplied RGBA whose first byte is the
// top-left pixel.
func toRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok {
		return m
	}
	b := img.Bounds()
	m := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(m, image.Point{}, img, b, draw.Src, nil)
	return m
}

// swapRB returns a copy of m's pixels with red and blue exchanged.
func swapRB(m *image.RGBA) []byte {
	out := make([]byte, len(m.Pix))
	copy(out, m.Pix)
	for i := 0; i+3 < len(out); i += 4 {
		out[i], out[i+2] = out[i+2], out[i]
	}
	return out
}
