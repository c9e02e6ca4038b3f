package glestex_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/glestex"
	"github.com/gogpu/glestex/internal/fakegl"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	return img
}

func TestFromImage(t *testing.T) {
	drv := fakegl.New()
	r := newRenderer(t, drv)

	tex, err := r.FromImage(testImage())
	if err != nil {
		t.Fatalf("FromImage() = %v", err)
	}
	t.Cleanup(tex.Destroy)

	if tex.Format() != glestex.FormatABGR8888 {
		t.Errorf("Format() = %v, want ABGR8888", tex.Format())
	}
	storage, _ := drv.Texture(tex.Attribs().Tex)
	want := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 10, 20, 30, 255,
	}
	if !bytes.Equal(storage.Pixels, want) {
		t.Errorf("pixels = %v, want %v", storage.Pixels, want)
	}
	assertRestored(t, drv)
}

func TestFromImageSubImage(t *testing.T) {
	drv := fakegl.New()
	r := newRenderer(t, drv)

	full := image.NewRGBA(image.Rect(0, 0, 4, 4))
	full.Set(2, 2, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	sub := full.SubImage(image.Rect(2, 2, 4, 4))

	tex, err := r.FromImage(sub)
	if err != nil {
		t.Fatalf("FromImage() = %v", err)
	}
	t.Cleanup(tex.Destroy)

	if tex.Width() != 2 || tex.Height() != 2 {
		t.Fatalf("size = %dx%d, want 2x2", tex.Width(), tex.Height())
	}
	storage, _ := drv.Texture(tex.Attribs().Tex)
	if got := storage.Pixel(0, 0); !bytes.Equal(got, []byte{1, 2, 3, 255}) {
		t.Errorf("pixel (0,0) = %v, want [1 2 3 255]", got)
	}
}

func TestFromImageErrors(t *testing.T) {
	drv := fakegl.New()
	r := newRenderer(t, drv)

	if _, err := r.FromImage(nil); !errors.Is(err, glestex.ErrInvalidDimensions) {
		t.Errorf("FromImage(nil) = %v, want ErrInvalidDimensions", err)
	}
	empty := image.NewRGBA(image.Rectangle{})
	if _, err := r.FromImage(empty); !errors.Is(err, glestex.ErrInvalidDimensions) {
		t.Errorf("FromImage(empty) = %v, want ErrInvalidDimensions", err)
	}
	if len(drv.Calls()) != 0 {
		t.Errorf("driver called: %v", drv.Calls())
	}
}

func TestWriteImage(t *testing.T) {
	tests := []struct {
		name   string
		format glestex.Format
		want   []byte
	}{
		{"abgr", glestex.FormatABGR8888, []byte{10, 20, 30, 255}},
		{"xbgr", glestex.FormatXBGR8888, []byte{10, 20, 30, 255}},
		{"argb swaps red and blue", glestex.FormatARGB8888, []byte{30, 20, 10, 255}},
		{"xrgb swaps red and blue", glestex.FormatXRGB8888, []byte{30, 20, 10, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drv := fakegl.New()
			r := newRenderer(t, drv)
			tex, err := r.FromPixels(tt.format, 16, 4, 4, make([]byte, 64))
			if err != nil {
				t.Fatalf("FromPixels() = %v", err)
			}
			t.Cleanup(tex.Destroy)

			if err := tex.WriteImage(testImage(), image.Pt(2, 2)); err != nil {
				t.Fatalf("WriteImage() = %v", err)
			}
			storage, _ := drv.Texture(tex.Attribs().Tex)
			if got := storage.Pixel(3, 3); !bytes.Equal(got, tt.want) {
				t.Errorf("pixel (3,3) = %v, want %v", got, tt.want)
			}
			if got := storage.Pixel(0, 0); !bytes.Equal(got, []byte{0, 0, 0, 0}) {
				t.Errorf("pixel (0,0) = %v, want untouched", got)
			}
			assertRestored(t, drv)
		})
	}
}

func TestWriteImageErrors(t *testing.T) {
	drv := fakegl.New()
	r := newRenderer(t, drv)

	rgb565, err := r.FromPixels(glestex.FormatRGB565, 8, 4, 4, make([]byte, 32))
	if err != nil {
		t.Fatalf("FromPixels() = %v", err)
	}
	t.Cleanup(rgb565.Destroy)
	if err := rgb565.WriteImage(testImage(), image.Point{}); !errors.Is(err, glestex.ErrUnsupportedFormat) {
		t.Errorf("WriteImage() on RGB565 = %v, want ErrUnsupportedFormat", err)
	}

	imported, err := r.FromWLDRM(drv.AddWLBuffer(glestex.ImageFormatRGBA, 4, 4, false))
	if err != nil {
		t.Fatalf("FromWLDRM() = %v", err)
	}
	t.Cleanup(imported.Destroy)
	if err := imported.WriteImage(testImage(), image.Point{}); !errors.Is(err, glestex.ErrImmutableTexture) {
		t.Errorf("WriteImage() on import = %v, want ErrImmutableTexture", err)
	}

	abgr, err := r.FromPixels(glestex.FormatABGR8888, 8, 2, 2, make([]byte, 16))
	if err != nil {
		t.Fatalf("FromPixels() = %v", err)
	}
	t.Cleanup(abgr.Destroy)
	if err := abgr.WriteImage(testImage(), image.Pt(1, 0)); !errors.Is(err, glestex.ErrInvalidRegion) {
		t.Errorf("WriteImage() past the edge = %v, want ErrInvalidRegion", err)
	}
}

func TestNewTextureFromRGBA(t *testing.T) {
	drv := fakegl.New()
	r := newRenderer(t, drv)

	tex, err := r.NewTextureFromRGBA(2, 1, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		t.Fatalf("NewTextureFromRGBA() = %v", err)
	}
	if tex.Width() != 2 || tex.Height() != 1 {
		t.Errorf("size = %dx%d, want 2x1", tex.Width(), tex.Height())
	}
	gt, ok := tex.(*glestex.Texture)
	if !ok {
		t.Fatalf("NewTextureFromRGBA() returned %T", tex)
	}
	gt.Destroy()

	if _, err := r.NewTextureFromRGBA(2, 2, []byte{1, 2, 3, 4}); !errors.Is(err, glestex.ErrShortBuffer) {
		t.Errorf("NewTextureFromRGBA() short = %v, want ErrShortBuffer", err)
	}
}
