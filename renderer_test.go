package glestex_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/glestex"
	"github.com/gogpu/glestex/internal/fakegl"
)

func TestNewRendererNilDriver(t *testing.T) {
	r, err := glestex.NewRenderer(nil)
	if !errors.Is(err, glestex.ErrNilDriver) {
		t.Errorf("NewRenderer(nil) error = %v, want ErrNilDriver", err)
	}
	if r != nil {
		t.Error("NewRenderer(nil) returned a renderer")
	}
}

func TestNewRendererProbesCapabilities(t *testing.T) {
	drv := fakegl.New()
	drv.Caps.DMABUFModifiers = false
	r := newRenderer(t, drv)

	caps := r.Capabilities()
	if !caps.ImageTarget || !caps.DMABUFImport || caps.DMABUFModifiers {
		t.Errorf("Capabilities() = %+v", caps)
	}
	if r.Driver() != glestex.Driver(drv) {
		t.Error("Driver() does not return the driver passed in")
	}
	if r.Formats() != glestex.DefaultFormats() {
		t.Error("Formats() should default to DefaultFormats()")
	}
}

func TestWithFormats(t *testing.T) {
	onlyXRGB := glestex.NewFormatTable(glestex.FormatInfo{
		Format:       glestex.FormatXRGB8888,
		Name:         "XRGB8888",
		GLFormat:     0x80E1,
		GLType:       0x1401,
		BitsPerPixel: 32,
	})

	drv := fakegl.New()
	r := newRenderer(t, drv, glestex.WithFormats(onlyXRGB))

	if _, err := r.FromPixels(glestex.FormatARGB8888, 4, 1, 1, make([]byte, 4)); !errors.Is(err, glestex.ErrUnsupportedFormat) {
		t.Errorf("ARGB8888 with custom table = %v, want ErrUnsupportedFormat", err)
	}
	tex, err := r.FromPixels(glestex.FormatXRGB8888, 4, 1, 1, make([]byte, 4))
	if err != nil {
		t.Fatalf("XRGB8888 with custom table = %v", err)
	}
	tex.Destroy()

	r = newRenderer(t, drv, glestex.WithFormats(nil))
	if r.Formats() != glestex.DefaultFormats() {
		t.Error("WithFormats(nil) should keep the default table")
	}
}

func TestStats(t *testing.T) {
	drv := fakegl.New()
	r := newRenderer(t, drv)

	if got, want := r.Stats().String(), "Textures[0 live, 0 images, 0 created, 0 destroyed, 0 failed]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	tex, err := r.FromWLDRM(drv.AddWLBuffer(glestex.ImageFormatRGBA, 2, 2, false))
	if err != nil {
		t.Fatalf("FromWLDRM() = %v", err)
	}
	_ = tex.Write(8, 2, 2, 0, 0, 0, 0, make([]byte, 16))

	want := glestex.Stats{LiveTextures: 1, LiveImages: 1, Created: 1, Failed: 1}
	if got := r.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
	if got := r.Stats().String(); got != "Textures[1 live, 1 images, 1 created, 0 destroyed, 1 failed]" {
		t.Errorf("String() = %q", got)
	}

	tex.Destroy()
	want = glestex.Stats{Created: 1, Destroyed: 1, Failed: 1}
	if got := r.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		src  glestex.Source
		want string
	}{
		{glestex.SourcePixels, "pixels"},
		{glestex.SourceWLDRM, "wl_drm"},
		{glestex.SourceDMABUF, "dmabuf"},
		{glestex.Source(0), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.src.String(); got != tt.want {
			t.Errorf("Source(%d).String() = %q, want %q", tt.src, got, tt.want)
		}
	}
}
