package glestex

import "testing"

// TestDefaultOptions tests the options used when none are given.
func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if !o.debugMarkers {
		t.Error("debug markers should be enabled by default")
	}
	if o.formats == nil {
		t.Fatal("default format table is nil")
	}
	if _, ok := o.formats.Lookup(FormatARGB8888); !ok {
		t.Error("default table is missing ARGB8888")
	}
}

// TestMultipleOptions tests that options apply in order.
func TestMultipleOptions(t *testing.T) {
	custom := NewFormatTable(FormatInfo{Format: FormatXRGB8888, Name: "XRGB8888", BitsPerPixel: 32})

	o := defaultOptions()
	for _, opt := range []Option{
		WithDebugMarkers(false),
		WithFormats(custom),
		WithDebugMarkers(true),
		WithFormats(nil),
	} {
		opt(&o)
	}

	if !o.debugMarkers {
		t.Error("last WithDebugMarkers should win")
	}
	if o.formats != custom {
		t.Error("WithFormats(nil) should keep the previous table")
	}
}
