package glestex

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
)

func TestDefaultFormats(t *testing.T) {
	tests := []struct {
		format   Format
		name     string
		bpp      int
		hasAlpha bool
		webgpu   gputypes.TextureFormat
	}{
		{FormatARGB8888, "ARGB8888", 4, true, gputypes.TextureFormatBGRA8Unorm},
		{FormatXRGB8888, "XRGB8888", 4, false, gputypes.TextureFormatBGRA8Unorm},
		{FormatABGR8888, "ABGR8888", 4, true, gputypes.TextureFormatRGBA8Unorm},
		{FormatXBGR8888, "XBGR8888", 4, false, gputypes.TextureFormatRGBA8Unorm},
		{FormatBGR888, "BGR888", 3, false, gputypes.TextureFormatUndefined},
		{FormatRGB565, "RGB565", 2, false, gputypes.TextureFormatUndefined},
		{FormatRGBA4444, "RGBA4444", 2, true, gputypes.TextureFormatUndefined},
		{FormatRGBA5551, "RGBA5551", 2, true, gputypes.TextureFormatUndefined},
		{FormatABGR2101010, "ABGR2101010", 4, true, gputypes.TextureFormatRGB10A2Unorm},
		{FormatXBGR16161616F, "XBGR16161616F", 8, false, gputypes.TextureFormatRGBA16Float},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := DefaultFormats().Lookup(tt.format)
			if !ok {
				t.Fatalf("Lookup(%s) not found", tt.name)
			}
			if info.BytesPerPixel() != tt.bpp {
				t.Errorf("BytesPerPixel() = %d, want %d", info.BytesPerPixel(), tt.bpp)
			}
			if info.HasAlpha != tt.hasAlpha {
				t.Errorf("HasAlpha = %v, want %v", info.HasAlpha, tt.hasAlpha)
			}
			if info.WebGPU != tt.webgpu {
				t.Errorf("WebGPU = %v, want %v", info.WebGPU, tt.webgpu)
			}
			if got := tt.format.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestFormatFourcc(t *testing.T) {
	// DRM_FORMAT_ARGB8888 is fourcc_code('A', 'R', '2', '4').
	if FormatARGB8888 != 0x34325241 {
		t.Errorf("FormatARGB8888 = 0x%08X, want 0x34325241", uint32(FormatARGB8888))
	}
	if FormatXBGR16161616F != fourcc('X', 'B', '4', 'H') {
		t.Errorf("FormatXBGR16161616F does not match its fourcc")
	}
}

func TestLookupInvalid(t *testing.T) {
	if _, ok := DefaultFormats().Lookup(FormatInvalid); ok {
		t.Error("Lookup(FormatInvalid) should fail")
	}
	if _, ok := DefaultFormats().Lookup(fourcc('N', 'V', '1', '2')); ok {
		t.Error("Lookup(NV12) should fail: no GLES2 upload mapping")
	}
}

func TestFormatString(t *testing.T) {
	if got := FormatInvalid.String(); got != "INVALID" {
		t.Errorf("FormatInvalid.String() = %q", got)
	}
	if got := fourcc('N', 'V', '1', '2').String(); got != "0x3231564E" {
		t.Errorf("NV12.String() = %q, want 0x3231564E", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"ARGB8888", FormatARGB8888, false},
		{"argb8888", FormatARGB8888, false},
		{"XBGR2101010", FormatXBGR2101010, false},
		{"AR24", FormatARGB8888, false},
		{"NV12", fourcc('N', 'V', '1', '2'), false},
		{"RGBA8888X", FormatInvalid, true},
		{"", FormatInvalid, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("error %v does not wrap ErrUnsupportedFormat", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFormatTable(t *testing.T) {
	custom := NewFormatTable(
		FormatInfo{Format: FormatXRGB8888, Name: "XRGB8888", BitsPerPixel: 32},
		FormatInfo{Format: FormatARGB8888, Name: "ARGB8888", BitsPerPixel: 32},
		FormatInfo{Format: FormatARGB8888, Name: "ARGB8888", BitsPerPixel: 32, HasAlpha: true},
	)

	formats := custom.Formats()
	if len(formats) != 2 {
		t.Fatalf("Formats() = %v, want 2 entries", formats)
	}
	if formats[0] > formats[1] {
		t.Errorf("Formats() not sorted: %v", formats)
	}
	info, _ := custom.Lookup(FormatARGB8888)
	if !info.HasAlpha {
		t.Error("later entry should replace earlier one")
	}
	if _, ok := custom.Lookup(FormatABGR8888); ok {
		t.Error("custom table should not contain defaults")
	}
}
