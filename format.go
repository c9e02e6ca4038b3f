package glestex

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

// Format is a DRM fourcc pixel layout code.
type Format uint32

func fourcc(a, b, c, d byte) Format {
	return Format(a) | Format(b)<<8 | Format(c)<<16 | Format(d)<<24
}

// FormatInvalid marks textures whose backing store is owned by an imported
// image and therefore cannot be written.
const FormatInvalid Format = 0

// DRM formats with a GLES2 upload mapping.
const (
	FormatARGB8888      Format = 'A' | 'R'<<8 | '2'<<16 | '4'<<24
	FormatXRGB8888      Format = 'X' | 'R'<<8 | '2'<<16 | '4'<<24
	FormatABGR8888      Format = 'A' | 'B'<<8 | '2'<<16 | '4'<<24
	FormatXBGR8888      Format = 'X' | 'B'<<8 | '2'<<16 | '4'<<24
	FormatBGR888        Format = 'B' | 'G'<<8 | '2'<<16 | '4'<<24
	FormatRGB565        Format = 'R' | 'G'<<8 | '1'<<16 | '6'<<24
	FormatRGBA4444      Format = 'R' | 'A'<<8 | '1'<<16 | '2'<<24
	FormatRGBX4444      Format = 'R' | 'X'<<8 | '1'<<16 | '2'<<24
	FormatRGBA5551      Format = 'R' | 'A'<<8 | '1'<<16 | '5'<<24
	FormatRGBX5551      Format = 'R' | 'X'<<8 | '1'<<16 | '5'<<24
	FormatABGR2101010   Format = 'A' | 'B'<<8 | '3'<<16 | '0'<<24
	FormatXBGR2101010   Format = 'X' | 'B'<<8 | '3'<<16 | '0'<<24
	FormatABGR16161616F Format = 'A' | 'B'<<8 | '4'<<16 | 'H'<<24
	FormatXBGR16161616F Format = 'X' | 'B'<<8 | '4'<<16 | 'H'<<24
)

// FormatInfo describes how a DRM format is uploaded through GLES2.
type FormatInfo struct {
	Format Format
	Name   string

	// GLFormat and GLType are passed to glTexImage2D. GLFormat doubles as
	// the internal format, as GLES2 requires.
	GLFormat uint32
	GLType   uint32

	HasAlpha     bool
	BitsPerPixel int

	// WebGPU is the equivalent gputypes format, or TextureFormatUndefined
	// when WebGPU has no matching layout.
	WebGPU gputypes.TextureFormat
}

// BytesPerPixel returns BitsPerPixel / 8.
func (i FormatInfo) BytesPerPixel() int {
	return i.BitsPerPixel / 8
}

var defaultFormatInfos = []FormatInfo{
	{FormatARGB8888, "ARGB8888", gl.BGRA, gl.UNSIGNED_BYTE, true, 32, gputypes.TextureFormatBGRA8Unorm},
	{FormatXRGB8888, "XRGB8888", gl.BGRA, gl.UNSIGNED_BYTE, false, 32, gputypes.TextureFormatBGRA8Unorm},
	{FormatABGR8888, "ABGR8888", gl.RGBA, gl.UNSIGNED_BYTE, true, 32, gputypes.TextureFormatRGBA8Unorm},
	{FormatXBGR8888, "XBGR8888", gl.RGBA, gl.UNSIGNED_BYTE, false, 32, gputypes.TextureFormatRGBA8Unorm},
	{FormatBGR888, "BGR888", gl.RGB, gl.UNSIGNED_BYTE, false, 24, gputypes.TextureFormatUndefined},
	{FormatRGB565, "RGB565", gl.RGB, glUnsignedShort565, false, 16, gputypes.TextureFormatUndefined},
	{FormatRGBA4444, "RGBA4444", gl.RGBA, glUnsignedShort4444, true, 16, gputypes.TextureFormatUndefined},
	{FormatRGBX4444, "RGBX4444", gl.RGBA, glUnsignedShort4444, false, 16, gputypes.TextureFormatUndefined},
	{FormatRGBA5551, "RGBA5551", gl.RGBA, glUnsignedShort5551, true, 16, gputypes.TextureFormatUndefined},
	{FormatRGBX5551, "RGBX5551", gl.RGBA, glUnsignedShort5551, false, 16, gputypes.TextureFormatUndefined},
	{FormatABGR2101010, "ABGR2101010", gl.RGBA, glUnsignedInt2101010RevEXT, true, 32, gputypes.TextureFormatRGB10A2Unorm},
	{FormatXBGR2101010, "XBGR2101010", gl.RGBA, glUnsignedInt2101010RevEXT, false, 32, gputypes.TextureFormatRGB10A2Unorm},
	{FormatABGR16161616F, "ABGR16161616F", gl.RGBA, glHalfFloatOES, true, 64, gputypes.TextureFormatRGBA16Float},
	{FormatXBGR16161616F, "XBGR16161616F", gl.RGBA, glHalfFloatOES, false, 64, gputypes.TextureFormatRGBA16Float},
}

// FormatTable resolves DRM formats to their GLES2 upload parameters.
// A FormatTable is immutable after construction and safe for concurrent use.
type FormatTable struct {
	byFormat map[Format]FormatInfo
}

// NewFormatTable builds a table from infos. Later entries replace earlier
// ones with the same Format.
func NewFormatTable(infos ...FormatInfo) *FormatTable {
	t := &FormatTable{byFormat: make(map[Format]FormatInfo, len(infos))}
	for _, info := range infos {
		t.byFormat[info.Format] = info
	}
	return t
}

var defaultFormats = NewFormatTable(defaultFormatInfos...)

// DefaultFormats returns the built-in GLES2 format table.
func DefaultFormats() *FormatTable {
	return defaultFormats
}

// Lookup returns the upload parameters for f.
func (t *FormatTable) Lookup(f Format) (FormatInfo, bool) {
	if f == FormatInvalid {
		return FormatInfo{}, false
	}
	info, ok := t.byFormat[f]
	return info, ok
}

// Formats returns every format in the table in ascending fourcc order.
func (t *FormatTable) Formats() []Format {
	out := make([]Format, 0, len(t.byFormat))
	for f := range t.byFormat {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// String returns the DRM name of the format, e.g. "ARGB8888".
func (f Format) String() string {
	if f == FormatInvalid {
		return "INVALID"
	}
	if info, ok := defaultFormats.byFormat[f]; ok {
		return info.Name
	}
	return fmt.Sprintf("0x%08X", uint32(f))
}

// ParseFormat returns the format whose DRM name matches name, ignoring case.
// A four-character name is also accepted as a raw fourcc ("AR24").
func ParseFormat(name string) (Format, error) {
	for _, info := range defaultFormatInfos {
		if strings.EqualFold(info.Name, name) {
			return info.Format, nil
		}
	}
	if len(name) == 4 {
		return fourcc(name[0], name[1], name[2], name[3]), nil
	}
	return FormatInvalid, errors.Wrapf(ErrUnsupportedFormat, "format %q", name)
}
