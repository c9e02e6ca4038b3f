package glestex

import "github.com/gogpu/wgpu/hal/gles/gl"

// GLES2 extension enums not covered by the core constant set.
const (
	// UnpackRowLength is GL_UNPACK_ROW_LENGTH_EXT (GL_EXT_unpack_subimage).
	UnpackRowLength = 0x0CF2
	// UnpackSkipRows is GL_UNPACK_SKIP_ROWS_EXT.
	UnpackSkipRows = 0x0CF3
	// UnpackSkipPixels is GL_UNPACK_SKIP_PIXELS_EXT.
	UnpackSkipPixels = 0x0CF4
	// UnpackAlignment is GL_UNPACK_ALIGNMENT.
	UnpackAlignment = gl.UNPACK_ALIGNMENT

	// defaultUnpackAlignment is the GL initial value of GL_UNPACK_ALIGNMENT.
	defaultUnpackAlignment = 4

	glTextureExternalOES       = 0x8D65
	glUnsignedShort4444        = 0x8033
	glUnsignedShort5551        = 0x8034
	glUnsignedShort565         = 0x8363
	glUnsignedInt2101010RevEXT = 0x8368
	glHalfFloatOES             = 0x8D61
	glTextureWrapS             = gl.TEXTURE_WRAP_S
	glTextureWrapT             = gl.TEXTURE_WRAP_T
	glClampToEdge              = gl.CLAMP_TO_EDGE
)

// Target is the GL texture target a texture is sampled through.
type Target uint32

const (
	// Target2D is GL_TEXTURE_2D.
	Target2D Target = gl.TEXTURE_2D
	// TargetExternal is GL_TEXTURE_EXTERNAL_OES, required for images whose
	// layout is driver-defined.
	TargetExternal Target = glTextureExternalOES
)

// String returns the GL enum name of the target.
func (t Target) String() string {
	switch t {
	case Target2D:
		return "GL_TEXTURE_2D"
	case TargetExternal:
		return "GL_TEXTURE_EXTERNAL_OES"
	default:
		return "GL_TEXTURE_UNKNOWN"
	}
}
