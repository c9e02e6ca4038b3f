package glestex

// SavedContext is a snapshot of the EGL bindings current on the calling
// thread. A zero SavedContext means no context was current.
type SavedContext struct {
	Display uintptr
	Draw    uintptr
	Read    uintptr
	Context uintptr
}

// Image is an EGLImageKHR handle.
type Image uintptr

// NoImage is EGL_NO_IMAGE_KHR.
const NoImage Image = 0

// WLBuffer is the wl_resource of a wl_drm buffer handed over by the
// protocol layer. glestex never dereferences it.
type WLBuffer uintptr

// ImageFormat is the EGL_TEXTURE_FORMAT reported for a wl_drm buffer.
type ImageFormat int32

// EGL_TEXTURE_FORMAT values reported by eglQueryWaylandBufferWL.
const (
	ImageFormatRGB        ImageFormat = 0x305D // EGL_TEXTURE_RGB
	ImageFormatRGBA       ImageFormat = 0x305E // EGL_TEXTURE_RGBA
	ImageFormatYUVY       ImageFormat = 0x31D7 // EGL_TEXTURE_Y_XUXV_WL
	ImageFormatYUV        ImageFormat = 0x31D8 // EGL_TEXTURE_Y_UV_WL
	ImageFormatYUV3       ImageFormat = 0x31D9 // EGL_TEXTURE_Y_U_V_WL
	ImageFormatExternalWL ImageFormat = 0x31DA // EGL_TEXTURE_EXTERNAL_WL
)

// WLDRMImage is the result of importing a wl_drm buffer.
type WLDRMImage struct {
	Image     Image
	Format    ImageFormat
	Width     int
	Height    int
	InvertedY bool
}

// Capabilities lists the optional driver features glestex depends on.
type Capabilities struct {
	// ImageTarget reports glEGLImageTargetTexture2DOES, required by both
	// zero-copy import paths.
	ImageTarget bool
	// WaylandBuffer reports EGL_WL_bind_wayland_display.
	WaylandBuffer bool
	// DMABUFImport reports EGL_EXT_image_dma_buf_import.
	DMABUFImport bool
	// DMABUFModifiers reports EGL_EXT_image_dma_buf_import_modifiers.
	DMABUFModifiers bool
	// DebugMarkers reports GL_KHR_debug push/pop debug groups.
	DebugMarkers bool
}

// ContextSwitcher saves, switches and restores the EGL context current on
// the calling thread.
type ContextSwitcher interface {
	// SaveCurrent returns the bindings current on the calling thread.
	SaveCurrent() SavedContext
	// MakeCurrent makes the renderer context current on the calling thread.
	MakeCurrent() error
	// RestoreCurrent rebinds a snapshot returned by SaveCurrent.
	RestoreCurrent(SavedContext) error
}

// GL is the subset of GLES2 used to create, update and delete textures.
// Calls are only issued while the renderer context is current.
type GL interface {
	GenTexture() uint32
	DeleteTexture(tex uint32)
	BindTexture(target Target, tex uint32)
	TexParameteri(target Target, pname uint32, param int32)
	PixelStorei(pname uint32, param int32)
	TexImage2D(target Target, internalFormat int32, width, height int, format, typ uint32, pixels []byte)
	TexSubImage2D(target Target, x, y, width, height int, format, typ uint32, pixels []byte)
}

// ImageImporter creates EGL images from shared buffers and binds them to
// textures.
type ImageImporter interface {
	Capabilities() Capabilities
	CreateImageFromWLDRM(buf WLBuffer) (WLDRMImage, error)
	CreateImageFromDMABUF(attrs *DMABUFAttributes) (img Image, externalOnly bool, err error)
	// ImageTargetTexture2D binds img as the storage of the texture bound
	// to target (glEGLImageTargetTexture2DOES).
	ImageTargetTexture2D(target Target, img Image) error
	DestroyImage(img Image) error
}

// DebugMarker is implemented by drivers that support GL_KHR_debug groups.
type DebugMarker interface {
	PushDebugGroup(label string)
	PopDebugGroup()
}

// Driver is everything a Renderer needs from the platform.
type Driver interface {
	ContextSwitcher
	GL
	ImageImporter
}
