package egl

import "github.com/gogpu/glestex"

// EGL and GL enums used by the image import paths.
const (
	eglNone     = 0x3038
	eglTrue     = 1
	eglHeight   = 0x3056
	eglWidth    = 0x3057
	eglDraw     = 0x3059
	eglRead     = 0x305A
	eglTexFmt   = 0x3080
	eglPreserve = 0x30D2 // EGL_IMAGE_PRESERVED_KHR

	eglWaylandBufferWL    = 0x31D5
	eglWaylandPlaneWL     = 0x31D6
	eglWaylandYInvertedWL = 0x31DB

	eglLinuxDMABUF    = 0x3270
	eglLinuxDRMFourcc = 0x3271

	glDebugSourceApplication = 0x824A

	// formatModLinear is DRM_FORMAT_MOD_LINEAR.
	formatModLinear uint64 = 0
)

// planeAttrib holds the per-plane EGL_DMA_BUF_PLANEn_* enums.
type planeAttrib struct {
	fd, offset, pitch, modLo, modHi int32
}

var planeAttribs = [glestex.MaxDMABUFPlanes]planeAttrib{
	{0x3272, 0x3273, 0x3274, 0x3443, 0x3444},
	{0x3275, 0x3276, 0x3277, 0x3445, 0x3446},
	{0x3278, 0x3279, 0x327A, 0x3447, 0x3448},
	{0x3440, 0x3441, 0x3442, 0x3449, 0x344A},
}

// explicitModifier reports whether the modifier must be passed to EGL.
// Implicit and linear layouts are imported without modifier attributes.
func explicitModifier(mod uint64) bool {
	return mod != glestex.FormatModInvalid && mod != formatModLinear
}

// dmabufAttribList builds the EGL_NONE terminated attribute list for
// eglCreateImageKHR(EGL_LINUX_DMA_BUF_EXT).
func dmabufAttribList(a *glestex.DMABUFAttributes, withModifier bool) []int32 {
	list := make([]int32, 0, 7+a.NPlanes*10+3)
	list = append(list,
		eglWidth, int32(a.Width),
		eglHeight, int32(a.Height),
		eglLinuxDRMFourcc, int32(a.Format),
	)
	for i := 0; i < a.NPlanes; i++ {
		p := planeAttribs[i]
		list = append(list,
			p.fd, int32(a.FD[i]),
			p.offset, int32(a.Offset[i]),
			p.pitch, int32(a.Stride[i]),
		)
		if withModifier {
			list = append(list,
				p.modLo, int32(uint32(a.Modifier&0xFFFFFFFF)),
				p.modHi, int32(uint32(a.Modifier>>32)),
			)
		}
	}
	return append(list, eglPreserve, eglTrue, eglNone)
}

// wldrmAttribList selects plane 0 of a wl_drm buffer.
func wldrmAttribList() []int32 {
	return []int32{eglWaylandPlaneWL, 0, eglNone}
}

// externalOnlyFor reports whether mod must be sampled through
// GL_TEXTURE_EXTERNAL_OES according to a modifier query. Modifiers the
// query did not list are assumed to support GL_TEXTURE_2D.
func externalOnlyFor(mod uint64, mods []uint64, externalOnly []bool) bool {
	for i, m := range mods {
		if m == mod && i < len(externalOnly) {
			return externalOnly[i]
		}
	}
	return false
}
