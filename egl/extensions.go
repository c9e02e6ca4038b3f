package egl

import (
	"strings"

	"github.com/gogpu/glestex"
)

// Extension names the driver depends on.
const (
	extImageBase          = "EGL_KHR_image_base"
	extBindWaylandDisplay = "EGL_WL_bind_wayland_display"
	extDMABUFImport       = "EGL_EXT_image_dma_buf_import"
	extDMABUFModifiers    = "EGL_EXT_image_dma_buf_import_modifiers"
	extOESEGLImage        = "GL_OES_EGL_image"
	extOESEGLImageExt     = "GL_OES_EGL_image_external"
	extKHRDebug           = "GL_KHR_debug"
	extUnpackSubimage     = "GL_EXT_unpack_subimage"
)

// extensionSet is a parsed, space separated extension string.
type extensionSet map[string]struct{}

func parseExtensions(s string) extensionSet {
	set := make(extensionSet)
	for _, name := range strings.Fields(s) {
		set[name] = struct{}{}
	}
	return set
}

func (e extensionSet) has(name string) bool {
	_, ok := e[name]
	return ok
}

// procSet records which extension entry points were resolved.
type procSet struct {
	createImage          bool
	destroyImage         bool
	imageTargetTexture2D bool
	queryWaylandBuffer   bool
	queryDMABUFModifiers bool
	pushDebugGroup       bool
	popDebugGroup        bool
}

// probeCapabilities derives driver capabilities from the advertised
// extensions and the entry points that could actually be resolved.
func probeCapabilities(eglExts, glExts extensionSet, p procSet) glestex.Capabilities {
	images := eglExts.has(extImageBase) && p.createImage && p.destroyImage
	return glestex.Capabilities{
		ImageTarget:     images && glExts.has(extOESEGLImage) && p.imageTargetTexture2D,
		WaylandBuffer:   images && eglExts.has(extBindWaylandDisplay) && p.queryWaylandBuffer,
		DMABUFImport:    images && eglExts.has(extDMABUFImport),
		DMABUFModifiers: eglExts.has(extDMABUFModifiers) && p.queryDMABUFModifiers,
		DebugMarkers:    glExts.has(extKHRDebug) && p.pushDebugGroup && p.popDebugGroup,
	}
}
