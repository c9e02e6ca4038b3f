package glestex

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gpucontext"
)

// Renderer owns the GLES2 context textures are created in and hands out
// Textures bound to it.
//
// A Renderer is not safe for concurrent use. Callers serialize every
// operation on a renderer and on its textures, typically by driving them
// from the compositor's event loop. Stats may be read from any goroutine.
type Renderer struct {
	drv     Driver
	caps    Capabilities
	formats *FormatTable
	markers DebugMarker
	stats   counters
}

// NewRenderer creates a Renderer on top of drv. Driver capabilities are
// probed once here.
func NewRenderer(drv Driver, opts ...Option) (*Renderer, error) {
	if drv == nil {
		return nil, ErrNilDriver
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Renderer{
		drv:     drv,
		caps:    drv.Capabilities(),
		formats: o.formats,
	}
	if m, ok := drv.(DebugMarker); ok && o.debugMarkers && r.caps.DebugMarkers {
		r.markers = m
	}

	slogger().Info("glestex: renderer created",
		"image_target", r.caps.ImageTarget,
		"wayland_buffer", r.caps.WaylandBuffer,
		"dmabuf_import", r.caps.DMABUFImport,
		"dmabuf_modifiers", r.caps.DMABUFModifiers,
		"debug_markers", r.markers != nil,
		"formats", len(r.formats.byFormat))
	return r, nil
}

// Capabilities returns the driver capabilities probed at creation.
func (r *Renderer) Capabilities() Capabilities {
	return r.caps
}

// Formats returns the format table used to resolve pixel formats.
func (r *Renderer) Formats() *FormatTable {
	return r.formats
}

// Driver returns the driver the renderer was created with.
func (r *Renderer) Driver() Driver {
	return r.drv
}

// Stats returns a snapshot of the renderer's texture resources.
// Safe for concurrent use.
func (r *Renderer) Stats() Stats {
	return r.stats.snapshot()
}

// NewTextureFromRGBA creates a writable texture from tightly packed
// R,G,B,A bytes (DRM ABGR8888).
func (r *Renderer) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	t, err := r.FromPixels(FormatABGR8888, width*4, width, height, data)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// fail records a rejected operation and logs it with its parameters.
func (r *Renderer) fail(op string, err error, args ...any) error {
	r.stats.failed.Add(1)
	slogger().Error("glestex: "+op+" failed", append(args, "err", err)...)
	return err
}

// requireImageTarget fails with ErrCapabilityMissing unless the driver can
// bind EGL images to textures.
func (r *Renderer) requireImageTarget(op string) error {
	if !r.caps.ImageTarget {
		return errors.Wrapf(ErrCapabilityMissing, "%s: glEGLImageTargetTexture2DOES not available", op)
	}
	return nil
}

var _ gpucontext.TextureCreator = (*Renderer)(nil)
