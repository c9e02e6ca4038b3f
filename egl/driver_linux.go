//go:build linux && !(js && wasm)

package egl

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/glestex"
	eglcore "github.com/gogpu/wgpu/hal/gles/egl"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

var (
	initOnce sync.Once
	initErr  error
)

// initEGL loads libEGL once per process.
func initEGL() error {
	initOnce.Do(func() {
		initErr = eglcore.Init()
	})
	return initErr
}

// Config selects the GLES context created by New.
type Config struct {
	GLVersionMajor int
	GLVersionMinor int
	// Debug requests an EGL debug context.
	Debug bool
}

// DefaultConfig returns a GLES 2.0 configuration.
func DefaultConfig() Config {
	return Config{GLVersionMajor: 2, GLVersionMinor: 0}
}

// Driver drives an EGL display and GLES2 context.
type Driver struct {
	display eglcore.EGLDisplay
	draw    eglcore.EGLSurface
	read    eglcore.EGLSurface
	context eglcore.EGLContext

	// owned is set when the context was created by New.
	owned *eglcore.Context

	gl       *gl.Context
	procs    *procs
	caps     glestex.Capabilities
	renderer string
	version  string

	mu        sync.Mutex
	modifiers map[glestex.Format]modifierQuery
}

type modifierQuery struct {
	mods         []uint64
	externalOnly []bool
}

// New creates a private GLES context on the default EGL display.
func New(cfg Config) (*Driver, error) {
	if err := initEGL(); err != nil {
		return nil, errors.Wrap(err, "egl: init")
	}
	ctx, err := eglcore.NewContext(eglcore.ContextConfig{
		GLVersionMajor: cfg.GLVersionMajor,
		GLVersionMinor: cfg.GLVersionMinor,
		Debug:          cfg.Debug,
		GLES:           true,
		Surfaceless:    true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "egl: create context")
	}
	d, err := newDriver(ctx.Display(), ctx.Pbuffer(), ctx.Pbuffer(), ctx.EGLContext())
	if err != nil {
		ctx.Destroy()
		return nil, err
	}
	d.owned = ctx
	return d, nil
}

// Wrap drives an existing EGL context. draw and read may be zero for a
// surfaceless context. The caller keeps ownership of every handle.
func Wrap(display, draw, read, context uintptr) (*Driver, error) {
	if err := initEGL(); err != nil {
		return nil, errors.Wrap(err, "egl: init")
	}
	if display == 0 || context == 0 {
		return nil, errors.New("egl: wrap requires a display and a context")
	}
	return newDriver(
		eglcore.EGLDisplay(display),
		eglcore.EGLSurface(draw),
		eglcore.EGLSurface(read),
		eglcore.EGLContext(context),
	)
}

func newDriver(display eglcore.EGLDisplay, draw, read eglcore.EGLSurface, context eglcore.EGLContext) (*Driver, error) {
	p, err := loadProcs()
	if err != nil {
		return nil, errors.Wrap(err, "egl: load entry points")
	}
	d := &Driver{
		display:   display,
		draw:      draw,
		read:      read,
		context:   context,
		procs:     p,
		modifiers: make(map[glestex.Format]modifierQuery),
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	saved := d.SaveCurrent()
	if err := d.MakeCurrent(); err != nil {
		return nil, err
	}
	defer func() {
		if err := d.RestoreCurrent(saved); err != nil {
			glestex.Logger().Warn("egl: restore context after probe", "err", err)
		}
	}()

	d.gl = &gl.Context{}
	if err := d.gl.Load(eglcore.GetGLProcAddress); err != nil {
		return nil, errors.Wrap(err, "egl: load GL functions")
	}

	eglExts := parseExtensions(p.eglQueryString(display, eglcore.Extensions))
	glExts := parseExtensions(p.glString(gl.EXTENSIONS))
	d.caps = probeCapabilities(eglExts, glExts, p.available())
	d.renderer = p.glString(gl.RENDERER)
	d.version = p.glString(gl.VERSION)

	log := glestex.Logger()
	if !glExts.has(extUnpackSubimage) {
		log.Warn("egl: GL_EXT_unpack_subimage missing, padded uploads will be rejected by the driver")
	}
	if d.caps.ImageTarget && !glExts.has(extOESEGLImageExt) {
		log.Warn("egl: GL_OES_EGL_image_external missing, external-only buffers cannot be sampled")
	}
	log.Info("egl: driver ready",
		"renderer", d.renderer,
		"version", d.version,
		"image_target", d.caps.ImageTarget,
		"wl_drm", d.caps.WaylandBuffer,
		"dmabuf", d.caps.DMABUFImport,
		"dmabuf_modifiers", d.caps.DMABUFModifiers,
		"debug_markers", d.caps.DebugMarkers,
	)
	return d, nil
}

// Close destroys the context if it was created by New.
func (d *Driver) Close() {
	if d.owned != nil {
		d.owned.Destroy()
		d.owned = nil
	}
}

// Renderer returns the GL_RENDERER string.
func (d *Driver) Renderer() string { return d.renderer }

// Version returns the GL_VERSION string.
func (d *Driver) Version() string { return d.version }

// Capabilities implements glestex.ImageImporter.
func (d *Driver) Capabilities() glestex.Capabilities { return d.caps }

// SaveCurrent implements glestex.ContextSwitcher.
func (d *Driver) SaveCurrent() glestex.SavedContext {
	return glestex.SavedContext{
		Display: uintptr(eglcore.GetCurrentDisplay()),
		Draw:    uintptr(d.procs.currentSurface(eglDraw)),
		Read:    uintptr(d.procs.currentSurface(eglRead)),
		Context: uintptr(eglcore.GetCurrentContext()),
	}
}

// MakeCurrent implements glestex.ContextSwitcher.
func (d *Driver) MakeCurrent() error {
	if eglcore.MakeCurrent(d.display, d.draw, d.read, d.context) == eglcore.False {
		return errors.Newf("eglMakeCurrent: error 0x%x", eglcore.GetError())
	}
	return nil
}

// RestoreCurrent implements glestex.ContextSwitcher. A snapshot taken with
// nothing current unbinds the renderer context.
func (d *Driver) RestoreCurrent(s glestex.SavedContext) error {
	display := eglcore.EGLDisplay(s.Display)
	if display == eglcore.NoDisplay {
		display = d.display
	}
	ok := eglcore.MakeCurrent(display,
		eglcore.EGLSurface(s.Draw),
		eglcore.EGLSurface(s.Read),
		eglcore.EGLContext(s.Context),
	)
	if ok == eglcore.False {
		return errors.Newf("eglMakeCurrent(restore): error 0x%x", eglcore.GetError())
	}
	return nil
}

// GenTexture implements glestex.GL.
func (d *Driver) GenTexture() uint32 { return d.gl.GenTextures(1) }

// DeleteTexture implements glestex.GL.
func (d *Driver) DeleteTexture(tex uint32) { d.gl.DeleteTextures(tex) }

// BindTexture implements glestex.GL.
func (d *Driver) BindTexture(target glestex.Target, tex uint32) {
	d.gl.BindTexture(uint32(target), tex)
}

// TexParameteri implements glestex.GL.
func (d *Driver) TexParameteri(target glestex.Target, pname uint32, param int32) {
	d.gl.TexParameteri(uint32(target), pname, param)
}

// PixelStorei implements glestex.GL.
func (d *Driver) PixelStorei(pname uint32, param int32) { d.gl.PixelStorei(pname, param) }

// TexImage2D implements glestex.GL.
func (d *Driver) TexImage2D(target glestex.Target, internalFormat int32, width, height int, format, typ uint32, pixels []byte) {
	d.gl.TexImage2D(uint32(target), 0, internalFormat, int32(width), int32(height), 0, format, typ, bytesAddr(pixels))
	runtime.KeepAlive(pixels)
}

// TexSubImage2D implements glestex.GL.
func (d *Driver) TexSubImage2D(target glestex.Target, x, y, width, height int, format, typ uint32, pixels []byte) {
	d.gl.TexSubImage2D(uint32(target), 0, int32(x), int32(y), int32(width), int32(height), format, typ, bytesAddr(pixels))
	runtime.KeepAlive(pixels)
}

func bytesAddr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

// CreateImageFromWLDRM implements glestex.ImageImporter.
func (d *Driver) CreateImageFromWLDRM(buf glestex.WLBuffer) (glestex.WLDRMImage, error) {
	if !d.caps.WaylandBuffer {
		return glestex.WLDRMImage{}, errors.Mark(
			errors.New("egl: eglQueryWaylandBufferWL unavailable"), glestex.ErrCapabilityMissing)
	}
	query := func(attr eglcore.EGLInt) (eglcore.EGLInt, error) {
		v, ok := d.procs.eglQueryWaylandBuffer(d.display, uintptr(buf), attr)
		if !ok {
			return 0, errors.Newf("eglQueryWaylandBufferWL(0x%x): error 0x%x", int32(attr), eglcore.GetError())
		}
		return v, nil
	}

	format, err := query(eglTexFmt)
	if err != nil {
		return glestex.WLDRMImage{}, err
	}
	width, err := query(eglWidth)
	if err != nil {
		return glestex.WLDRMImage{}, err
	}
	height, err := query(eglHeight)
	if err != nil {
		return glestex.WLDRMImage{}, err
	}
	inverted, ok := d.procs.eglQueryWaylandBuffer(d.display, uintptr(buf), eglWaylandYInvertedWL)
	if !ok {
		inverted = 0
	}

	img := d.procs.eglCreateImage(d.display, d.context, eglWaylandBufferWL, uintptr(buf), wldrmAttribList())
	if img == 0 {
		return glestex.WLDRMImage{}, errors.Newf("eglCreateImageKHR(wl_drm): error 0x%x", eglcore.GetError())
	}
	return glestex.WLDRMImage{
		Image:     glestex.Image(img),
		Format:    glestex.ImageFormat(format),
		Width:     int(width),
		Height:    int(height),
		InvertedY: inverted != 0,
	}, nil
}

// CreateImageFromDMABUF implements glestex.ImageImporter.
func (d *Driver) CreateImageFromDMABUF(attrs *glestex.DMABUFAttributes) (glestex.Image, bool, error) {
	if !d.caps.DMABUFImport {
		return glestex.NoImage, false, errors.Mark(
			errors.New("egl: EGL_EXT_image_dma_buf_import unavailable"), glestex.ErrCapabilityMissing)
	}
	withModifier := explicitModifier(attrs.Modifier)
	if withModifier && !d.caps.DMABUFModifiers {
		return glestex.NoImage, false, errors.Mark(
			errors.Newf("egl: modifier 0x%x requires EGL_EXT_image_dma_buf_import_modifiers", attrs.Modifier),
			glestex.ErrCapabilityMissing)
	}

	img := d.procs.eglCreateImage(d.display, eglcore.NoContext, eglLinuxDMABUF, 0, dmabufAttribList(attrs, withModifier))
	if img == 0 {
		return glestex.NoImage, false, errors.Newf("eglCreateImageKHR(dmabuf %s): error 0x%x",
			attrs.Format, eglcore.GetError())
	}

	externalOnly := false
	if withModifier {
		q := d.queryModifiers(attrs.Format)
		externalOnly = externalOnlyFor(attrs.Modifier, q.mods, q.externalOnly)
	}
	return glestex.Image(img), externalOnly, nil
}

// queryModifiers caches the modifier list of a format.
func (d *Driver) queryModifiers(format glestex.Format) modifierQuery {
	d.mu.Lock()
	defer d.mu.Unlock()
	if q, ok := d.modifiers[format]; ok {
		return q
	}
	mods, ext, ok := d.procs.eglQueryDMABUFModifiers(d.display, eglcore.EGLInt(format))
	if !ok {
		glestex.Logger().Warn("egl: eglQueryDmaBufModifiersEXT failed",
			"format", format, "err", int32(eglcore.GetError()))
	}
	q := modifierQuery{mods: mods, externalOnly: ext}
	d.modifiers[format] = q
	return q
}

// ImageTargetTexture2D implements glestex.ImageImporter.
func (d *Driver) ImageTargetTexture2D(target glestex.Target, img glestex.Image) error {
	return d.procs.glImageTargetTexture2D(uint32(target), uintptr(img))
}

// DestroyImage implements glestex.ImageImporter.
func (d *Driver) DestroyImage(img glestex.Image) error {
	if img == glestex.NoImage {
		return nil
	}
	if !d.procs.eglDestroyImage(d.display, uintptr(img)) {
		return errors.Newf("eglDestroyImageKHR: error 0x%x", eglcore.GetError())
	}
	return nil
}

// PushDebugGroup implements glestex.DebugMarker.
func (d *Driver) PushDebugGroup(label string) {
	if !d.caps.DebugMarkers {
		return
	}
	if err := d.procs.glPushDebugGroup(label); err != nil {
		glestex.Logger().Warn("egl: debug group push failed", "label", label, "err", err)
	}
}

// PopDebugGroup implements glestex.DebugMarker.
func (d *Driver) PopDebugGroup() {
	if !d.caps.DebugMarkers {
		return
	}
	if err := d.procs.glPopDebugGroup(); err != nil {
		glestex.Logger().Warn("egl: debug group pop failed", "err", err)
	}
}

var (
	_ glestex.Driver      = (*Driver)(nil)
	_ glestex.DebugMarker = (*Driver)(nil)
)
