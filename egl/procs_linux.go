//go:build linux && !(js && wasm)

package egl

import (
	"runtime"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
	"github.com/gogpu/glestex"
	eglcore "github.com/gogpu/wgpu/hal/gles/egl"
)

// proc is an extension entry point with its prepared call interface.
type proc struct {
	name string
	sym  unsafe.Pointer
	cif  types.CallInterface
}

func (p *proc) loaded() bool { return p.sym != nil }

// call invokes the entry point. args holds pointers to argument values.
func (p *proc) call(rvalue unsafe.Pointer, args []unsafe.Pointer) error {
	if err := ffi.CallFunction(&p.cif, p.sym, rvalue, args); err != nil {
		return errors.Wrapf(err, "call %s", p.name)
	}
	return nil
}

// invoke is call for entry points whose result already signals failure.
// It logs the call error and reports whether the call ran.
func (p *proc) invoke(rvalue unsafe.Pointer, args []unsafe.Pointer) bool {
	if err := p.call(rvalue, args); err != nil {
		glestex.Logger().Warn("egl: foreign call failed", "err", err)
		return false
	}
	return true
}

// procs are the entry points not covered by the wgpu bindings.
type procs struct {
	// libEGL core
	queryString       proc
	getCurrentSurface proc

	// GLES core, resolved through eglGetProcAddress
	glGetString proc

	// extensions
	createImage          proc
	destroyImage         proc
	queryWaylandBuffer   proc
	queryDMABUFModifiers proc
	imageTargetTexture2D proc
	pushDebugGroup       proc
	popDebugGroup        proc
}

var (
	ptrT = types.PointerTypeDescriptor
	u32T = types.UInt32TypeDescriptor
	s32T = types.SInt32TypeDescriptor
)

// loadProcs resolves every entry point. Missing core symbols are an
// error; missing extension symbols leave the proc unloaded and are
// reported through capabilities.
func loadProcs() (*procs, error) {
	lib, err := ffi.LoadLibrary("libEGL.so.1")
	if err != nil {
		if lib, err = ffi.LoadLibrary("libEGL.so"); err != nil {
			return nil, errors.Wrap(err, "load libEGL")
		}
	}

	p := &procs{}
	core := []struct {
		p    *proc
		name string
		ret  *types.TypeDescriptor
		args []*types.TypeDescriptor
	}{
		{&p.queryString, "eglQueryString", ptrT, []*types.TypeDescriptor{ptrT, s32T}},
		{&p.getCurrentSurface, "eglGetCurrentSurface", ptrT, []*types.TypeDescriptor{s32T}},
	}
	for _, c := range core {
		sym, err := ffi.GetSymbol(lib, c.name)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve %s", c.name)
		}
		if err := prepare(c.p, c.name, sym, c.ret, c.args); err != nil {
			return nil, err
		}
	}

	ext := []struct {
		p    *proc
		name string
		ret  *types.TypeDescriptor
		args []*types.TypeDescriptor
	}{
		{&p.glGetString, "glGetString", ptrT, []*types.TypeDescriptor{u32T}},
		{&p.createImage, "eglCreateImageKHR", ptrT, []*types.TypeDescriptor{ptrT, ptrT, u32T, ptrT, ptrT}},
		{&p.destroyImage, "eglDestroyImageKHR", u32T, []*types.TypeDescriptor{ptrT, ptrT}},
		{&p.queryWaylandBuffer, "eglQueryWaylandBufferWL", u32T, []*types.TypeDescriptor{ptrT, ptrT, s32T, ptrT}},
		{&p.queryDMABUFModifiers, "eglQueryDmaBufModifiersEXT", u32T, []*types.TypeDescriptor{ptrT, s32T, s32T, ptrT, ptrT, ptrT}},
		{&p.imageTargetTexture2D, "glEGLImageTargetTexture2DOES", types.VoidTypeDescriptor, []*types.TypeDescriptor{u32T, ptrT}},
		{&p.pushDebugGroup, "glPushDebugGroupKHR", types.VoidTypeDescriptor, []*types.TypeDescriptor{u32T, u32T, s32T, ptrT}},
		{&p.popDebugGroup, "glPopDebugGroupKHR", types.VoidTypeDescriptor, []*types.TypeDescriptor{}},
	}
	for _, e := range ext {
		sym := eglcore.GetGLProcAddress(e.name)
		if sym == nil {
			continue
		}
		if err := prepare(e.p, e.name, sym, e.ret, e.args); err != nil {
			return nil, err
		}
	}
	if !p.glGetString.loaded() {
		return nil, errors.New("resolve glGetString")
	}
	return p, nil
}

func prepare(p *proc, name string, sym unsafe.Pointer, ret *types.TypeDescriptor, args []*types.TypeDescriptor) error {
	if err := ffi.PrepareCallInterface(&p.cif, types.DefaultCall, ret, args); err != nil {
		return errors.Wrapf(err, "prepare %s", name)
	}
	p.name = name
	p.sym = sym
	return nil
}

// available reports which extension entry points were resolved.
func (p *procs) available() procSet {
	return procSet{
		createImage:          p.createImage.loaded(),
		destroyImage:         p.destroyImage.loaded(),
		imageTargetTexture2D: p.imageTargetTexture2D.loaded(),
		queryWaylandBuffer:   p.queryWaylandBuffer.loaded(),
		queryDMABUFModifiers: p.queryDMABUFModifiers.loaded(),
		pushDebugGroup:       p.pushDebugGroup.loaded(),
		popDebugGroup:        p.popDebugGroup.loaded(),
	}
}

// eglQueryString returns the full string; the wgpu helper truncates at 4 KiB.
func (p *procs) eglQueryString(dpy eglcore.EGLDisplay, name eglcore.EGLInt) string {
	var res uintptr
	args := [2]unsafe.Pointer{unsafe.Pointer(&dpy), unsafe.Pointer(&name)}
	if !p.queryString.invoke(unsafe.Pointer(&res), args[:]) {
		return ""
	}
	return cString(res)
}

func (p *procs) glString(name uint32) string {
	var res uintptr
	args := [1]unsafe.Pointer{unsafe.Pointer(&name)}
	if !p.glGetString.invoke(unsafe.Pointer(&res), args[:]) {
		return ""
	}
	return cString(res)
}

func (p *procs) currentSurface(readDraw eglcore.EGLInt) eglcore.EGLSurface {
	var res eglcore.EGLSurface
	args := [1]unsafe.Pointer{unsafe.Pointer(&readDraw)}
	if !p.getCurrentSurface.invoke(unsafe.Pointer(&res), args[:]) {
		return eglcore.NoSurface
	}
	return res
}

func (p *procs) eglCreateImage(dpy eglcore.EGLDisplay, ctx eglcore.EGLContext, target uint32, buffer uintptr, attribs []int32) uintptr {
	var res uintptr
	attribPtr := uintptr(unsafe.Pointer(&attribs[0]))
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&dpy),
		unsafe.Pointer(&ctx),
		unsafe.Pointer(&target),
		unsafe.Pointer(&buffer),
		unsafe.Pointer(&attribPtr),
	}
	ok := p.createImage.invoke(unsafe.Pointer(&res), args[:])
	runtime.KeepAlive(attribs)
	if !ok {
		return 0
	}
	return res
}

func (p *procs) eglDestroyImage(dpy eglcore.EGLDisplay, img uintptr) bool {
	var res eglcore.EGLBoolean
	args := [2]unsafe.Pointer{unsafe.Pointer(&dpy), unsafe.Pointer(&img)}
	if !p.destroyImage.invoke(unsafe.Pointer(&res), args[:]) {
		return false
	}
	return res != eglcore.False
}

func (p *procs) eglQueryWaylandBuffer(dpy eglcore.EGLDisplay, buffer uintptr, attr eglcore.EGLInt) (eglcore.EGLInt, bool) {
	var value eglcore.EGLInt
	var res eglcore.EGLBoolean
	valuePtr := uintptr(unsafe.Pointer(&value))
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&dpy),
		unsafe.Pointer(&buffer),
		unsafe.Pointer(&attr),
		unsafe.Pointer(&valuePtr),
	}
	ok := p.queryWaylandBuffer.invoke(unsafe.Pointer(&res), args[:])
	runtime.KeepAlive(&value)
	return value, ok && res != eglcore.False
}

// eglQueryDMABUFModifiers follows the two-call pattern: a first call with
// max 0 sizes the result.
func (p *procs) eglQueryDMABUFModifiers(dpy eglcore.EGLDisplay, format eglcore.EGLInt) ([]uint64, []bool, bool) {
	var num eglcore.EGLInt
	if !p.queryModifiers(dpy, format, 0, nil, nil, &num) {
		return nil, nil, false
	}
	if num <= 0 {
		return nil, nil, true
	}
	mods := make([]uint64, num)
	ext := make([]eglcore.EGLBoolean, num)
	if !p.queryModifiers(dpy, format, num, &mods[0], &ext[0], &num) {
		return nil, nil, false
	}
	externalOnly := make([]bool, num)
	for i := range externalOnly {
		externalOnly[i] = ext[i] != eglcore.False
	}
	return mods[:num], externalOnly, true
}

func (p *procs) queryModifiers(dpy eglcore.EGLDisplay, format, capacity eglcore.EGLInt, mods *uint64, ext *eglcore.EGLBoolean, num *eglcore.EGLInt) bool {
	var res eglcore.EGLBoolean
	modsPtr := uintptr(unsafe.Pointer(mods))
	extPtr := uintptr(unsafe.Pointer(ext))
	numPtr := uintptr(unsafe.Pointer(num))
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&dpy),
		unsafe.Pointer(&format),
		unsafe.Pointer(&capacity),
		unsafe.Pointer(&modsPtr),
		unsafe.Pointer(&extPtr),
		unsafe.Pointer(&numPtr),
	}
	ok := p.queryDMABUFModifiers.invoke(unsafe.Pointer(&res), args[:])
	runtime.KeepAlive(mods)
	runtime.KeepAlive(ext)
	runtime.KeepAlive(num)
	return ok && res != eglcore.False
}

func (p *procs) glImageTargetTexture2D(target uint32, img uintptr) error {
	args := [2]unsafe.Pointer{unsafe.Pointer(&target), unsafe.Pointer(&img)}
	return p.imageTargetTexture2D.call(nil, args[:])
}

func (p *procs) glPushDebugGroup(label string) error {
	msg := append([]byte(label), 0)
	source := uint32(glDebugSourceApplication)
	id := uint32(0)
	length := int32(-1)
	msgPtr := uintptr(unsafe.Pointer(&msg[0]))
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&source),
		unsafe.Pointer(&id),
		unsafe.Pointer(&length),
		unsafe.Pointer(&msgPtr),
	}
	err := p.pushDebugGroup.call(nil, args[:])
	runtime.KeepAlive(msg)
	return err
}

func (p *procs) glPopDebugGroup() error {
	return p.popDebugGroup.call(nil, nil)
}

// cString copies a NUL-terminated C string.
func cString(addr uintptr) string {
	if addr == 0 {
		return ""
	}
	base := unsafe.Pointer(addr) //nolint:govet // C string address returned by the driver
	n := 0
	for *(*byte)(unsafe.Add(base, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(base), n))
}
