package fakegl

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/glestex"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

// ErrNoContext is returned by MakeCurrent when FailMakeCurrent is set.
var ErrNoContext = errors.New("fakegl: cannot make context current")

// Texture is the fake storage behind a GL texture name.
type Texture struct {
	Name   uint32
	Target glestex.Target
	Width  int
	Height int
	Format uint32
	Type   uint32
	Pixels []byte
	Image  glestex.Image
	Params map[uint32]int32
}

// Pixel returns the bytes of the pixel at (x, y).
func (t *Texture) Pixel(x, y int) []byte {
	bpp := bytesPerPixel(t.Format, t.Type)
	off := (y*t.Width + x) * bpp
	return t.Pixels[off : off+bpp]
}

type imageInfo struct {
	width  int
	height int
	source string
}

type wlBuffer struct {
	format    glestex.ImageFormat
	width     int
	height    int
	invertedY bool
}

// Unpack is the pixel unpack state of the fake context.
type Unpack struct {
	RowLength  int32
	SkipPixels int32
	SkipRows   int32
	Alignment  int32
}

// Driver is an in-memory glestex.Driver.
type Driver struct {
	// Caps is returned by Capabilities.
	Caps glestex.Capabilities
	// Renderer is the binding MakeCurrent installs.
	Renderer glestex.SavedContext

	// FailMakeCurrent makes MakeCurrent fail.
	FailMakeCurrent bool
	// FailGenTexture makes GenTexture return 0.
	FailGenTexture bool
	// FailImport is returned by both image constructors when set.
	FailImport error
	// FailImageTarget is returned by ImageTargetTexture2D when set.
	FailImageTarget error
	// FailDestroyImage is returned by DestroyImage when set.
	FailDestroyImage error
	// ExternalOnly is reported for every DMA-BUF import.
	ExternalOnly bool

	current glestex.SavedContext

	nextName  uint32
	textures  map[uint32]*Texture
	bound     map[glestex.Target]uint32
	nextImage glestex.Image
	images    map[glestex.Image]imageInfo
	nextBuf   glestex.WLBuffer
	buffers   map[glestex.WLBuffer]wlBuffer
	unpack    Unpack

	calls      []string
	violations int
	depth      int
	labels     []string
}

// New returns a driver reporting every capability, with nothing current.
func New() *Driver {
	return &Driver{
		Caps: glestex.Capabilities{
			ImageTarget:     true,
			WaylandBuffer:   true,
			DMABUFImport:    true,
			DMABUFModifiers: true,
			DebugMarkers:    true,
		},
		Renderer: glestex.SavedContext{Display: 0x10, Draw: 0x20, Read: 0x20, Context: 0x30},
		textures: make(map[uint32]*Texture),
		bound:    make(map[glestex.Target]uint32),
		images:   make(map[glestex.Image]imageInfo),
		buffers:  make(map[glestex.WLBuffer]wlBuffer),
		unpack:   Unpack{Alignment: 4},
	}
}

func (d *Driver) record(call string) {
	d.calls = append(d.calls, call)
}

// glCall records a call that requires the renderer context.
func (d *Driver) glCall(call string) {
	d.record(call)
	if d.current != d.Renderer {
		d.violations++
	}
}

// SetCurrent changes what the calling "thread" has current, as another
// user of EGL would.
func (d *Driver) SetCurrent(c glestex.SavedContext) { d.current = c }

// Current returns what is current.
func (d *Driver) Current() glestex.SavedContext { return d.current }

// Calls returns the driver calls made so far, by method name.
func (d *Driver) Calls() []string { return append([]string(nil), d.calls...) }

// ResetCalls clears the call log.
func (d *Driver) ResetCalls() { d.calls = nil }

// Violations returns the number of GL calls made while the renderer
// context was not current.
func (d *Driver) Violations() int { return d.violations }

// LiveTextures returns the number of texture names not deleted.
func (d *Driver) LiveTextures() int { return len(d.textures) }

// LiveImages returns the number of images not destroyed.
func (d *Driver) LiveImages() int { return len(d.images) }

// Texture returns the storage behind name.
func (d *Driver) Texture(name uint32) (*Texture, bool) {
	t, ok := d.textures[name]
	return t, ok
}

// Unpack returns the current pixel unpack state.
func (d *Driver) Unpack() Unpack { return d.unpack }

// Bound returns the texture bound to target.
func (d *Driver) Bound(target glestex.Target) uint32 { return d.bound[target] }

// DebugDepth returns the number of open debug groups.
func (d *Driver) DebugDepth() int { return d.depth }

// Labels returns every debug group label pushed so far.
func (d *Driver) Labels() []string { return append([]string(nil), d.labels...) }

// AddWLBuffer registers a wl_drm buffer the driver can import.
func (d *Driver) AddWLBuffer(format glestex.ImageFormat, width, height int, invertedY bool) glestex.WLBuffer {
	d.nextBuf++
	d.buffers[d.nextBuf] = wlBuffer{format: format, width: width, height: height, invertedY: invertedY}
	return d.nextBuf
}

// SaveCurrent implements glestex.ContextSwitcher.
func (d *Driver) SaveCurrent() glestex.SavedContext {
	d.record("SaveCurrent")
	return d.current
}

// MakeCurrent implements glestex.ContextSwitcher.
func (d *Driver) MakeCurrent() error {
	d.record("MakeCurrent")
	if d.FailMakeCurrent {
		return ErrNoContext
	}
	d.current = d.Renderer
	return nil
}

// RestoreCurrent implements glestex.ContextSwitcher.
func (d *Driver) RestoreCurrent(c glestex.SavedContext) error {
	d.record("RestoreCurrent")
	d.current = c
	return nil
}

// Capabilities implements glestex.ImageImporter.
func (d *Driver) Capabilities() glestex.Capabilities { return d.Caps }

// GenTexture implements glestex.GL.
func (d *Driver) GenTexture() uint32 {
	d.glCall("GenTexture")
	if d.FailGenTexture {
		return 0
	}
	d.nextName++
	d.textures[d.nextName] = &Texture{Name: d.nextName, Params: make(map[uint32]int32)}
	return d.nextName
}

// DeleteTexture implements glestex.GL. Unknown names are ignored.
func (d *Driver) DeleteTexture(tex uint32) {
	d.glCall("DeleteTexture")
	delete(d.textures, tex)
	for target, name := range d.bound {
		if name == tex {
			d.bound[target] = 0
		}
	}
}

// BindTexture implements glestex.GL.
func (d *Driver) BindTexture(target glestex.Target, tex uint32) {
	d.glCall("BindTexture")
	if t, ok := d.textures[tex]; ok && t.Target == 0 {
		t.Target = target
	}
	d.bound[target] = tex
}

func (d *Driver) boundTexture(target glestex.Target) *Texture {
	t, ok := d.textures[d.bound[target]]
	if !ok {
		panic("fakegl: no texture bound to " + target.String())
	}
	return t
}

// TexParameteri implements glestex.GL.
func (d *Driver) TexParameteri(target glestex.Target, pname uint32, param int32) {
	d.glCall("TexParameteri")
	d.boundTexture(target).Params[pname] = param
}

// PixelStorei implements glestex.GL.
func (d *Driver) PixelStorei(pname uint32, param int32) {
	d.glCall("PixelStorei")
	switch pname {
	case glestex.UnpackRowLength:
		d.unpack.RowLength = param
	case glestex.UnpackSkipPixels:
		d.unpack.SkipPixels = param
	case glestex.UnpackSkipRows:
		d.unpack.SkipRows = param
	case glestex.UnpackAlignment:
		d.unpack.Alignment = param
	default:
		panic("fakegl: unsupported PixelStorei parameter")
	}
}

// TexImage2D implements glestex.GL.
func (d *Driver) TexImage2D(target glestex.Target, internalFormat int32, width, height int, format, typ uint32, pixels []byte) {
	d.glCall("TexImage2D")
	if uint32(internalFormat) != format {
		panic("fakegl: GLES2 requires internal format to match format")
	}
	t := d.boundTexture(target)
	t.Width, t.Height, t.Format, t.Type = width, height, format, typ
	t.Pixels = make([]byte, width*height*bytesPerPixel(format, typ))
	if pixels != nil {
		d.copyIn(t, 0, 0, width, height, pixels)
	}
}

// TexSubImage2D implements glestex.GL.
func (d *Driver) TexSubImage2D(target glestex.Target, x, y, width, height int, format, typ uint32, pixels []byte) {
	d.glCall("TexSubImage2D")
	t := d.boundTexture(target)
	if format != t.Format || typ != t.Type {
		panic("fakegl: TexSubImage2D format does not match texture")
	}
	if x < 0 || y < 0 || x+width > t.Width || y+height > t.Height {
		panic("fakegl: TexSubImage2D region outside texture")
	}
	d.copyIn(t, x, y, width, height, pixels)
}

// copyIn reads a width x height block from pixels the way GL does under
// the current unpack state. Reads past the end of pixels panic.
func (d *Driver) copyIn(t *Texture, x, y, width, height int, pixels []byte) {
	bpp := bytesPerPixel(t.Format, t.Type)
	rowLength := int(d.unpack.RowLength)
	if rowLength == 0 {
		rowLength = width
	}
	align := int(d.unpack.Alignment)
	rowBytes := (rowLength*bpp + align - 1) / align * align
	start := int(d.unpack.SkipRows)*rowBytes + int(d.unpack.SkipPixels)*bpp

	for row := 0; row < height; row++ {
		src := pixels[start+row*rowBytes : start+row*rowBytes+width*bpp]
		dst := ((y+row)*t.Width + x) * bpp
		copy(t.Pixels[dst:dst+width*bpp], src)
	}
}

// CreateImageFromWLDRM implements glestex.ImageImporter.
func (d *Driver) CreateImageFromWLDRM(buf glestex.WLBuffer) (glestex.WLDRMImage, error) {
	d.record("CreateImageFromWLDRM")
	if d.FailImport != nil {
		return glestex.WLDRMImage{}, d.FailImport
	}
	b, ok := d.buffers[buf]
	if !ok {
		return glestex.WLDRMImage{}, errors.Newf("fakegl: unknown wl_drm buffer %d", buf)
	}
	img := d.newImage(b.width, b.height, "wl_drm")
	return glestex.WLDRMImage{
		Image:     img,
		Format:    b.format,
		Width:     b.width,
		Height:    b.height,
		InvertedY: b.invertedY,
	}, nil
}

// CreateImageFromDMABUF implements glestex.ImageImporter.
func (d *Driver) CreateImageFromDMABUF(attrs *glestex.DMABUFAttributes) (glestex.Image, bool, error) {
	d.record("CreateImageFromDMABUF")
	if d.FailImport != nil {
		return glestex.NoImage, false, d.FailImport
	}
	return d.newImage(attrs.Width, attrs.Height, "dmabuf"), d.ExternalOnly, nil
}

func (d *Driver) newImage(width, height int, source string) glestex.Image {
	d.nextImage++
	d.images[d.nextImage] = imageInfo{width: width, height: height, source: source}
	return d.nextImage
}

// ImageTargetTexture2D implements glestex.ImageImporter.
func (d *Driver) ImageTargetTexture2D(target glestex.Target, img glestex.Image) error {
	d.glCall("ImageTargetTexture2D")
	if d.FailImageTarget != nil {
		return d.FailImageTarget
	}
	info, ok := d.images[img]
	if !ok {
		panic("fakegl: ImageTargetTexture2D with unknown image")
	}
	t := d.boundTexture(target)
	t.Image = img
	t.Width, t.Height = info.width, info.height
	return nil
}

// DestroyImage implements glestex.ImageImporter.
func (d *Driver) DestroyImage(img glestex.Image) error {
	d.record("DestroyImage")
	if _, ok := d.images[img]; !ok {
		return errors.Newf("fakegl: unknown image %d", img)
	}
	delete(d.images, img)
	return d.FailDestroyImage
}

// PushDebugGroup implements glestex.DebugMarker.
func (d *Driver) PushDebugGroup(label string) {
	d.glCall("PushDebugGroup")
	d.depth++
	d.labels = append(d.labels, label)
}

// PopDebugGroup implements glestex.DebugMarker.
func (d *Driver) PopDebugGroup() {
	d.glCall("PopDebugGroup")
	if d.depth == 0 {
		panic("fakegl: PopDebugGroup without matching push")
	}
	d.depth--
}

func bytesPerPixel(format, typ uint32) int {
	switch typ {
	case gl.UNSIGNED_BYTE:
		if format == gl.RGB {
			return 3
		}
		return 4
	case 0x8033, 0x8034, 0x8363: // 4444, 5551, 565
		return 2
	case 0x8368: // UNSIGNED_INT_2_10_10_10_REV
		return 4
	case 0x8D61: // HALF_FLOAT_OES
		if format == gl.RGB {
			return 6
		}
		return 8
	default:
		panic("fakegl: unsupported pixel type")
	}
}

var (
	_ glestex.Driver      = (*Driver)(nil)
	_ glestex.DebugMarker = (*Driver)(nil)
)
