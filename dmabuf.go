package glestex

import "github.com/cockroachdb/errors"

// MaxDMABUFPlanes is the maximum number of planes in a DMA-BUF.
const MaxDMABUFPlanes = 4

// FormatModInvalid is DRM_FORMAT_MOD_INVALID: the buffer has an implicit
// modifier.
const FormatModInvalid uint64 = 0x00ffffffffffffff

// DMABUFFlags are per-buffer flags from the linux-dmabuf protocol.
type DMABUFFlags uint32

// DMA-BUF buffer flags.
const (
	DMABUFFlagYInvert     DMABUFFlags = 1 << 0
	DMABUFFlagInterlaced  DMABUFFlags = 1 << 1
	DMABUFFlagBottomFirst DMABUFFlags = 1 << 2
)

// DMABUFAttributes describes a cross-process buffer as received from the
// linux-dmabuf protocol layer. The plane file descriptors are owned by the
// attributes; Finish closes them.
type DMABUFAttributes struct {
	Width    int
	Height   int
	Format   Format
	Modifier uint64
	Flags    DMABUFFlags

	NPlanes int
	Offset  [MaxDMABUFPlanes]uint32
	Stride  [MaxDMABUFPlanes]uint32
	FD      [MaxDMABUFPlanes]int
}

// InvertedY reports whether rows are stored bottom-up.
func (a *DMABUFAttributes) InvertedY() bool {
	return a.Flags&DMABUFFlagYInvert != 0
}

// Validate checks the description before it is handed to the driver.
func (a *DMABUFAttributes) Validate() error {
	if a.Width <= 0 || a.Height <= 0 || !fitsGLInt(a.Width, a.Height) {
		return errors.Wrapf(ErrInvalidDMABUF, "dimensions %dx%d", a.Width, a.Height)
	}
	if a.NPlanes < 1 || a.NPlanes > MaxDMABUFPlanes {
		return errors.Wrapf(ErrInvalidDMABUF, "%d planes", a.NPlanes)
	}
	if a.Format == FormatInvalid {
		return errors.Wrap(ErrInvalidDMABUF, "invalid format")
	}
	for i := 0; i < a.NPlanes; i++ {
		if a.FD[i] < 0 {
			return errors.Wrapf(ErrInvalidDMABUF, "plane %d has no file descriptor", i)
		}
		if !fitsGLInt(a.FD[i]) || a.Offset[i] > maxGLInt || a.Stride[i] > maxGLInt {
			return errors.Wrapf(ErrInvalidDMABUF, "plane %d fd %d offset %d stride %d out of range",
				i, a.FD[i], a.Offset[i], a.Stride[i])
		}
	}
	return nil
}

// Finish closes the plane file descriptors and resets the plane count.
// Errors from individual closes are combined.
func (a *DMABUFAttributes) Finish() error {
	var err error
	for i := 0; i < a.NPlanes; i++ {
		if a.FD[i] < 0 {
			continue
		}
		if cerr := closeFD(a.FD[i]); cerr != nil {
			err = errors.CombineErrors(err, errors.Wrapf(cerr, "close plane %d", i))
		}
		a.FD[i] = -1
	}
	a.NPlanes = 0
	return err
}
