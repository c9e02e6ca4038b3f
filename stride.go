package glestex

import (
	"math"
	"math/bits"

	"github.com/cockroachdb/errors"
)

// maxGLInt is the largest size, offset or row length a GLint can carry.
const maxGLInt = math.MaxInt32

// fitsGLInt reports whether every value lies in [0, maxGLInt].
func fitsGLInt(vs ...int) bool {
	for _, v := range vs {
		if v < 0 || int64(v) > maxGLInt {
			return false
		}
	}
	return true
}

// CheckStride reports whether stride is a valid row pitch for width pixels
// of the given format: a multiple of the bytes-per-pixel and at least
// width * bytes-per-pixel. Strides and widths beyond what GL can address
// are rejected.
func CheckStride(info FormatInfo, stride, width int) error {
	bpp := info.BytesPerPixel()
	if bpp <= 0 || stride%bpp != 0 {
		return errors.Wrapf(ErrInvalidStride,
			"stride %d incompatible with %d bytes-per-pixel", stride, bpp)
	}
	if !fitsGLInt(stride) || int64(width) > maxGLInt {
		return errors.Wrapf(ErrInvalidStride,
			"stride %d or width %d out of range", stride, width)
	}
	if int64(stride) < int64(width)*int64(bpp) {
		return errors.Wrapf(ErrInvalidStride,
			"stride %d too small for %d bytes-per-pixel and width %d", stride, bpp, width)
	}
	return nil
}

// checkUploadLength reports whether a buffer of n bytes covers every byte
// an upload of width x height pixels reads, starting srcX pixels and srcY
// rows into a buffer with the given stride.
func checkUploadLength(info FormatInfo, stride, srcX, srcY, width, height, n int) error {
	if !fitsGLInt(stride, srcX, srcY, width, height) {
		return errors.Wrapf(ErrInvalidRegion,
			"upload of %dx%d at (%d,%d) with stride %d out of range", width, height, srcX, srcY, stride)
	}
	need, ok := uploadSize(info, stride, srcX, srcY, width, height)
	if !ok || need > uint64(n) {
		return errors.Wrapf(ErrShortBuffer, "buffer has %d bytes, upload reads %d", n, need)
	}
	return nil
}

// uploadSize returns (srcY+height-1)*stride + (srcX+width)*bpp, and false
// when it does not fit in 64 bits. Arguments must be non-negative.
func uploadSize(info FormatInfo, stride, srcX, srcY, width, height int) (uint64, bool) {
	rows := uint64(srcY) + uint64(height)
	if rows > 0 {
		rows--
	}
	hi, body := bits.Mul64(rows, uint64(stride))
	tailHi, tail := bits.Mul64(uint64(srcX)+uint64(width), uint64(info.BytesPerPixel()))
	sum, carry := bits.Add64(body, tail, 0)
	return sum, hi == 0 && tailHi == 0 && carry == 0
}

// unpackAlignment returns the GL_UNPACK_ALIGNMENT value that makes GL walk
// rows exactly stride bytes apart. Strides that are a multiple of four keep
// the GL default.
func unpackAlignment(stride int) int32 {
	switch {
	case stride%4 == 0:
		return 4
	case stride%2 == 0:
		return 2
	default:
		return 1
	}
}
