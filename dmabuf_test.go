package glestex

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestDMABUFValidate(t *testing.T) {
	valid := func() DMABUFAttributes {
		return DMABUFAttributes{
			Width:    16,
			Height:   16,
			Format:   FormatXRGB8888,
			Modifier: FormatModInvalid,
			NPlanes:  1,
			FD:       [MaxDMABUFPlanes]int{5, -1, -1, -1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*DMABUFAttributes)
		wantErr bool
	}{
		{"valid", func(*DMABUFAttributes) {}, false},
		{"zero width", func(a *DMABUFAttributes) { a.Width = 0 }, true},
		{"negative height", func(a *DMABUFAttributes) { a.Height = -4 }, true},
		{"no planes", func(a *DMABUFAttributes) { a.NPlanes = 0 }, true},
		{"too many planes", func(a *DMABUFAttributes) { a.NPlanes = MaxDMABUFPlanes + 1 }, true},
		{"invalid format", func(a *DMABUFAttributes) { a.Format = FormatInvalid }, true},
		{"missing fd", func(a *DMABUFAttributes) { a.NPlanes = 2 }, true},
		{"two planes", func(a *DMABUFAttributes) {
			a.NPlanes = 2
			a.FD[1] = 6
		}, false},
		{"largest EGLint width", func(a *DMABUFAttributes) { a.Width = maxGLInt }, false},
		{"width past EGLint", func(a *DMABUFAttributes) {
			a.Width = maxGLInt
			a.Width++
		}, true},
		{"height past EGLint", func(a *DMABUFAttributes) {
			a.Height = maxGLInt
			a.Height++
		}, true},
		{"fd past EGLint", func(a *DMABUFAttributes) {
			a.FD[0] = maxGLInt
			a.FD[0]++
		}, true},
		{"offset past EGLint", func(a *DMABUFAttributes) { a.Offset[0] = maxGLInt + 1 }, true},
		{"stride past EGLint", func(a *DMABUFAttributes) { a.Stride[0] = math.MaxUint32 }, true},
		{"unused plane ignored", func(a *DMABUFAttributes) { a.Stride[3] = math.MaxUint32 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid()
			tt.mutate(&a)
			err := a.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidDMABUF) {
				t.Errorf("error %v does not wrap ErrInvalidDMABUF", err)
			}
		})
	}
}

func TestDMABUFInvertedY(t *testing.T) {
	a := DMABUFAttributes{Flags: DMABUFFlagInterlaced}
	if a.InvertedY() {
		t.Error("InvertedY() = true without the y-invert flag")
	}
	a.Flags |= DMABUFFlagYInvert
	if !a.InvertedY() {
		t.Error("InvertedY() = false with the y-invert flag")
	}
}
