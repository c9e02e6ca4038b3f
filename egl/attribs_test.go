package egl

import (
	"slices"
	"testing"

	"github.com/gogpu/glestex"
)

func TestDMABUFAttribList(t *testing.T) {
	a := &glestex.DMABUFAttributes{
		Width:    64,
		Height:   32,
		Format:   glestex.FormatXRGB8888,
		Modifier: 0x0100000000000002,
		NPlanes:  1,
		Offset:   [glestex.MaxDMABUFPlanes]uint32{16},
		Stride:   [glestex.MaxDMABUFPlanes]uint32{256},
		FD:       [glestex.MaxDMABUFPlanes]int{7, -1, -1, -1},
	}

	got := dmabufAttribList(a, false)
	want := []int32{
		eglWidth, 64,
		eglHeight, 32,
		eglLinuxDRMFourcc, int32(glestex.FormatXRGB8888),
		0x3272, 7, 0x3273, 16, 0x3274, 256,
		eglPreserve, eglTrue, eglNone,
	}
	if !slices.Equal(got, want) {
		t.Errorf("dmabufAttribList(no modifier) = %#x, want %#x", got, want)
	}

	got = dmabufAttribList(a, true)
	want = []int32{
		eglWidth, 64,
		eglHeight, 32,
		eglLinuxDRMFourcc, int32(glestex.FormatXRGB8888),
		0x3272, 7, 0x3273, 16, 0x3274, 256, 0x3443, 2, 0x3444, 0x01000000,
		eglPreserve, eglTrue, eglNone,
	}
	if !slices.Equal(got, want) {
		t.Errorf("dmabufAttribList(modifier) = %#x, want %#x", got, want)
	}
}

func TestDMABUFAttribListPlanes(t *testing.T) {
	a := &glestex.DMABUFAttributes{
		Width:    16,
		Height:   16,
		Format:   glestex.FormatARGB8888,
		Modifier: glestex.FormatModInvalid,
		NPlanes:  4,
		FD:       [glestex.MaxDMABUFPlanes]int{3, 4, 5, 6},
	}

	got := dmabufAttribList(a, false)
	if len(got) != 6+4*6+3 {
		t.Fatalf("len = %d, want %d", len(got), 6+4*6+3)
	}
	if got[len(got)-1] != eglNone {
		t.Error("list is not EGL_NONE terminated")
	}
	for i, fdAttr := range []int32{0x3272, 0x3275, 0x3278, 0x3440} {
		idx := slices.Index(got, fdAttr)
		if idx < 0 || got[idx+1] != int32(3+i) {
			t.Errorf("plane %d fd attribute missing or wrong in %#x", i, got)
		}
	}
}

func TestExplicitModifier(t *testing.T) {
	tests := []struct {
		mod  uint64
		want bool
	}{
		{glestex.FormatModInvalid, false},
		{formatModLinear, false},
		{0x0100000000000001, true},
	}
	for _, tt := range tests {
		if got := explicitModifier(tt.mod); got != tt.want {
			t.Errorf("explicitModifier(%#x) = %v, want %v", tt.mod, got, tt.want)
		}
	}
}

func TestExternalOnlyFor(t *testing.T) {
	mods := []uint64{1, 2, 3}
	ext := []bool{false, true, false}

	if !externalOnlyFor(2, mods, ext) {
		t.Error("modifier 2 should be external only")
	}
	if externalOnlyFor(3, mods, ext) {
		t.Error("modifier 3 should support GL_TEXTURE_2D")
	}
	if externalOnlyFor(9, mods, ext) {
		t.Error("unlisted modifier should default to GL_TEXTURE_2D")
	}
	if externalOnlyFor(1, nil, nil) {
		t.Error("empty query should default to GL_TEXTURE_2D")
	}
}

func TestWLDRMAttribList(t *testing.T) {
	if got := wldrmAttribList(); !slices.Equal(got, []int32{eglWaylandPlaneWL, 0, eglNone}) {
		t.Errorf("wldrmAttribList() = %#x", got)
	}
}
