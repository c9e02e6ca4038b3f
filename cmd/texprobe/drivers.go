package main

import (
	"github.com/gogpu/glestex"
	"github.com/gogpu/glestex/egl"
	"github.com/gogpu/glestex/internal/fakegl"
	"github.com/gogpu/gpucontext"
)

// opener creates a driver and returns a function releasing it.
type opener func() (glestex.Driver, func(), error)

func openEGL() (glestex.Driver, func(), error) {
	d, err := egl.New(egl.DefaultConfig())
	if err != nil {
		return nil, nil, err
	}
	return d, d.Close, nil
}

func openFake() (glestex.Driver, func(), error) {
	return fakegl.New(), func() {}, nil
}

// drivers lists the available drivers, hardware first.
func drivers() *gpucontext.Registry[opener] {
	reg := gpucontext.NewRegistry[opener](gpucontext.WithPriority("egl", "fake"))
	reg.Register("egl", func() opener { return openEGL })
	reg.Register("fake", func() opener { return openFake })
	return reg
}
