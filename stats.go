package glestex

import (
	"fmt"
	"sync/atomic"
)

// Stats is a snapshot of the GPU resources owned by a Renderer's textures.
type Stats struct {
	// LiveTextures is the number of GL texture names not yet deleted.
	LiveTextures int64

	// LiveImages is the number of imported EGL images not yet destroyed.
	LiveImages int64

	// Created is the total number of textures successfully constructed.
	Created uint64

	// Destroyed is the total number of textures destroyed.
	Destroyed uint64

	// Failed is the total number of rejected construction or write calls.
	Failed uint64
}

// String returns a human-readable summary.
func (s Stats) String() string {
	return fmt.Sprintf("Textures[%d live, %d images, %d created, %d destroyed, %d failed]",
		s.LiveTextures, s.LiveImages, s.Created, s.Destroyed, s.Failed)
}

// counters backs Stats. Atomic so Stats may be sampled from a metrics
// goroutine while the owner drives the renderer.
type counters struct {
	liveTextures atomic.Int64
	liveImages   atomic.Int64
	created      atomic.Uint64
	destroyed    atomic.Uint64
	failed       atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		LiveTextures: c.liveTextures.Load(),
		LiveImages:   c.liveImages.Load(),
		Created:      c.created.Load(),
		Destroyed:    c.destroyed.Load(),
		Failed:       c.failed.Load(),
	}
}
