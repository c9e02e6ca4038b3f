package glestex

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// guard keeps the renderer context current for the duration of one
// operation. It is created by Renderer.acquire and must be released
// exactly once, normally with defer:
//
//	g, err := r.acquire("texture.write", t.id)
//	if err != nil {
//	    return err
//	}
//	defer g.release()
//
// The calling goroutine stays locked to its OS thread between acquire and
// release, because EGL bindings are per thread.
type guard struct {
	r      *Renderer
	saved  SavedContext
	marked bool
}

// acquire saves the caller's context, makes the renderer context current
// and opens a debug group labelled with op and the texture id. If the
// renderer context cannot be made current the saved context is restored
// before returning.
func (r *Renderer) acquire(op string, id uuid.UUID) (*guard, error) {
	runtime.LockOSThread()
	g := &guard{r: r, saved: r.drv.SaveCurrent()}

	if err := r.drv.MakeCurrent(); err != nil {
		g.restore()
		slogger().Error("glestex: cannot make renderer context current",
			"op", op, "texture", id, "err", err)
		return nil, errors.Mark(errors.Wrapf(err, "%s", op), ErrContextSwitch)
	}

	if r.markers != nil {
		r.markers.PushDebugGroup(op + " " + id.String())
		g.marked = true
	}
	return g, nil
}

// release closes the debug group and restores the saved context.
func (g *guard) release() {
	if g.marked {
		g.r.markers.PopDebugGroup()
		g.marked = false
	}
	g.restore()
}

func (g *guard) restore() {
	if err := g.r.drv.RestoreCurrent(g.saved); err != nil {
		slogger().Warn("glestex: failed to restore previous context", "err", err)
	}
	runtime.UnlockOSThread()
}
