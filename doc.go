// Package glestex manages GLES2 texture objects for a compositor's
// rendering backend.
//
// # Overview
//
// A [Renderer] wraps a [Driver] (an EGL context plus the GL and EGL image
// entry points it needs) and creates [Texture] values through one of three
// construction strategies:
//
//   - [Renderer.FromPixels] copies a caller-owned pixel buffer into a new
//     mutable GL_TEXTURE_2D.
//   - [Renderer.FromWLDRM] imports a legacy wl_drm buffer as an EGL image
//     bound to GL_TEXTURE_EXTERNAL_OES.
//   - [Renderer.FromDMABUF] imports a DMA-BUF description as an EGL image
//     bound to GL_TEXTURE_2D, or GL_TEXTURE_EXTERNAL_OES when the driver
//     reports the buffer as external-only.
//
// Only textures created from pixels can be written with [Texture.Write].
// Imported textures report [FormatInvalid] and fail writes with
// [ErrImmutableTexture].
//
// # Quick Start
//
//	drv, err := egl.New(egl.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	r, err := glestex.NewRenderer(drv)
//	if err != nil {
//	    return err
//	}
//
//	tex, err := r.FromPixels(glestex.FormatARGB8888, 4*w, w, h, pixels)
//	if err != nil {
//	    return err
//	}
//	defer tex.Destroy()
//
//	attribs := tex.Attribs() // target, GL name, y-inversion, alpha
//
// # Context Discipline
//
// Every operation saves the EGL context current on the calling thread,
// makes the renderer context current, and restores the saved context
// before returning, on success and on failure. The calling goroutine is
// locked to its OS thread for the duration of the operation.
//
// A Renderer is not safe for concurrent use. All operations on one
// Renderer and its textures must be serialized by the caller, typically
// by running them from the compositor's event loop.
//
// # Logging
//
// The package is silent by default. Call [SetLogger] to route diagnostics
// to a [log/slog] logger.
package glestex
