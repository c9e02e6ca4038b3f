// Package egl implements glestex.Driver on top of EGL and OpenGL ES 2.
//
// The driver is built on the gogpu/wgpu EGL and GL bindings. Extension
// entry points those bindings do not cover (EGL images, wl_drm queries,
// DMA-BUF modifier queries and GL_KHR_debug groups) are resolved with
// eglGetProcAddress and called through goffi.
//
// Use New to create a private GLES context, or Wrap to drive a context
// owned by the compositor:
//
//	drv, err := egl.New(egl.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer drv.Close()
//
//	r, err := glestex.NewRenderer(drv)
//
// Only Linux is supported. On other platforms New and Wrap return
// ErrUnsupportedPlatform.
package egl
