// Package fakegl provides an in-memory glestex.Driver.
//
// The driver emulates enough of GLES2 and EGL to observe what glestex
// does: texture names and their pixel storage (honouring the unpack row
// length, skip and alignment state), imported images, the context current
// on the calling thread and debug group nesting. Every GL call made while
// the renderer context is not current is counted as a violation.
//
// A Driver is not safe for concurrent use.
package fakegl
