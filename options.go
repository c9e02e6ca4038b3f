package glestex

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := glestex.NewRenderer(drv,
//	    glestex.WithDebugMarkers(false),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	debugMarkers bool
	formats      *FormatTable
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		debugMarkers: true,
		formats:      DefaultFormats(),
	}
}

// WithDebugMarkers enables or disables GL_KHR_debug groups around every
// operation. Markers are only emitted when the driver implements
// DebugMarker and reports the capability. Enabled by default.
func WithDebugMarkers(enabled bool) Option {
	return func(o *options) {
		o.debugMarkers = enabled
	}
}

// WithFormats replaces the format table used to resolve pixel formats.
// A nil table keeps the default.
func WithFormats(t *FormatTable) Option {
	return func(o *options) {
		if t != nil {
			o.formats = t
		}
	}
}
