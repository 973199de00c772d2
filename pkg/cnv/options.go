package cnv

import "go.uber.org/zap"

// DefaultMarkers are the characters that may prefix a header line.
const DefaultMarkers = "*#"

// Option configures a HeaderReader.
type Option func(*HeaderReader)

// WithMarkers sets the characters accepted as header line prefix. Any
// Unicode character may be used. An empty string keeps the default.
func WithMarkers(markers string) Option {
	return func(h *HeaderReader) {
		if markers != "" {
			h.markers = markers
		}
	}
}

// WithLogger sets the logger used to report absorbed field parse failures.
func WithLogger(logger *zap.Logger) Option {
	return func(h *HeaderReader) {
		if logger != nil {
			h.logger = logger
		}
	}
}
