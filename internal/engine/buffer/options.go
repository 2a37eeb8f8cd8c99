package buffer

import "go.uber.org/zap"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithName sets the buffer's display name.
func WithName(name string) Option {
	return func(b *Buffer) {
		b.name = name
	}
}

// WithMaxHistory bounds the number of undo frames kept.
// Non-positive values keep the default.
func WithMaxHistory(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.history.maxFrames = n
		}
	}
}

// WithLogger sets the logger used for history diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Buffer) {
		if logger != nil {
			b.logger = logger
		}
	}
}
