package mvpbuild

import "go.uber.org/zap"

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for failures authors cannot act on.
// Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithTargetOrigin sets the origin tracking messages are posted to.
// Empty keeps the default.
func WithTargetOrigin(origin string) Option {
	return func(b *Builder) {
		if origin != "" {
			b.targetOrigin = origin
		}
	}
}

// WithStylesheetURL sets the utility stylesheet linked from every page.
func WithStylesheetURL(url string) Option {
	return func(b *Builder) {
		if url != "" {
			b.stylesheetURL = url
		}
	}
}

// WithAcknowledgement sets the message shown after a CTA click.
func WithAcknowledgement(msg string) Option {
	return func(b *Builder) {
		if msg != "" {
			b.acknowledgement = msg
		}
	}
}

// WithHighlightStyle sets the chroma style for code blocks in markdown bodies.
func WithHighlightStyle(style string) Option {
	return func(b *Builder) {
		if style != "" {
			b.highlightStyle = style
		}
	}
}
