package rtfdoc

import (
	"io"
	"log/slog"

	"github.com/tsawler/richtext/model"
)

// DefaultFontFamily seeds the writer's font table.
const DefaultFontFamily = model.DefaultFontFamily

// Option configures reading and writing.
type Option func(*options)

// options holds configuration shared by the reader and the writer.
type options struct {
	logger *slog.Logger

	// Reader
	codePages bool // honor \ansicpg for hex escapes

	// Reader and writer
	standardColors bool // RTF color indexing: entry 0 is auto

	// Writer
	defaultFont string
}

// defaultOptions returns the default codec options.
func defaultOptions() options {
	return options{
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		codePages:      false,
		standardColors: false,
		defaultFont:    DefaultFontFamily,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithLogger routes parser diagnostics (skipped destinations, unbalanced
// groups) to l at debug level. A nil logger keeps the default, which
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithANSICodePage makes the reader decode \'XX escapes with the code page
// named by \ansicpgN instead of Latin-1. Unknown code pages fall back to
// Latin-1.
func WithANSICodePage() Option {
	return func(o *options) {
		o.codePages = true
	}
}

// WithStandardColorIndex switches both reader and writer to RTF color
// indexing, where \cf0 is the auto color and \cfN names table entry N
// counting the leading auto entry as 0. Without it, \cfN names the Nth
// entry counting from 1.
func WithStandardColorIndex() Option {
	return func(o *options) {
		o.standardColors = true
	}
}

// WithDefaultFont sets the family the writer places at font index 0 and
// uses for runs that carry no family.
func WithDefaultFont(name string) Option {
	return func(o *options) {
		if name != "" {
			o.defaultFont = name
		}
	}
}
