package richtext

import (
	"log/slog"

	"github.com/tsawler/richtext/htmldoc"
	"github.com/tsawler/richtext/rtfdoc"
)

// ConvertOptions holds configuration for reading and writing documents.
type ConvertOptions struct {
	logger *slog.Logger // nil means no logging

	// RTF handling
	codePages      bool
	standardColors bool
	defaultFont    string

	// HTML handling
	skipBoilerplate bool
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		defaultFont: rtfdoc.DefaultFontFamily,
	}
}

// rtfOptions translates the options for the rtfdoc reader and writer.
func (o ConvertOptions) rtfOptions() []rtfdoc.Option {
	opts := []rtfdoc.Option{rtfdoc.WithDefaultFont(o.defaultFont)}
	if o.logger != nil {
		opts = append(opts, rtfdoc.WithLogger(o.logger))
	}
	if o.codePages {
		opts = append(opts, rtfdoc.WithANSICodePage())
	}
	if o.standardColors {
		opts = append(opts, rtfdoc.WithStandardColorIndex())
	}
	return opts
}

// htmlOptions translates the options for the htmldoc parser.
func (o ConvertOptions) htmlOptions() []htmldoc.Option {
	var opts []htmldoc.Option
	if o.skipBoilerplate {
		opts = append(opts, htmldoc.WithBoilerplateFilter())
	}
	return opts
}
