// Package richtext provides a fluent API for reading and converting RTF,
// HTML and plain-text documents through a shared rich-text model.
//
// Basic usage:
//
//	text, warnings, err := richtext.Open("letter.rtf").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", richtext.FormatWarnings(warnings))
//	}
//
// With options:
//
//	html, _, err := richtext.Open("letter.rtf").
//	    ANSICodePage().
//	    DefaultFont("Helvetica").
//	    HTML()
//
// For lower-level access, use the rtfdoc, htmldoc and core packages.
package richtext

import (
	"github.com/tsawler/richtext/format"
)

// Open returns a Converter for the named file. The format is detected from
// the file's content and extension when the file is first read.
//
// Example:
//
//	doc, warnings, err := richtext.Open("notes.rtf").Document()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns a Converter over in-memory data. The name is used only
// for format detection and may be empty.
//
// Example:
//
//	text, _, err := richtext.FromBytes(data, "upload.rtf").Text()
func FromBytes(data []byte, name string) *Converter {
	return &Converter{
		filename: name,
		data:     data,
		loaded:   true,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	f := richtext.Must(richtext.Open("notes.rtf").DetectedFormat())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text(), HTML() or Document() and
// panics if the error is non-nil. It discards warnings and returns just the
// value.
//
// Example:
//
//	text := richtext.MustText(richtext.Open("notes.rtf").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Formats lists the formats a Converter can read and write.
func Formats() []format.Format {
	return []format.Format{format.RTF, format.HTML, format.Text}
}
