// Package format provides file format detection for the richtext library.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// RTF indicates a Rich Text Format document.
	RTF
	// HTML indicates an HTML document.
	HTML
	// Text indicates plain text.
	Text
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case RTF:
		return "RTF"
	case HTML:
		return "HTML"
	case Text:
		return "Text"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case RTF:
		return ".rtf"
	case HTML:
		return ".html"
	case Text:
		return ".txt"
	default:
		return ""
	}
}

// Parse maps a format name such as "rtf" or "html" to a Format.
func Parse(name string) Format {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "rtf":
		return RTF
	case "html", "htm":
		return HTML
	case "text", "txt":
		return Text
	default:
		return Unknown
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".rtf":
		return RTF
	case ".html", ".htm":
		return HTML
	case ".txt", ".text":
		return Text
	default:
		return Unknown
	}
}

// DetectFromMagic checks the leading bytes to determine format.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	if detectRTFMagic(data) {
		return RTF
	}
	if detectHTMLMagic(data) {
		return HTML
	}
	return Unknown
}

// trimLeadingSpace skips ASCII whitespace and a UTF-8 byte order mark
func trimLeadingSpace(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	return bytes.TrimLeft(data, " \t\r\n")
}

// detectRTFMagic checks for the {\rtf signature.
func detectRTFMagic(data []byte) bool {
	return bytes.HasPrefix(trimLeadingSpace(data), []byte(`{\rtf`))
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = trimLeadingSpace(data)
	if len(data) == 0 {
		return false
	}

	// Check for common HTML signatures (case-insensitive for DOCTYPE)
	upper := strings.ToUpper(string(data[:min(512, len(data))]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}

	return false
}

// DetectFromContent inspects content with magic bytes first and falls back
// to MIME sniffing. Content that sniffs as any text type is reported as
// Text.
func DetectFromContent(data []byte) Format {
	if f := DetectFromMagic(data); f != Unknown {
		return f
	}
	if len(data) == 0 {
		return Unknown
	}

	mtype := mimetype.Detect(data)
	for t := mtype; t != nil; t = t.Parent() {
		switch {
		case t.Is("text/rtf"):
			return RTF
		case t.Is("text/html"):
			return HTML
		case t.Is("text/plain"):
			return Text
		}
	}
	return Unknown
}

// DetectFromReader reads up to 3072 bytes from r and detects the format
// from content.
func DetectFromReader(r io.Reader) (Format, error) {
	head := make([]byte, 3072)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromContent(head[:n]), nil
}

// DetectFile combines extension and content detection. Content wins when
// it is conclusive; otherwise the extension decides.
func DetectFile(filename string, data []byte) Format {
	if f := DetectFromMagic(data); f != Unknown {
		return f
	}
	if f := Detect(filename); f != Unknown {
		return f
	}
	return DetectFromContent(data)
}
