package richtext

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tsawler/richtext/format"
	"github.com/tsawler/richtext/htmldoc"
	"github.com/tsawler/richtext/model"
	"github.com/tsawler/richtext/rtfdoc"
)

// ErrUnsupportedFormat is returned when the source format cannot be read
// or the requested output format cannot be written.
var ErrUnsupportedFormat = errors.New("richtext: unsupported format")

// Converter provides a fluent interface for reading a document and
// converting it to another format. Each configuration method returns a new
// Converter instance, making it safe to share a configured Converter and
// allowing method chaining.
type Converter struct {
	// Source
	filename string
	data     []byte
	loaded   bool

	// Format override, Unknown means detect
	format format.Format

	// Configuration
	options ConvertOptions
}

// clone creates a shallow copy of the Converter. The source bytes are
// shared; they are never modified.
func (c *Converter) clone() *Converter {
	newConv := *c
	return &newConv
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// WithLogger sets a logger for debug output from the readers.
//
// Example:
//
//	doc, _, err := richtext.Open("in.rtf").WithLogger(slog.Default()).Document()
func (c *Converter) WithLogger(logger *slog.Logger) *Converter {
	newConv := c.clone()
	newConv.options.logger = logger
	return newConv
}

// ANSICodePage decodes \'XX escapes with the code page named by \ansicpg
// instead of Latin-1.
func (c *Converter) ANSICodePage() *Converter {
	newConv := c.clone()
	newConv.options.codePages = true
	return newConv
}

// StandardColorIndex resolves and writes \cf indices the way word
// processors do: \cf1 is the first declared color table entry.
func (c *Converter) StandardColorIndex() *Converter {
	newConv := c.clone()
	newConv.options.standardColors = true
	return newConv
}

// DefaultFont sets the family written for runs that have none.
//
// Example:
//
//	rtf, _, err := richtext.Open("page.html").DefaultFont("Georgia").RTF()
func (c *Converter) DefaultFont(family string) *Converter {
	newConv := c.clone()
	if family != "" {
		newConv.options.defaultFont = family
	}
	return newConv
}

// SkipBoilerplate leaves navigation, sidebars and page-level headers and
// footers out of HTML input.
func (c *Converter) SkipBoilerplate() *Converter {
	newConv := c.clone()
	newConv.options.skipBoilerplate = true
	return newConv
}

// As forces the source format instead of detecting it.
//
// Example:
//
//	text, _, err := richtext.FromBytes(data, "").As(format.RTF).Text()
func (c *Converter) As(f format.Format) *Converter {
	newConv := c.clone()
	newConv.format = f
	return newConv
}

// ============================================================================
// Terminal Operations
// ============================================================================

// DetectedFormat reports the source format without parsing the document.
func (c *Converter) DetectedFormat() (format.Format, error) {
	data, err := c.load()
	if err != nil {
		return format.Unknown, err
	}
	f, _ := c.detect(data)
	return f, nil
}

// Document reads the source into the rich-text model.
//
// Example:
//
//	doc, warnings, err := richtext.Open("letter.rtf").Document()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.BlockCount(), "paragraphs")
func (c *Converter) Document() (*model.Document, []Warning, error) {
	data, err := c.load()
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	if len(bytes.TrimSpace(data)) == 0 {
		warnings = append(warnings, Warning{Code: WarningEmptyInput, Message: "source is empty"})
		return model.NewDocument(), warnings, nil
	}

	f, guessed := c.detect(data)
	if guessed {
		warnings = append(warnings, Warning{
			Code:    WarningFormatGuessed,
			Message: fmt.Sprintf("format not recognized, reading as %s", f),
		})
	}

	var doc *model.Document
	switch f {
	case format.RTF:
		var rtfWarnings []Warning
		doc, rtfWarnings = c.readRTF(data)
		warnings = append(warnings, rtfWarnings...)
	case format.HTML:
		doc, err = htmldoc.Parse(bytes.NewReader(data), c.options.htmlOptions()...)
		if err != nil {
			return nil, warnings, err
		}
	case format.Text:
		doc = documentFromText(string(data))
	default:
		return nil, warnings, fmt.Errorf("%w: %s", ErrUnsupportedFormat, c.describe())
	}

	if c.options.logger != nil {
		c.options.logger.Debug("document read",
			"source", c.describe(),
			"format", f.String(),
			"blocks", doc.BlockCount(),
			"runs", doc.RunCount())
	}
	return doc, warnings, nil
}

// Text returns the document's visible text with paragraphs separated by
// newlines.
func (c *Converter) Text() (string, []Warning, error) {
	doc, warnings, err := c.Document()
	if err != nil {
		return "", warnings, err
	}
	return doc.PlainText(), warnings, nil
}

// HTML renders the document as a standalone HTML page.
//
// Example:
//
//	html, _, err := richtext.Open("letter.rtf").HTML()
func (c *Converter) HTML() (string, []Warning, error) {
	doc, warnings, err := c.Document()
	if err != nil {
		return "", warnings, err
	}
	out, err := htmldoc.Render(doc)
	if err != nil {
		return "", warnings, err
	}
	return string(out), warnings, nil
}

// RTF serializes the document as RTF.
func (c *Converter) RTF() ([]byte, []Warning, error) {
	doc, warnings, err := c.Document()
	if err != nil {
		return nil, warnings, err
	}
	return rtfdoc.Write(doc, c.options.rtfOptions()...), warnings, nil
}

// Convert writes the document in the given format.
//
// Example:
//
//	out, _, err := richtext.Open("page.html").Convert(format.RTF)
func (c *Converter) Convert(to format.Format) ([]byte, []Warning, error) {
	switch to {
	case format.RTF:
		return c.RTF()
	case format.HTML:
		s, warnings, err := c.HTML()
		return []byte(s), warnings, err
	case format.Text:
		s, warnings, err := c.Text()
		if err != nil {
			return nil, warnings, err
		}
		if s != "" {
			s += "\n"
		}
		return []byte(s), warnings, nil
	default:
		return nil, nil, fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, to)
	}
}

// ============================================================================
// Helpers
// ============================================================================

// load returns the source bytes, reading the file on first use.
func (c *Converter) load() ([]byte, error) {
	if c.loaded {
		return c.data, nil
	}
	if c.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	data, err := os.ReadFile(c.filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// detect picks the source format. Signatures win over the file extension,
// and content sniffing is the last resort, reported as a guess.
func (c *Converter) detect(data []byte) (f format.Format, guessed bool) {
	if c.format != format.Unknown {
		return c.format, false
	}
	if f := format.DetectFromMagic(data); f != format.Unknown {
		return f, false
	}
	if f := format.Detect(c.filename); f != format.Unknown {
		return f, false
	}
	f = format.DetectFromContent(data)
	return f, f != format.Unknown
}

func (c *Converter) readRTF(data []byte) (*model.Document, []Warning) {
	res := rtfdoc.Decode(data, c.options.rtfOptions()...)

	var warnings []Warning
	switch {
	case res.Status == rtfdoc.StatusEmptyInput:
		warnings = append(warnings, Warning{Code: WarningEmptyInput, Message: "no RTF tokens found"})
	case res.Status == rtfdoc.StatusNotRTF:
		warnings = append(warnings, Warning{Code: WarningNotRTF, Message: "input does not start with a group"})
	case !res.SawHeader:
		warnings = append(warnings, Warning{Code: WarningMissingHeader, Message: `no \rtf header found`})
	}
	return res.Document, warnings
}

func (c *Converter) describe() string {
	if c.filename == "" {
		return "<bytes>"
	}
	return c.filename
}

// documentFromText builds one block per line of plain text.
func documentFromText(s string) *model.Document {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")

	doc := model.NewDocument()
	for _, line := range strings.Split(s, "\n") {
		b := doc.AddBlock()
		b.AddRun(line, model.DefaultCharFormat())
	}
	return doc
}
