package rtfdoc

import (
	"bytes"
	"strconv"
	"unicode/utf16"

	"github.com/tsawler/richtext/model"
)

// bulletPreamble is emitted after \pard for every list block.
const bulletPreamble = `\fi-360\li720{\pntext\f0 \'B7\tab}{\*\pn\pnlvlblt{\pntxtb\'B7}}`

// Writer serializes Documents to RTF. A Writer holds only configuration and
// may be reused.
type Writer struct {
	opts options
}

// NewWriter creates a writer with the given options.
func NewWriter(opts ...Option) *Writer {
	return &Writer{opts: buildOptions(opts)}
}

// Write serializes doc to RTF. The same Document always yields the same
// bytes.
func Write(doc *model.Document, opts ...Option) []byte {
	return NewWriter(opts...).Write(doc)
}

// tables holds the font and color lists discovered in the first pass
type tables struct {
	fonts     []string
	fontIndex map[string]int
	colors    []model.Color
	colorIdx  map[model.Color]int
}

// Write serializes doc to RTF.
func (w *Writer) Write(doc *model.Document) []byte {
	t := w.discover(doc)

	var buf bytes.Buffer
	buf.WriteString("{\\rtf1\\ansi\\ansicpg1252\\deff0\n")
	w.writeFontTable(&buf, t)
	w.writeColorTable(&buf, t)

	if doc != nil {
		for i, b := range doc.Blocks {
			if i > 0 {
				buf.WriteString("\\par\n")
			}
			w.writeBlock(&buf, t, b)
		}
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

// discover collects fonts and colors in first-use order
func (w *Writer) discover(doc *model.Document) *tables {
	t := &tables{
		fonts:     []string{w.opts.defaultFont},
		fontIndex: map[string]int{w.opts.defaultFont: 0},
		colorIdx:  make(map[model.Color]int),
	}
	if doc == nil {
		return t
	}

	for _, b := range doc.Blocks {
		for _, r := range b.Runs {
			family := w.family(r)
			if _, ok := t.fontIndex[family]; !ok {
				t.fontIndex[family] = len(t.fonts)
				t.fonts = append(t.fonts, family)
			}
			if r.Color != nil && *r.Color != model.Black {
				if _, ok := t.colorIdx[*r.Color]; !ok {
					t.colorIdx[*r.Color] = len(t.colors)
					t.colors = append(t.colors, *r.Color)
				}
			}
		}
	}
	return t
}

func (w *Writer) family(r model.Run) string {
	if r.FontFamily == "" {
		return w.opts.defaultFont
	}
	return r.FontFamily
}

func (w *Writer) writeFontTable(buf *bytes.Buffer, t *tables) {
	buf.WriteString("{\\fonttbl")
	for i, name := range t.fonts {
		buf.WriteString("{\\f")
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString("\\fnil ")
		writeFontName(buf, name)
		buf.WriteString(";}")
	}
	buf.WriteString("}\n")
}

// writeColorTable emits the auto entry, black, then the discovered colors
func (w *Writer) writeColorTable(buf *bytes.Buffer, t *tables) {
	buf.WriteString("{\\colortbl ;")
	writeColor(buf, model.Black)
	for _, c := range t.colors {
		writeColor(buf, c)
	}
	buf.WriteString("}\n")
}

func writeColor(buf *bytes.Buffer, c model.Color) {
	buf.WriteString("\\red")
	buf.WriteString(strconv.Itoa(int(c.R)))
	buf.WriteString("\\green")
	buf.WriteString(strconv.Itoa(int(c.G)))
	buf.WriteString("\\blue")
	buf.WriteString(strconv.Itoa(int(c.B)))
	buf.WriteByte(';')
}

// colorIndex returns the \cf value for c. Table entries are: 0 auto,
// 1 black, 2.. discovered colors. The default indexing names entry k as
// k+1, matching how the reader resolves \cf.
func (w *Writer) colorIndex(t *tables, c model.Color) int {
	entry := 1
	if c != model.Black {
		entry = t.colorIdx[c] + 2
	}
	if w.opts.standardColors {
		return entry
	}
	return entry + 1
}

func (w *Writer) writeBlock(buf *bytes.Buffer, t *tables, b *model.Block) {
	buf.WriteString("\\pard")
	if b.IsListItem() {
		buf.WriteString(bulletPreamble)
	}

	for _, r := range b.Runs {
		if r.Text == "" {
			continue
		}
		w.writeRun(buf, t, r)
	}

	if b.IsEmpty() && !b.IsListItem() {
		buf.WriteByte(' ')
	}
}

func (w *Writer) writeRun(buf *bytes.Buffer, t *tables, r model.Run) {
	buf.WriteString("{\\f")
	buf.WriteString(strconv.Itoa(t.fontIndex[w.family(r)]))
	if r.Format.FontSize > 0 {
		buf.WriteString("\\fs")
		buf.WriteString(strconv.Itoa(r.Format.FontSize))
	}
	if r.Format.Bold {
		buf.WriteString("\\b")
	}
	if r.Format.Italic {
		buf.WriteString("\\i")
	}
	if r.Format.Underline {
		buf.WriteString("\\ul")
	}
	if r.Format.Strikethrough {
		buf.WriteString("\\strike")
	}
	if r.Color != nil {
		buf.WriteString("\\cf")
		buf.WriteString(strconv.Itoa(w.colorIndex(t, *r.Color)))
	}
	buf.WriteByte(' ')
	writeText(buf, r.Text)
	buf.WriteByte('}')
}

// writeText escapes run text. Code points above 127 become \uN? with N the
// signed 16-bit UTF-16 unit.
func writeText(buf *bytes.Buffer, s string) {
	for _, r := range s {
		switch {
		case r == '\\' || r == '{' || r == '}':
			buf.WriteByte('\\')
			buf.WriteRune(r)
		case r == '\n':
			buf.WriteString("\\line ")
		case r == '\t':
			buf.WriteString("\\tab ")
		case r == '\r':
			// Dropped, \line carries line breaks
		case r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			writeUnicode(buf, r1)
			writeUnicode(buf, r2)
		case r > 127:
			writeUnicode(buf, r)
		default:
			buf.WriteByte(byte(r))
		}
	}
}

func writeUnicode(buf *bytes.Buffer, unit rune) {
	n := int(unit)
	if n > 32767 {
		n -= 65536
	}
	buf.WriteString("\\u")
	buf.WriteString(strconv.Itoa(n))
	buf.WriteByte('?')
}

// writeFontName escapes a family name for the font table. Latin-1
// characters use \'XX, anything wider is replaced with '?'.
func writeFontName(buf *bytes.Buffer, name string) {
	const hex = "0123456789abcdef"
	for _, r := range name {
		switch {
		case r == '\\' || r == '{' || r == '}':
			buf.WriteByte('\\')
			buf.WriteRune(r)
		case r == ';':
			// Would terminate the entry early
		case r > 255:
			buf.WriteByte('?')
		case r > 127:
			buf.WriteString("\\'")
			buf.WriteByte(hex[r>>4])
			buf.WriteByte(hex[r&0xf])
		default:
			buf.WriteByte(byte(r))
		}
	}
}
