package model

import "strings"

// ListStyle identifies the bullet style of a list item
type ListStyle int

const (
	ListDisc ListStyle = iota
)

func (s ListStyle) String() string {
	switch s {
	case ListDisc:
		return "disc"
	default:
		return "unknown"
	}
}

// ListMarker marks a block as a bulleted list item
type ListMarker struct {
	Style ListStyle
	Level int // 1-based indent level
}

// BulletMarker returns the only list marker the codec produces.
func BulletMarker() *ListMarker {
	return &ListMarker{Style: ListDisc, Level: 1}
}

// Block represents one paragraph
type Block struct {
	Runs []Run
	List *ListMarker // nil when the block is not a list item

	// Paragraph indents in twips as declared by \li and \fi
	LeftIndent      int
	FirstLineIndent int
}

// Run is a span of text with uniform formatting
type Run struct {
	Text       string
	Format     CharFormat
	FontFamily string // family resolved from the font table, "" if unknown
	Color      *Color // resolved foreground color, nil to inherit
}

// AddRun appends a run. Empty text is ignored.
//
// A zero FontSize in format means "unset": writers omit \fs and readers
// substitute DefaultFontSize. Start from DefaultCharFormat to get an
// explicit size.
func (b *Block) AddRun(text string, format CharFormat) *Run {
	if text == "" {
		return nil
	}
	b.Runs = append(b.Runs, Run{Text: text, Format: format})
	return &b.Runs[len(b.Runs)-1]
}

// IsListItem reports whether the block is a bulleted list item
func (b *Block) IsListItem() bool {
	return b.List != nil
}

// IsEmpty reports whether the block has no text
func (b *Block) IsEmpty() bool {
	for _, r := range b.Runs {
		if r.Text != "" {
			return false
		}
	}
	return true
}

// Text returns the concatenated run text
func (b *Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Family returns the run's font family, or DefaultFontFamily when unset.
func (r Run) Family() string {
	if r.FontFamily == "" {
		return DefaultFontFamily
	}
	return r.FontFamily
}

// Size returns the run's font size in half-points, or DefaultFontSize when
// unset.
func (r Run) Size() int {
	if r.Format.FontSize <= 0 {
		return DefaultFontSize
	}
	return r.Format.FontSize
}

// SamePresentation reports whether two runs render identically apart from
// their text. An unset family or size matches the default one.
func (r Run) SamePresentation(o Run) bool {
	if r.Format.Bold != o.Format.Bold ||
		r.Format.Italic != o.Format.Italic ||
		r.Format.Underline != o.Format.Underline ||
		r.Format.Strikethrough != o.Format.Strikethrough ||
		r.Size() != o.Size() ||
		r.Family() != o.Family() {
		return false
	}
	if r.Color == nil || o.Color == nil {
		return r.Color == nil && o.Color == nil
	}
	return *r.Color == *o.Color
}

// Coalesced returns the block's runs with adjacent runs of identical
// presentation merged. The block itself is not modified.
func (b *Block) Coalesced() []Run {
	out := make([]Run, 0, len(b.Runs))
	for _, r := range b.Runs {
		if r.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].SamePresentation(r) {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}

// Equivalent reports whether two blocks present the same content
func (b *Block) Equivalent(o *Block) bool {
	if (b.List == nil) != (o.List == nil) {
		return false
	}
	if b.List != nil && *b.List != *o.List {
		return false
	}
	x, y := b.Coalesced(), o.Coalesced()
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i].Text != y[i].Text || !x[i].SamePresentation(y[i]) {
			return false
		}
	}
	return true
}
