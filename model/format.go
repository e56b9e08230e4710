package model

import "fmt"

// DefaultFontSize is the font size in half-points used when no \fs
// control word is in effect (12pt).
const DefaultFontSize = 24

// DefaultFontFamily is the family a run without one is presented in. The
// RTF writer seeds its font table with it.
const DefaultFontFamily = "Sans Serif"

// CharFormat is a snapshot of character formatting
type CharFormat struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	FontIndex     int // index into the document FontTable
	FontSize      int // half-points
	ColorIndex    int // 0 = inherit, else a reference into the ColorTable
}

// DefaultCharFormat returns the formatting in effect at the start of a
// document or after \pard.
func DefaultCharFormat() CharFormat {
	return CharFormat{FontSize: DefaultFontSize}
}

// PointSize returns the font size in points.
func (f CharFormat) PointSize() float64 {
	return float64(f.FontSize) / 2
}

// Color is an RGB foreground color
type Color struct {
	R, G, B uint8
}

// Black is the color the writer reserves a fixed table slot for.
var Black = Color{}

// RGB creates a color from components, clamping each to 0-255.
func RGB(r, g, b int) Color {
	return Color{R: clampByte(r), G: clampByte(g), B: clampByte(b)}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// FontTable maps small integer font ids to family names. Ids index the
// slice directly; ids never declared hold "".
type FontTable []string

// Set stores name at id, growing the table as needed.
func (t *FontTable) Set(id int, name string) {
	if id < 0 {
		return
	}
	for len(*t) <= id {
		*t = append(*t, "")
	}
	(*t)[id] = name
}

// Name returns the family registered at id.
func (t FontTable) Name(id int) (string, bool) {
	if id < 0 || id >= len(t) {
		return "", false
	}
	return t[id], true
}

// ColorTable holds colors in the order their entries were declared.
type ColorTable []Color

// Lookup resolves a 1-based color reference: index N is the Nth entry.
// Index 0 and out-of-range references resolve to nothing.
func (t ColorTable) Lookup(index int) (Color, bool) {
	if index < 1 || index > len(t) {
		return Color{}, false
	}
	return t[index-1], true
}
