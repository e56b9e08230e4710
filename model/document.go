package model

import "strings"

// Document represents a paragraph-structured rich-text document
type Document struct {
	Blocks      []*Block
	Fonts       FontTable
	Colors      ColorTable
	DefaultFont int // font id named by \deff
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Blocks: make([]*Block, 0),
	}
}

// AddBlock appends a new empty block and returns it
func (d *Document) AddBlock() *Block {
	b := &Block{}
	d.Blocks = append(d.Blocks, b)
	return b
}

// LastBlock returns the final block, or nil for an empty document
func (d *Document) LastBlock() *Block {
	if len(d.Blocks) == 0 {
		return nil
	}
	return d.Blocks[len(d.Blocks)-1]
}

// BlockCount returns the number of blocks
func (d *Document) BlockCount() int {
	return len(d.Blocks)
}

// RunCount returns the number of runs across all blocks
func (d *Document) RunCount() int {
	n := 0
	for _, b := range d.Blocks {
		n += len(b.Runs)
	}
	return n
}

// PlainText returns the visible text with blocks separated by newlines
func (d *Document) PlainText() string {
	lines := make([]string, len(d.Blocks))
	for i, b := range d.Blocks {
		lines[i] = b.Text()
	}
	return strings.Join(lines, "\n")
}

// Equivalent reports whether two documents present the same content:
// the same number of blocks, the same list markers, and the same runs once
// adjacent runs with identical presentation are coalesced. Raw table
// indices and paragraph indents are not compared.
func (d *Document) Equivalent(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.Blocks) != len(other.Blocks) {
		return false
	}
	for i := range d.Blocks {
		if !d.Blocks[i].Equivalent(other.Blocks[i]) {
			return false
		}
	}
	return true
}
