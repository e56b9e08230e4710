package htmldoc

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/net/html"

	"github.com/tsawler/richtext/model"
)

// Option configures Parse.
type Option func(*parseOptions)

type parseOptions struct {
	skipBoilerplate bool
}

// WithBoilerplateFilter skips navigation, sidebars, site headers and
// footers while parsing.
func WithBoilerplateFilter() Option {
	return func(o *parseOptions) {
		o.skipBoilerplate = true
	}
}

// Open parses an HTML file into a Document.
func Open(filename string, opts ...Option) (*model.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Parse(f, opts...)
}

// Parse reads HTML and builds a Document. Paragraph-level elements open
// blocks, list items become bullet blocks, and inline elements and styles
// set run formatting.
func Parse(r io.Reader, opts ...Option) (*model.Document, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	body := findElement(root, "body")
	if body == nil {
		body = root
	}

	b := &builder{
		doc:        model.NewDocument(),
		fontIndex:  make(map[string]int),
		colorIndex: make(map[model.Color]int),
	}
	if o.skipBoilerplate {
		b.exclude = newBoilerplateFilter(body)
	}

	b.traverseNode(body, runFormat{char: model.DefaultCharFormat()}, 0)
	return b.doc, nil
}

// runFormat is the formatting inherited by a node's descendants
type runFormat struct {
	char   model.CharFormat
	family string
	color  *model.Color
}

type builder struct {
	doc     *model.Document
	current *model.Block
	exclude *boilerplateFilter

	fontIndex  map[string]int
	colorIndex map[model.Color]int
}

// traverseNode recursively processes DOM nodes.
func (b *builder) traverseNode(n *html.Node, f runFormat, listLevel int) {
	switch n.Type {
	case html.TextNode:
		b.text(n.Data, f)
		return
	case html.ElementNode:
	default:
		b.children(n, f, listLevel)
		return
	}

	if shouldSkipElement(n.Data) || b.exclude.shouldExclude(n) {
		return
	}

	f = applyElement(n, f)

	switch n.Data {
	case "br":
		b.insert("\n", f)

	case "p", "h1", "h2", "h3", "h4", "h5", "h6", "pre", "blockquote":
		// A paragraph wrapping list item content stays in the item
		if b.current == nil || !b.current.IsListItem() || !b.current.IsEmpty() {
			b.open(nil)
		}
		b.children(n, f, listLevel)
		b.current = nil

	case "div", "section", "article", "main", "header", "footer":
		if isBlockContainer(n) {
			b.current = nil
			b.children(n, f, listLevel)
			b.current = nil
			return
		}
		b.open(nil)
		b.children(n, f, listLevel)
		b.current = nil

	case "ul", "ol":
		b.current = nil
		b.children(n, f, listLevel+1)
		b.current = nil

	case "li":
		level := max(listLevel, 1)
		b.open(&model.ListMarker{Style: model.ListDisc, Level: level})
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
				b.current = nil
				b.traverseNode(c, f, level)
				continue
			}
			if b.current == nil {
				b.open(&model.ListMarker{Style: model.ListDisc, Level: level})
			}
			b.traverseNode(c, f, level)
		}
		b.current = nil

	default:
		b.children(n, f, listLevel)
	}
}

func (b *builder) children(n *html.Node, f runFormat, listLevel int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.traverseNode(c, f, listLevel)
	}
}

func (b *builder) open(list *model.ListMarker) {
	b.current = b.doc.AddBlock()
	b.current.List = list
}

// text inserts character data. Whitespace between blocks is markup
// formatting and is dropped.
func (b *builder) text(s string, f runFormat) {
	if b.current == nil && strings.TrimSpace(s) == "" {
		return
	}
	b.insert(s, f)
}

func (b *builder) insert(s string, f runFormat) {
	if s == "" {
		return
	}
	if b.current == nil {
		b.open(nil)
	}

	run := model.Run{Text: s, Format: f.char, FontFamily: f.family, Color: f.color}
	if f.family != "" {
		run.Format.FontIndex = b.font(f.family)
	}
	if f.color != nil {
		run.Format.ColorIndex = b.color(*f.color)
	}
	b.current.Runs = append(b.current.Runs, run)
}

// font registers a family in the document font table
func (b *builder) font(family string) int {
	if id, ok := b.fontIndex[family]; ok {
		return id
	}
	id := len(b.doc.Fonts)
	b.doc.Fonts.Set(id, family)
	b.fontIndex[family] = id
	return id
}

// color registers a color and returns its 1-based table reference
func (b *builder) color(c model.Color) int {
	if idx, ok := b.colorIndex[c]; ok {
		return idx
	}
	b.doc.Colors = append(b.doc.Colors, c)
	idx := len(b.doc.Colors)
	b.colorIndex[c] = idx
	return idx
}

// applyElement derives the formatting inside n from the formatting around it
func applyElement(n *html.Node, f runFormat) runFormat {
	switch n.Data {
	case "b", "strong", "h1", "h2", "h3", "h4", "h5", "h6", "th":
		f.char.Bold = true
	case "i", "em", "cite", "var":
		f.char.Italic = true
	case "u", "ins":
		f.char.Underline = true
	case "s", "strike", "del":
		f.char.Strikethrough = true
	case "font":
		if face := attr(n, "face"); face != "" {
			f.family = firstFamily(face)
		}
		if c, ok := parseColor(attr(n, "color")); ok {
			f.color = &c
		}
	}

	if style := attr(n, "style"); style != "" {
		f = applyStyle(style, f)
	}
	return f
}

// applyStyle interprets the inline CSS declarations the renderer emits
func applyStyle(style string, f runFormat) runFormat {
	for _, decl := range strings.Split(style, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)

		switch key {
		case "font-family":
			if fam := firstFamily(val); fam != "" {
				f.family = fam
			}
		case "font-size":
			if hp, ok := parseFontSize(val); ok {
				f.char.FontSize = hp
			}
		case "color":
			if c, ok := parseColor(val); ok {
				f.color = &c
			}
		case "font-weight":
			weight, err := strconv.Atoi(val)
			f.char.Bold = val == "bold" || val == "bolder" || err == nil && weight >= 600
		case "font-style":
			f.char.Italic = val == "italic" || val == "oblique"
		case "text-decoration", "text-decoration-line":
			if strings.Contains(val, "underline") {
				f.char.Underline = true
			}
			if strings.Contains(val, "line-through") {
				f.char.Strikethrough = true
			}
			if val == "none" {
				f.char.Underline = false
				f.char.Strikethrough = false
			}
		}
	}
	return f
}

// firstFamily returns the first name in a CSS font-family list, unquoted
func firstFamily(val string) string {
	first, _, _ := strings.Cut(val, ",")
	first = strings.TrimSpace(first)
	if len(first) >= 2 && (first[0] == '\'' || first[0] == '"') && first[len(first)-1] == first[0] {
		first = strings.ReplaceAll(first[1:len(first)-1], `\'`, "'")
	}
	return first
}

// parseFontSize converts a CSS size in pt or px to half-points
func parseFontSize(val string) (int, bool) {
	val = strings.ToLower(val)
	scale := 1.0
	switch {
	case strings.HasSuffix(val, "pt"):
		val = strings.TrimSuffix(val, "pt")
	case strings.HasSuffix(val, "px"):
		val = strings.TrimSuffix(val, "px")
		scale = 0.75
	default:
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return int(math.Round(v * scale * 2)), true
}

// parseColor accepts #rgb and #rrggbb values
func parseColor(val string) (model.Color, bool) {
	val = strings.TrimSpace(val)
	if val == "" {
		return model.Color{}, false
	}
	c, err := colorful.Hex(val)
	if err != nil {
		return model.Color{}, false
	}
	r, g, bl := c.RGB255()
	return model.Color{R: r, G: g, B: bl}, true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// shouldSkipElement returns true if the element should be skipped during content extraction.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "head", "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// isBlockContainer returns true if the element is a block container with block-level children.
func isBlockContainer(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "div", "p", "ul", "ol", "table", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "article", "section":
				return true
			}
		}
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}
