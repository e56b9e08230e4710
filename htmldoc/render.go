// Package htmldoc converts rich-text documents to and from HTML.
package htmldoc

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/richtext/model"
)

// Render converts doc to a standalone HTML document. Consecutive list
// items share one <ul>; every other block becomes a <p>.
func Render(doc *model.Document) ([]byte, error) {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html)
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	htmlEl.AppendChild(head)

	body := element(atom.Body)
	htmlEl.AppendChild(body)
	if doc != nil {
		renderBlocks(body, doc.Blocks)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.Bytes(), nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func renderBlocks(body *html.Node, blocks []*model.Block) {
	var list *html.Node
	for _, b := range blocks {
		if !b.IsListItem() {
			list = nil
			p := element(atom.P)
			renderRuns(p, b.Runs)
			body.AppendChild(p)
			continue
		}

		if list == nil {
			list = element(atom.Ul)
			body.AppendChild(list)
		}
		li := element(atom.Li)
		renderRuns(li, b.Runs)
		list.AppendChild(li)
	}
}

func renderRuns(parent *html.Node, runs []model.Run) {
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		renderRun(parent, r)
	}
}

// renderRun appends a run to parent, wrapping its text in span, b, i, u
// and s elements, outermost first. Line breaks become <br>.
func renderRun(parent *html.Node, r model.Run) {
	target := parent
	wrap := func(n *html.Node) {
		target.AppendChild(n)
		target = n
	}

	if style := runStyle(r); style != "" {
		wrap(element(atom.Span, html.Attribute{Key: "style", Val: style}))
	}
	if r.Format.Bold {
		wrap(element(atom.B))
	}
	if r.Format.Italic {
		wrap(element(atom.I))
	}
	if r.Format.Underline {
		wrap(element(atom.U))
	}
	if r.Format.Strikethrough {
		wrap(element(atom.S))
	}

	for i, line := range strings.Split(r.Text, "\n") {
		if i > 0 {
			target.AppendChild(element(atom.Br))
		}
		if line != "" {
			target.AppendChild(textNode(line))
		}
	}
}

// runStyle returns the inline CSS for properties without a dedicated tag
func runStyle(r model.Run) string {
	var parts []string
	if r.FontFamily != "" {
		parts = append(parts, "font-family:"+cssFontFamily(r.FontFamily))
	}
	if r.Format.FontSize > 0 && r.Format.FontSize != model.DefaultFontSize {
		parts = append(parts, "font-size:"+strconv.FormatFloat(r.Format.PointSize(), 'f', -1, 64)+"pt")
	}
	if r.Color != nil {
		parts = append(parts, "color:"+cssColor(*r.Color))
	}
	return strings.Join(parts, ";")
}

func cssColor(c model.Color) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// cssFontFamily quotes names that are not plain identifiers
func cssFontFamily(name string) string {
	for _, r := range name {
		if !(r == ' ' || r == '-' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return "'" + strings.ReplaceAll(name, "'", `\'`) + "'"
		}
	}
	return name
}
