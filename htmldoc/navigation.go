package htmldoc

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// boilerplatePattern matches class and id values used for navigation and
// page furniture.
var boilerplatePattern = regexp.MustCompile(
	`(?i)(^|[^a-z])(nav|navbar|navigation|menu|topnav|sidenav|breadcrumb|breadcrumbs|` +
		`site-header|page-header|masthead|banner|` +
		`footer|site-footer|page-footer|colophon|` +
		`sidebar|widget-area|widget|aside)([^a-z]|$)`)

// boilerplateFilter decides which elements are left out of the document.
// A nil filter excludes nothing.
type boilerplateFilter struct {
	body            *html.Node
	topLevelWrapper *html.Node // single wrapper div/main if present
}

func newBoilerplateFilter(body *html.Node) *boilerplateFilter {
	return &boilerplateFilter{
		body:            body,
		topLevelWrapper: detectTopLevelWrapper(body),
	}
}

// detectTopLevelWrapper finds a single structural wrapper element if one exists.
// This handles the common pattern of <body><div id="wrapper">...</div></body>
func detectTopLevelWrapper(body *html.Node) *html.Node {
	var structural []*html.Node

	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "div", "main":
			structural = append(structural, c)
		case "script", "style", "noscript", "template":
		default:
			return nil
		}
	}

	if len(structural) == 1 {
		return structural[0]
	}
	return nil
}

func (bf *boilerplateFilter) shouldExclude(n *html.Node) bool {
	if bf == nil || n.Type != html.ElementNode {
		return false
	}

	switch n.Data {
	case "nav", "aside":
		return true
	case "header", "footer":
		// Only page-level headers and footers; an article's own header
		// is content
		if n.Parent == bf.body || (bf.topLevelWrapper != nil && n.Parent == bf.topLevelWrapper) {
			return true
		}
	}

	switch strings.ToLower(attr(n, "role")) {
	case "navigation", "complementary", "banner", "contentinfo":
		return true
	}

	// Never exclude the wrapper itself, its id is often "page" or "site"
	if n == bf.topLevelWrapper {
		return false
	}
	return boilerplatePattern.MatchString(attr(n, "class")) || boilerplatePattern.MatchString(attr(n, "id"))
}
