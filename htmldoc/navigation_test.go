package htmldoc

import (
	"strings"
	"testing"
)

func TestBoilerplateFilter(t *testing.T) {
	tests := []struct {
		name           string
		html           string
		filter         bool
		wantContains   []string
		wantNotContain []string
	}{
		{
			name: "no filter includes everything",
			html: `<html><body>
				<nav><p>Home | About</p></nav>
				<main><h1>Title</h1><p>Content</p></main>
				<footer><p>Copyright 2024</p></footer>
			</body></html>`,
			wantContains: []string{"Title", "Content", "Home", "About", "Copyright"},
		},
		{
			name: "nav element",
			html: `<html><body>
				<nav><a href="/">Home</a><a href="/about">About</a></nav>
				<main><h1>Title</h1><p>Content</p></main>
			</body></html>`,
			filter:         true,
			wantContains:   []string{"Title", "Content"},
			wantNotContain: []string{"Home", "About"},
		},
		{
			name: "aside element",
			html: `<html><body>
				<aside><p>Sidebar content</p></aside>
				<main><h1>Title</h1><p>Main content</p></main>
			</body></html>`,
			filter:         true,
			wantContains:   []string{"Title", "Main content"},
			wantNotContain: []string{"Sidebar content"},
		},
		{
			name: "top-level header but not article header",
			html: `<html><body>
				<header><h1>Site Header</h1></header>
				<article>
					<header><h2>Article Header</h2></header>
					<p>Article content</p>
				</article>
			</body></html>`,
			filter:         true,
			wantContains:   []string{"Article Header", "Article content"},
			wantNotContain: []string{"Site Header"},
		},
		{
			name: "footer inside single wrapper",
			html: `<html><body><div id="page">
				<p>Body text</p>
				<footer><p>Site footer copyright</p></footer>
			</div></body></html>`,
			filter:         true,
			wantContains:   []string{"Body text"},
			wantNotContain: []string{"Site footer copyright"},
		},
		{
			name: "ARIA navigation role",
			html: `<html><body>
				<div role="navigation"><a href="/">Home</a></div>
				<main><h1>Title</h1><p>Content</p></main>
			</body></html>`,
			filter:         true,
			wantContains:   []string{"Title", "Content"},
			wantNotContain: []string{"Home"},
		},
		{
			name: "class patterns",
			html: `<html><body>
				<div class="site-header"><p>Logo</p></div>
				<div class="main-menu"><p>Menu items</p></div>
				<div class="content"><p>Real content</p></div>
				<div id="sidebar"><p>Widgets</p></div>
			</body></html>`,
			filter:         true,
			wantContains:   []string{"Real content"},
			wantNotContain: []string{"Logo", "Menu items", "Widgets"},
		},
		{
			name: "similar class names kept",
			html: `<html><body>
				<div class="menubar-free"><p>Kept A</p></div>
				<div class="navigator"><p>Kept B</p></div>
			</body></html>`,
			filter:       true,
			wantContains: []string{"Kept A", "Kept B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.filter {
				opts = append(opts, WithBoilerplateFilter())
			}
			text := parseString(t, tt.html, opts...).PlainText()

			for _, want := range tt.wantContains {
				if !strings.Contains(text, want) {
					t.Errorf("expected %q in %q", want, text)
				}
			}
			for _, unwanted := range tt.wantNotContain {
				if strings.Contains(text, unwanted) {
					t.Errorf("did not expect %q in %q", unwanted, text)
				}
			}
		})
	}
}
