// Package markdown renders the markdown pages the MCP tools return as HTML for the
// browsable reference endpoint.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"
)

// Heading is one entry of a page's table of contents.
type Heading struct {
	Level int    // nesting depth in the outline, 1 for top-level headings
	Title string
	ID    string // anchor generated from the title
}

// Page is a rendered markdown document.
type Page struct {
	Title    string    // text of the first top-level heading
	Headings []Heading // document order
	TOC      string    // nested <ul> linking to the headings below the title
	Body     string    // document HTML
}

// Renderer converts markdown to HTML with heading anchors and a table of contents.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer configured with automatic heading IDs.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Renderer{md: md}
}

// Render parses source once and renders both the body and its table of contents.
// Raw HTML in source is escaped.
func (r *Renderer) Render(source []byte) (*Page, error) {
	doc := r.md.Parser().Parse(text.NewReader(source))

	tree, err := toc.Inspect(doc, source,
		toc.MinDepth(1),
		toc.MaxDepth(3),
		toc.Compact(true),
	)
	if err != nil {
		return nil, fmt.Errorf("inspect TOC: %w", err)
	}

	page := &Page{}
	flatten(tree.Items, 1, &page.Headings)
	for _, h := range page.Headings {
		if h.Level == 1 {
			page.Title = h.Title
			break
		}
	}

	var body bytes.Buffer
	if err := r.md.Renderer().Render(&body, source, doc); err != nil {
		return nil, fmt.Errorf("render body: %w", err)
	}
	page.Body = body.String()

	// The title already heads the page, so the list starts at its children.
	items := tree.Items
	if len(items) == 1 && len(items[0].Items) > 0 {
		items = items[0].Items
	}
	if list := toc.RenderList(&toc.TOC{Items: items}); list != nil {
		var buf bytes.Buffer
		if err := r.md.Renderer().Render(&buf, source, list); err != nil {
			return nil, fmt.Errorf("render TOC: %w", err)
		}
		page.TOC = buf.String()
	}

	return page, nil
}

func flatten(items toc.Items, level int, out *[]Heading) {
	for _, item := range items {
		if len(item.Title) > 0 {
			*out = append(*out, Heading{Level: level, Title: string(item.Title), ID: string(item.ID)})
		}
		flatten(item.Items, level+1, out)
	}
}
