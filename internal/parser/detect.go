package parser

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

// OutputInfo describes a generated API-reference directory.
type OutputInfo struct {
	Generator string      // content of <meta name="generator">, if any
	Title     string      // <title> of index.html
	HasIndex  bool        // index.html exists
	Sections  []docs.Kind // entry subdirectories present
}

// IsTypeDoc reports whether index.html declares TypeDoc as its generator.
func (o OutputInfo) IsTypeDoc() bool {
	return strings.Contains(strings.ToLower(o.Generator), "typedoc")
}

// Usable reports whether the directory looks like generated reference output:
// an index page or at least one of the class/interface sections.
func (o OutputInfo) Usable() bool {
	if o.HasIndex {
		return true
	}
	for _, k := range o.Sections {
		if k == docs.KindClass || k == docs.KindInterface {
			return true
		}
	}
	return false
}

// InspectGeneratedHTML reports what a generated reference directory contains.
// A missing directory yields a zero OutputInfo.
func InspectGeneratedHTML(dir string) OutputInfo {
	var info OutputInfo

	for _, section := range htmlSections {
		if st, err := os.Stat(filepath.Join(dir, section.dir)); err == nil && st.IsDir() {
			info.Sections = append(info.Sections, section.kind)
		}
	}

	f, err := os.Open(filepath.Join(dir, "index.html"))
	if err != nil {
		return info
	}
	defer f.Close()
	info.HasIndex = true

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return info
	}
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, ok := s.Attr("content"); ok {
			info.Generator = content
		}
	})
	info.Title = strings.TrimSpace(doc.Find("title").First().Text())
	return info
}
