// Package parser builds documentation indexes from generated API-reference HTML
// or, when none exists, from the SDK's own source files.
package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

// ErrMissingInput is returned when the directory or manifest a parse needs does not exist.
var ErrMissingInput = errors.New("documentation input not found")

// htmlSections maps generated-HTML subdirectories to the kind of entry they hold.
var htmlSections = []struct {
	dir  string
	kind docs.Kind
}{
	{"classes", docs.KindClass},
	{"interfaces", docs.KindInterface},
	{"functions", docs.KindFunction},
	{"enums", docs.KindEnum},
}

// Parser extracts documentation entries from files on disk.
type Parser struct {
	logger *slog.Logger
}

// New creates a parser that reports skipped inputs on logger.
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParseGeneratedHTML reads the classes, interfaces, functions and enums
// subdirectories of dir. Missing subdirectories are skipped; files that fail to
// read or parse are logged and skipped. The returned index is never nil.
func (p *Parser) ParseGeneratedHTML(dir string) (*docs.Index, error) {
	index := docs.NewIndex()

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		p.logger.Warn("Generated HTML directory not found", "dir", dir)
		return index, fmt.Errorf("%w: %s", ErrMissingInput, dir)
	}

	for _, section := range htmlSections {
		sectionDir := filepath.Join(dir, section.dir)
		entries, err := os.ReadDir(sectionDir)
		if err != nil {
			p.logger.Debug("Skipping missing section", "dir", sectionDir)
			continue
		}

		for _, f := range entries {
			if !strings.HasSuffix(f.Name(), ".html") {
				continue
			}
			path := filepath.Join(sectionDir, f.Name())
			entry, err := p.parseHTMLFile(path, section.kind)
			if err != nil {
				p.logger.Warn("Failed to parse documentation file", "path", path, "error", err)
				continue
			}
			if err := index.Add(entry); err != nil {
				p.logger.Warn("Rejected documentation entry", "path", path, "error", err)
			}
		}
	}

	p.logger.Info("Parsed generated HTML", "dir", dir, "items", index.TotalCount())
	return index, nil
}

// parseHTMLFile turns one generated page into an entry. The entry name is the last
// dot-separated segment of the file name (websdk.Demos.html -> Demos).
func (p *Parser) parseHTMLFile(path string, kind docs.Kind) (docs.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return docs.Entry{}, fmt.Errorf("read: %w", err)
	}
	html := string(data)

	fileName := strings.TrimSuffix(filepath.Base(path), ".html")
	parts := strings.Split(fileName, ".")
	name := parts[len(parts)-1]
	if name == "" {
		return docs.Entry{}, fmt.Errorf("no entry name in file name %q", fileName)
	}

	entry := docs.NewEntry(kind, name, fileName)
	entry.Description = extractDescription(html)
	entry.FilePath = path
	entry.Content = truncate(StripMarkup(html), MaxContentLength)

	switch {
	case kind.HasMembers():
		entry.Members.Methods = extractMethods(html)
		entry.Members.Properties = extractProperties(html)
	case kind.HasSignature():
		entry.Signature.Parameters = extractParameters(html)
		entry.Signature.Returns = extractReturnType(html)
	}

	return entry, nil
}
