package parser

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

const (
	manifestFile     = "package.json"
	defaultEntryFile = "index.js"
	declarationExt   = ".d.ts"
	dependencyDir    = "node_modules"
)

var (
	jsDocClass    = regexp.MustCompile(`(?s)/\*\*(.*?)\*/\s*(?:export\s+)?class\s+(\w+)`)
	jsDocFunction = regexp.MustCompile(`(?s)/\*\*(.*?)\*/\s*(?:export\s+)?(?:async\s+)?function\s+(\w+)`)

	declInterface = regexp.MustCompile(`(?s)export\s+interface\s+(\w+)\s*\{([^}]*)\}`)
	declTypeAlias = regexp.MustCompile(`(?s)export\s+(?:declare\s+)?type\s+(\w+)(?:\s*<[^=]*>)?\s*=\s*([^;]*);`)
	declVariable  = regexp.MustCompile(`export\s+declare\s+(?:const|let|var)\s+(\w+)\s*:\s*([^;]*);`)
	declProperty  = regexp.MustCompile(`(?m)^\s*(?:readonly\s+)?([A-Za-z_$][\w$]*)\??\s*:\s*([^;\n]+);?\s*$`)
)

// manifest is the subset of package.json used to find the entry file.
type manifest struct {
	Main   string `json:"main"`
	Module string `json:"module"`
}

// entryFile returns main, then module, then index.js.
func (m manifest) entryFile() string {
	switch {
	case m.Main != "":
		return m.Main
	case m.Module != "":
		return m.Module
	}
	return defaultEntryFile
}

// ParseSourceFallback builds an index from SDK sources: JSDoc-annotated classes and
// functions in the manifest's entry file, plus interfaces, type aliases and declared
// variables from every .d.ts file under sdkRoot outside node_modules.
// The returned index is never nil.
func (p *Parser) ParseSourceFallback(sdkRoot string) (*docs.Index, error) {
	index := docs.NewIndex()

	manifestPath := filepath.Join(sdkRoot, manifestFile)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		p.logger.Warn("SDK manifest not found", "path", manifestPath)
		return index, fmt.Errorf("%w: %s", ErrMissingInput, manifestPath)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return index, fmt.Errorf("parse %s: %w", manifestPath, err)
	}

	mainPath := filepath.Join(sdkRoot, m.entryFile())
	if _, err := os.Stat(mainPath); err == nil {
		p.parseEntryFile(index, mainPath)
	} else {
		p.logger.Debug("SDK entry file not found", "path", mainPath)
	}

	for _, path := range findFiles(sdkRoot, declarationExt) {
		p.parseDeclarationFile(index, path)
	}

	p.logger.Info("Parsed SDK sources", "root", sdkRoot, "items", index.TotalCount())
	return index, nil
}

// parseEntryFile extracts classes and functions preceded by a /** */ comment.
func (p *Parser) parseEntryFile(index *docs.Index, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		p.logger.Warn("Failed to read SDK entry file", "path", path, "error", err)
		return
	}
	src := string(data)

	for _, m := range jsDocClass.FindAllStringSubmatch(src, -1) {
		p.add(index, path, commentEntry(docs.KindClass, m[2], m[1], path))
	}
	for _, m := range jsDocFunction.FindAllStringSubmatch(src, -1) {
		p.add(index, path, commentEntry(docs.KindFunction, m[2], m[1], path))
	}
}

// commentEntry builds an entry from the comment captured before a declaration.
// A capture can span several comments when earlier ones precede other code, so only
// the text after the last opener is used.
func commentEntry(kind docs.Kind, name, comment, path string) docs.Entry {
	if i := strings.LastIndex(comment, "/**"); i >= 0 {
		comment = comment[i+len("/**"):]
	}
	e := docs.NewEntry(kind, name, name)
	e.Description = truncate(StripMarkup(cleanDocComment(comment)), MaxDescriptionLength)
	e.Content = e.Description
	e.FilePath = path
	return e
}

// parseDeclarationFile extracts exported interfaces, type aliases and declared
// variables. Declaration code is whitespace-normalized but not markup-stripped so
// generic parameters such as Array<string> survive.
func (p *Parser) parseDeclarationFile(index *docs.Index, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		p.logger.Warn("Failed to read declaration file", "path", path, "error", err)
		return
	}
	src := string(data)

	for _, m := range declInterface.FindAllStringSubmatch(src, -1) {
		e := docs.NewEntry(docs.KindInterface, m[1], m[1])
		e.Description = "Interface " + m[1]
		e.Content = truncate(normalizeSpace(m[2]), MaxContentLength)
		e.Members.Properties = interfaceProperties(m[2])
		e.FilePath = path
		p.add(index, path, e)
	}

	for _, m := range declTypeAlias.FindAllStringSubmatch(src, -1) {
		e := docs.NewEntry(docs.KindType, m[1], m[1])
		e.Description = "Type alias " + m[1]
		e.Content = truncate(normalizeSpace(m[2]), MaxContentLength)
		e.FilePath = path
		p.add(index, path, e)
	}

	for _, m := range declVariable.FindAllStringSubmatch(src, -1) {
		typ := normalizeSpace(m[2])
		e := docs.NewEntry(docs.KindVariable, m[1], m[1])
		e.Description = fmt.Sprintf("Variable %s: %s", m[1], typ)
		e.Content = typ
		e.FilePath = path
		p.add(index, path, e)
	}
}

// interfaceProperties reads "name?: type;" lines of an interface body.
func interfaceProperties(body string) []docs.Property {
	var props []docs.Property
	for _, m := range declProperty.FindAllStringSubmatch(body, -1) {
		props = append(props, docs.Property{
			Name: m[1],
			Type: strings.TrimSuffix(normalizeSpace(m[2]), ";"),
		})
	}
	return props
}

func (p *Parser) add(index *docs.Index, path string, e docs.Entry) {
	if err := index.Add(e); err != nil {
		p.logger.Warn("Rejected documentation entry", "path", path, "error", err)
	}
}

// findFiles walks root and returns files ending in ext, skipping dependency
// directories. Unreadable directories are ignored.
func findFiles(root, ext string) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == dependencyDir && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ext) {
			files = append(files, path)
		}
		return nil
	})
	return files
}
