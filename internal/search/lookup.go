package search

import (
	"strings"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

// MethodMatch is a method found on a class.
type MethodMatch struct {
	Class  string
	Method docs.Method
}

// EntryByName returns the first entry of kind whose name or full name equals name,
// ignoring case.
func (e *Engine) EntryByName(kind docs.Kind, name string) (docs.Entry, bool) {
	for _, entry := range e.index.Entries(kind) {
		if entry.MatchesName(name) {
			return entry.Clone(), true
		}
	}
	return docs.Entry{}, false
}

// ClassDocs looks up a class by name or full name.
func (e *Engine) ClassDocs(className string) (docs.Entry, bool) {
	return e.EntryByName(docs.KindClass, className)
}

// InterfaceDocs looks up an interface by name or full name.
func (e *Engine) InterfaceDocs(interfaceName string) (docs.Entry, bool) {
	return e.EntryByName(docs.KindInterface, interfaceName)
}

// MethodDocs finds methodName on the class ClassDocs(className) returns. Only that
// first matching class is searched.
func (e *Engine) MethodDocs(className, methodName string) (MethodMatch, bool) {
	class, ok := e.ClassDocs(className)
	if !ok {
		return MethodMatch{}, false
	}
	for _, m := range class.Methods() {
		if strings.EqualFold(m.Name, methodName) {
			return MethodMatch{Class: class.Name, Method: m}, true
		}
	}
	return MethodMatch{}, false
}

// List projects every entry of kind to its summary, in index order.
func (e *Engine) List(kind docs.Kind) []docs.Summary {
	entries := e.index.Entries(kind)
	out := make([]docs.Summary, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Summary())
	}
	return out
}

func (e *Engine) ListClasses() []docs.Summary    { return e.List(docs.KindClass) }
func (e *Engine) ListInterfaces() []docs.Summary { return e.List(docs.KindInterface) }
func (e *Engine) ListFunctions() []docs.Summary  { return e.List(docs.KindFunction) }
