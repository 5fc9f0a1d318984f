package mcp

import (
	"fmt"
	"strings"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
	"github.com/bull/demosdk-docs-mcp/internal/indexer"
	"github.com/bull/demosdk-docs-mcp/internal/search"
)

// previewMembers is how many method and property names a search result lists.
const previewMembers = 5

const classDocsHint = "\nℹ️ Use `get_class_docs` with a class name to see full documentation."

func formatSearchResults(query string, results []search.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Search Results for %q\n\n", query)
	fmt.Fprintf(&b, "Found %d result(s):\n\n", len(results))

	for _, r := range results {
		e := r.Entry
		fmt.Fprintf(&b, "## %s (%s)\n", e.Name, r.Category)
		if e.Description != "" {
			b.WriteString(e.Description + "\n\n")
		}
		writePreview(&b, "Methods", methodNames(e.Methods()))
		writePreview(&b, "Properties", propertyNames(e.Properties()))
		fmt.Fprintf(&b, "*Relevance Score: %d*\n\n", r.Score)
		b.WriteString("---\n\n")
	}

	b.WriteString(classDocsHint)
	return b.String()
}

func writePreview(b *strings.Builder, label string, names []string) {
	if len(names) == 0 {
		return
	}
	shown := names
	if len(shown) > previewMembers {
		shown = shown[:previewMembers]
	}
	fmt.Fprintf(b, "**%s:** %s", label, strings.Join(shown, ", "))
	if extra := len(names) - len(shown); extra > 0 {
		fmt.Fprintf(b, " (and %d more)", extra)
	}
	b.WriteString("\n\n")
}

func formatNoResults(query string, suggestions []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "No results found for %q.\n\n", query)
	if len(suggestions) > 0 {
		fmt.Fprintf(&b, "Did you mean: %s?\n\n", strings.Join(suggestions, ", "))
	}
	b.WriteString("Try:\n")
	b.WriteString("- Searching for a class name (e.g., \"Demos\")\n")
	b.WriteString("- Searching for a method (e.g., \"connect\")\n")
	b.WriteString("- Using broader terms\n\n")
	b.WriteString("Run `list_classes` to see all available classes.")
	return b.String()
}

// formatEntry renders the full page of an entry. Classes and interfaces list their
// methods and properties; functions list parameters and the return type.
func formatEntry(e docs.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", e.Name)
	if e.Description != "" {
		b.WriteString(e.Description + "\n\n")
	}

	if methods := e.Methods(); len(methods) > 0 {
		b.WriteString("## Methods\n\n")
		for _, m := range methods {
			fmt.Fprintf(&b, "### %s\n", m.Name)
			if m.Signature != "" {
				fmt.Fprintf(&b, "```typescript\n%s\n```\n\n", m.Signature)
			}
			if m.Description != "" {
				b.WriteString(m.Description + "\n\n")
			}
			b.WriteString("---\n\n")
		}
	}

	if props := e.Properties(); len(props) > 0 {
		b.WriteString("## Properties\n\n")
		for _, p := range props {
			fmt.Fprintf(&b, "- **%s**", p.Name)
			if p.Type != "" {
				fmt.Fprintf(&b, ": `%s`", p.Type)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if params := e.Parameters(); len(params) > 0 {
		b.WriteString("## Parameters\n\n")
		for _, p := range params {
			fmt.Fprintf(&b, "- **%s**", p.Name)
			if p.Type != "" {
				fmt.Fprintf(&b, ": `%s`", p.Type)
			}
			if p.Description != "" {
				b.WriteString(" - " + p.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if ret := e.Returns(); ret != "" {
		fmt.Fprintf(&b, "## Returns\n\n`%s`\n\n", ret)
	}

	return b.String()
}

func formatMethod(m search.MethodMatch) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s.%s\n\n", m.Class, m.Method.Name)
	if m.Method.Signature != "" {
		fmt.Fprintf(&b, "## Signature\n\n```typescript\n%s\n```\n\n", m.Method.Signature)
	}
	if m.Method.Description != "" {
		fmt.Fprintf(&b, "## Description\n\n%s\n\n", m.Method.Description)
	}
	return b.String()
}

// listings holds the headings and hints of the listing tools.
var listings = map[docs.Kind]struct {
	title  string
	plural string
	hint   string
}{
	docs.KindClass:     {"DemoSDK Classes", "classes", classDocsHint},
	docs.KindInterface: {"DemoSDK Interfaces", "interfaces", "\nℹ️ Use `get_interface_docs` with an interface name to see its properties."},
	docs.KindFunction:  {"DemoSDK Functions", "functions", "\nℹ️ Use `search_demosdk_docs` with type `function` to see parameters and return types."},
}

func formatList(kind docs.Kind, items []docs.Summary) string {
	l := listings[kind]
	if len(items) == 0 {
		return fmt.Sprintf("No %s found. Run the `update` command to generate documentation.", l.plural)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%d)\n\n", l.title, len(items))
	for _, item := range items {
		fmt.Fprintf(&b, "## %s\n", item.Name)
		if item.Description != "" {
			b.WriteString(item.Description + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(l.hint)
	return b.String()
}

func formatStats(title string, stats docs.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- Classes: %d\n", stats.Classes)
	fmt.Fprintf(&b, "- Interfaces: %d\n", stats.Interfaces)
	fmt.Fprintf(&b, "- Functions: %d\n", stats.Functions)
	fmt.Fprintf(&b, "- Enums: %d\n", stats.Enums)
	fmt.Fprintf(&b, "- Types: %d\n", stats.Types)
	fmt.Fprintf(&b, "- Variables: %d\n", stats.Variables)
	fmt.Fprintf(&b, "- **Total: %d**\n", stats.Total)
	return b.String()
}

func formatStatus(status indexer.Status, semantic bool) string {
	if !status.Initialized {
		return "Documentation index not loaded yet."
	}

	var b strings.Builder
	b.WriteString(formatStats("DemoSDK Documentation Index", status.Stats))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Loaded from: %s\n", status.Strategy)
	fmt.Fprintf(&b, "Built at: %s\n", status.BuiltAt.UTC().Format("2006-01-02T15:04:05Z07:00"))
	if semantic {
		b.WriteString("Semantic search: enabled\n")
	} else {
		b.WriteString("Semantic search: disabled\n")
	}
	if status.Stats.Total == 0 {
		b.WriteString("\n⚠️ No documentation found. Run the `update` command first.\n")
	}
	return b.String()
}

func formatSemanticResults(query string, hits []indexer.SemanticHit) string {
	if len(hits) == 0 {
		return fmt.Sprintf("No semantic matches found for %q. Try `search_demosdk_docs` with a name.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Semantic Results for %q\n\n", query)
	for _, h := range hits {
		fmt.Fprintf(&b, "## %s (%s)\n", h.Entry.Name, h.Entry.Kind)
		switch {
		case h.Entry.Description != "":
			b.WriteString(h.Entry.Description + "\n\n")
		case h.Summary != "":
			b.WriteString(h.Summary + "\n\n")
		}
		if h.Stale {
			b.WriteString("*Not in the loaded index; the vector store may be out of date.*\n\n")
		}
		fmt.Fprintf(&b, "*Similarity: %.3f*\n\n---\n\n", h.Score)
	}
	return b.String()
}

func methodNames(methods []docs.Method) []string {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.Name
	}
	return names
}

func propertyNames(props []docs.Property) []string {
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Name
	}
	return names
}
