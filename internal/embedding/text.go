package embedding

import (
	"fmt"
	"strings"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

// maxTextLength keeps entry texts far below the model's input limit.
const maxTextLength = 6000

// EntryText builds the text embedded for an entry: kind and qualified name, the
// description (or summary when the entry has none), member names with signatures,
// and function parameters.
func EntryText(e docs.Entry, summary string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Kind, e.FullName)
	if e.FullName != e.Name {
		fmt.Fprintf(&b, " (%s)", e.Name)
	}
	b.WriteString("\n")

	switch {
	case e.Description != "":
		b.WriteString(e.Description)
		b.WriteString("\n")
	case summary != "":
		b.WriteString(summary)
		b.WriteString("\n")
	}

	for _, m := range e.Methods() {
		b.WriteString("method ")
		if m.Signature != "" {
			b.WriteString(m.Signature)
		} else {
			b.WriteString(m.Name)
		}
		if m.Description != "" {
			b.WriteString(": ")
			b.WriteString(m.Description)
		}
		b.WriteString("\n")
	}
	for _, p := range e.Properties() {
		fmt.Fprintf(&b, "property %s", p.Name)
		if p.Type != "" {
			fmt.Fprintf(&b, ": %s", p.Type)
		}
		b.WriteString("\n")
	}
	for _, p := range e.Parameters() {
		fmt.Fprintf(&b, "param %s %s\n", p.Name, p.Type)
	}
	if r := e.Returns(); r != "" {
		fmt.Fprintf(&b, "returns %s\n", r)
	}

	text := strings.TrimSpace(b.String())
	if len(text) > maxTextLength {
		text = strings.ToValidUTF8(text[:maxTextLength], "")
	}
	return text
}
