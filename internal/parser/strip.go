package parser

import (
	"regexp"
	"strings"
)

const (
	// MaxDescriptionLength bounds entry descriptions at extraction.
	MaxDescriptionLength = 500
	// MaxMethodDescriptionLength bounds method descriptions.
	MaxMethodDescriptionLength = 300
	// MaxContentLength bounds the raw text kept as a search fallback corpus.
	MaxContentLength = 5000
)

var (
	scriptBlock = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleBlock  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	anyTag      = regexp.MustCompile(`<[^>]+>`)
	spaceRun    = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
)

// entities are replaced one after another, in this order, in a single pass each:
// "&amp;lt;" ends up as "&lt;", not "<".
var entities = [][2]string{
	{"&nbsp;", " "},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&amp;", "&"},
	{"&quot;", `"`},
	{"&#39;", "'"},
}

// StripMarkup turns an HTML fragment into plain text: script and style blocks are
// dropped, tags become spaces, the standard entities are unescaped and whitespace
// runs collapse to a single space.
func StripMarkup(html string) string {
	s := scriptBlock.ReplaceAllString(html, "")
	s = styleBlock.ReplaceAllString(s, "")
	s = anyTag.ReplaceAllString(s, " ")
	for _, e := range entities {
		s = strings.ReplaceAll(s, e[0], e[1])
	}
	return normalizeSpace(s)
}

// normalizeSpace collapses whitespace runs and trims the ends.
func normalizeSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// cleanDocComment removes the leading asterisks of a block comment body.
func cleanDocComment(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		lines[i] = strings.TrimLeft(line, "*")
	}
	return strings.Join(lines, "\n")
}
