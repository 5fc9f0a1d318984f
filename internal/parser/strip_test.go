package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello world", "hello world"},
		{"tags become spaces", "<p>one</p><p>two</p>", "one two"},
		{"script dropped", "a<script type=\"x\">var x = '<b>';</script>b", "ab"},
		{"style dropped", "<STYLE>.x{}</STYLE>text", "text"},
		{"entities", "&lt;T&gt; &amp; &quot;q&quot; &#39;s&#39;", `<T> & "q" 's'`},
		{"nbsp collapses", "a&nbsp;&nbsp;b", "a b"},
		{"double escaped amp", "&amp;lt;", "&lt;"},
		{"whitespace runs", "  a \n\t b  ", "a b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkup(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))

	// Multi-byte text is cut on character boundaries.
	s := strings.Repeat("é", 10)
	got := truncate(s, 4)
	assert.Equal(t, "éééé", got)
	assert.Len(t, []rune(truncate(strings.Repeat("x", 600), MaxDescriptionLength)), MaxDescriptionLength)
}

func TestCleanDocComment(t *testing.T) {
	in := "\n * First line.\n * Second <b>bold</b> line.\n "
	assert.Equal(t, "First line. Second bold line.", StripMarkup(cleanDocComment(in)))
}
