package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const classPage = "# Demos\n\nMain SDK entry point\n\n## Methods\n\n### connect\n\n```typescript\nconnect(rpc: string): Promise<boolean>\n```\n\n### pay\n\n## Properties\n\n- **connected**: `boolean`\n"

func TestRender_ClassPage(t *testing.T) {
	page, err := NewRenderer().Render([]byte(classPage))
	require.NoError(t, err)

	assert.Equal(t, "Demos", page.Title)
	assert.Equal(t, []Heading{
		{Level: 1, Title: "Demos", ID: "demos"},
		{Level: 2, Title: "Methods", ID: "methods"},
		{Level: 3, Title: "connect", ID: "connect"},
		{Level: 3, Title: "pay", ID: "pay"},
		{Level: 2, Title: "Properties", ID: "properties"},
	}, page.Headings)

	assert.Contains(t, page.Body, `<h2 id="methods">Methods</h2>`)
	assert.Contains(t, page.Body, `<code class="language-typescript">`)
	assert.Contains(t, page.Body, "Promise&lt;boolean&gt;")
	assert.Contains(t, page.Body, "<strong>connected</strong>")

	assert.Contains(t, page.TOC, `href="#connect"`)
	assert.Contains(t, page.TOC, `href="#properties"`)
	assert.NotContains(t, page.TOC, `href="#demos"`)
}

func TestRender_NoHeadings(t *testing.T) {
	page, err := NewRenderer().Render([]byte("Just a paragraph."))
	require.NoError(t, err)

	assert.Empty(t, page.Title)
	assert.Empty(t, page.Headings)
	assert.Empty(t, page.TOC)
	assert.Contains(t, page.Body, "<p>Just a paragraph.</p>")
}

func TestRender_EscapesRawHTML(t *testing.T) {
	page, err := NewRenderer().Render([]byte("# X\n\n<script>alert(1)</script>\n"))
	require.NoError(t, err)
	assert.NotContains(t, page.Body, "<script>")
}
