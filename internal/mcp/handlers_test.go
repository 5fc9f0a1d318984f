package mcp

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
	"github.com/bull/demosdk-docs-mcp/internal/indexer"
	"github.com/bull/demosdk-docs-mcp/internal/storage"
)

func testIndex(t *testing.T) *docs.Index {
	t.Helper()
	idx := docs.NewIndex()

	demos := docs.NewEntry(docs.KindClass, "Demos", "websdk.Demos")
	demos.Description = "Main entry point for the Demos network"
	for _, name := range []string{"connect", "disconnect", "pay", "transfer", "confirm", "broadcast", "sign"} {
		demos.Members.Methods = append(demos.Members.Methods, docs.Method{
			Name:      name,
			Signature: name + "(): Promise<void>",
		})
	}
	demos.Members.Methods[0].Signature = "connect(rpc: string): Promise<boolean>"
	demos.Members.Methods[0].Description = "Connects to a node"
	demos.Members.Properties = []docs.Property{{Name: "connected", Type: "boolean"}}
	require.NoError(t, idx.Add(demos))

	auth := docs.NewEntry(docs.KindClass, "DemosWebAuth", "websdk.DemosWebAuth")
	require.NoError(t, idx.Add(auth))

	iface := docs.NewEntry(docs.KindInterface, "IConnectOptions", "types.IConnectOptions")
	iface.Description = "Interface IConnectOptions"
	iface.Members.Properties = []docs.Property{{Name: "rpc", Type: "string"}}
	require.NoError(t, idx.Add(iface))

	fn := docs.NewEntry(docs.KindFunction, "hashTx", "utils.hashTx")
	fn.Signature.Parameters = []docs.Parameter{{Name: "tx", Type: "Transaction", Description: "The tx to hash"}}
	fn.Signature.Returns = "string"
	require.NoError(t, idx.Add(fn))
	return idx
}

// newTestLibrary serves testIndex from a cache file.
func newTestLibrary(t *testing.T, idx *docs.Index) *indexer.Library {
	t.Helper()
	cacheFile := filepath.Join(t.TempDir(), "docs-index.json")
	require.NoError(t, storage.NewFileCache(cacheFile).Save(idx))
	return indexer.NewLibrary(indexer.NewBuilder(indexer.BuilderConfig{CacheFile: cacheFile}, nil), nil)
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestSearchHandler(t *testing.T) {
	h := makeSearchHandler(newTestLibrary(t, testIndex(t)), discardLogger())

	res, out, err := h(context.Background(), nil, SearchDocsInput{Query: "Demos"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "Demos", out.Results[0].Name)
	assert.Equal(t, 120, out.Results[0].Score) // exact name + description
	assert.Equal(t, "class", out.Results[0].Kind)
	assert.Len(t, out.Results[0].Methods, 7)

	text := resultText(t, res)
	assert.Contains(t, text, `# Search Results for "Demos"`)
	assert.Contains(t, text, "Found 2 result(s):")
	assert.Contains(t, text, "## Demos (class)")
	assert.Contains(t, text, "**Methods:** connect, disconnect, pay, transfer, confirm (and 2 more)")
	assert.Contains(t, text, "**Properties:** connected\n")
	assert.Contains(t, text, "*Relevance Score: 120*")
	assert.Contains(t, text, "get_class_docs")
}

func TestSearchHandler_TypeAndLimit(t *testing.T) {
	h := makeSearchHandler(newTestLibrary(t, testIndex(t)), discardLogger())

	_, out, err := h(context.Background(), nil, SearchDocsInput{Query: "Demos", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)

	_, out, err = h(context.Background(), nil, SearchDocsInput{Query: "rpc", Type: "interface"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "IConnectOptions", out.Results[0].Name)

	_, _, err = h(context.Background(), nil, SearchDocsInput{Query: "rpc", Type: "widget"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid type")
}

func TestSearchHandler_NoResults(t *testing.T) {
	h := makeSearchHandler(newTestLibrary(t, testIndex(t)), discardLogger())

	res, out, err := h(context.Background(), nil, SearchDocsInput{Query: "Demoz"})
	require.NoError(t, err)
	assert.Zero(t, out.Count)
	assert.NotNil(t, out.Results)
	assert.Contains(t, out.Suggestions, "Demos")

	text := resultText(t, res)
	assert.Contains(t, text, `No results found for "Demoz".`)
	assert.Contains(t, text, "Did you mean: Demos")
	assert.Contains(t, text, "Run `list_classes`")
}

func TestSearchHandler_RequiresQuery(t *testing.T) {
	h := makeSearchHandler(newTestLibrary(t, testIndex(t)), discardLogger())
	_, _, err := h(context.Background(), nil, SearchDocsInput{})
	require.Error(t, err)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 10, clampLimit(0))
	assert.Equal(t, 10, clampLimit(-3))
	assert.Equal(t, 7, clampLimit(7))
	assert.Equal(t, 50, clampLimit(500))
}

func TestClassHandler(t *testing.T) {
	h := makeClassHandler(newTestLibrary(t, testIndex(t)))

	res, out, err := h(context.Background(), nil, ClassDocsInput{ClassName: "demos"})
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, "websdk.Demos", out.Entry.FullName)
	assert.Len(t, out.Entry.Methods, 7)

	text := resultText(t, res)
	assert.Contains(t, text, "# Demos\n\nMain entry point for the Demos network\n\n## Methods\n\n")
	assert.Contains(t, text, "### connect\n```typescript\nconnect(rpc: string): Promise<boolean>\n```\n\nConnects to a node\n\n---\n\n")
	assert.Contains(t, text, "## Properties\n\n- **connected**: `boolean`\n")

	res, out, err = h(context.Background(), nil, ClassDocsInput{ClassName: "Missing"})
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Contains(t, resultText(t, res), `Class "Missing" not found.`)
}

func TestInterfaceHandler(t *testing.T) {
	h := makeInterfaceHandler(newTestLibrary(t, testIndex(t)))

	res, out, err := h(context.Background(), nil, InterfaceDocsInput{InterfaceName: "types.IConnectOptions"})
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Contains(t, resultText(t, res), "- **rpc**: `string`")

	res, out, err = h(context.Background(), nil, InterfaceDocsInput{InterfaceName: "Demos"})
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Contains(t, resultText(t, res), `Interface "Demos" not found.`)
}

func TestMethodHandler(t *testing.T) {
	h := makeMethodHandler(newTestLibrary(t, testIndex(t)))

	res, out, err := h(context.Background(), nil, MethodDocsInput{ClassName: "Demos", MethodName: "CONNECT"})
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, "Demos", out.Class)
	assert.Equal(t, "connect", out.Method.Name)
	assert.Equal(t,
		"# Demos.connect\n\n## Signature\n\n```typescript\nconnect(rpc: string): Promise<boolean>\n```\n\n## Description\n\nConnects to a node\n\n",
		resultText(t, res))

	res, out, err = h(context.Background(), nil, MethodDocsInput{ClassName: "Demos", MethodName: "fly"})
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Contains(t, resultText(t, res), `Method "fly" not found in class "Demos".`)

	_, _, err = h(context.Background(), nil, MethodDocsInput{ClassName: "Demos"})
	require.Error(t, err)
}

func TestListHandler(t *testing.T) {
	lib := newTestLibrary(t, testIndex(t))

	res, out, err := makeListHandler(lib, docs.KindClass)(context.Background(), nil, ListInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "Demos", out.Items[0].Name)
	text := resultText(t, res)
	assert.Contains(t, text, "# DemoSDK Classes (2)\n\n## Demos\nMain entry point for the Demos network\n\n## DemosWebAuth\n\n")

	res, out, err = makeListHandler(lib, docs.KindFunction)(context.Background(), nil, ListInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)
	assert.Contains(t, resultText(t, res), "# DemoSDK Functions (1)")

	res, out, err = makeListHandler(newTestLibrary(t, onlyFunctions(t)), docs.KindInterface)(context.Background(), nil, ListInput{})
	require.NoError(t, err)
	assert.Zero(t, out.Count)
	assert.NotNil(t, out.Items)
	assert.Contains(t, resultText(t, res), "No interfaces found.")
}

func onlyFunctions(t *testing.T) *docs.Index {
	idx := docs.NewIndex()
	require.NoError(t, idx.Add(docs.NewEntry(docs.KindFunction, "hashTx", "hashTx")))
	return idx
}

func TestStatusHandler(t *testing.T) {
	lib := newTestLibrary(t, testIndex(t))

	res, out, err := makeStatusHandler(lib, false)(context.Background(), nil, StatusInput{})
	require.NoError(t, err)
	assert.True(t, out.Loaded)
	assert.Equal(t, "cache", out.Strategy)
	assert.Equal(t, docs.Stats{Classes: 2, Interfaces: 1, Functions: 1, Total: 4}, out.Stats)
	assert.NotEmpty(t, out.BuiltAt)
	assert.False(t, out.Semantic)

	text := resultText(t, res)
	assert.Contains(t, text, "- Classes: 2\n")
	assert.Contains(t, text, "- **Total: 4**")
	assert.Contains(t, text, "Loaded from: cache")
	assert.Contains(t, text, "Semantic search: disabled")
}

func TestStatusHandler_NoDocumentation(t *testing.T) {
	lib := indexer.NewLibrary(indexer.NewBuilder(indexer.BuilderConfig{}, nil), nil)

	res, out, err := makeStatusHandler(lib, false)(context.Background(), nil, StatusInput{})
	require.NoError(t, err)
	assert.False(t, out.Loaded)
	assert.Equal(t, "none", out.Strategy)
	assert.Contains(t, resultText(t, res), "No documentation found")
}

func TestRefreshHandler(t *testing.T) {
	dir := t.TempDir()
	cacheFile := filepath.Join(dir, "docs-index.json")
	require.NoError(t, storage.NewFileCache(cacheFile).Save(onlyFunctions(t)))
	lib := indexer.NewLibrary(indexer.NewBuilder(indexer.BuilderConfig{CacheFile: cacheFile}, nil), nil)
	require.NoError(t, lib.EnsureInitialized(context.Background()))

	// A newer cache is only picked up by a rebuild.
	require.NoError(t, storage.NewFileCache(cacheFile).Save(testIndex(t)))
	assert.Equal(t, 1, lib.Status().Stats.Total)

	res, out, err := makeRefreshHandler(lib)(context.Background(), nil, RefreshInput{})
	require.NoError(t, err)
	assert.Equal(t, "cache", out.Strategy)
	assert.Equal(t, 4, out.Stats.Total)
	assert.Equal(t, 4, lib.Status().Stats.Total)
	assert.Contains(t, resultText(t, res), "# Documentation Index Rebuilt")
}

type fakeSemantic struct {
	hits  []indexer.SemanticHit
	err   error
	limit int
	kind  docs.Kind
}

func (f *fakeSemantic) Search(_ context.Context, _ string, limit int, kind docs.Kind) ([]indexer.SemanticHit, error) {
	f.limit, f.kind = limit, kind
	return f.hits, f.err
}

func TestSemanticHandler(t *testing.T) {
	lib := newTestLibrary(t, testIndex(t))
	entry := docs.NewEntry(docs.KindClass, "Demos", "websdk.Demos")
	entry.Description = "Main entry point"
	searcher := &fakeSemantic{hits: []indexer.SemanticHit{{Entry: entry, Score: 0.87, Summary: "s"}}}

	res, out, err := makeSemanticHandler(lib, searcher)(context.Background(), nil,
		SemanticSearchInput{Query: "open a connection", Type: "classes", Limit: 99})
	require.NoError(t, err)
	assert.Equal(t, 50, searcher.limit)
	assert.Equal(t, docs.KindClass, searcher.kind)
	require.Len(t, out.Results, 1)
	assert.Equal(t, 0.87, out.Results[0].Score)
	assert.Contains(t, resultText(t, res), "*Similarity: 0.870*")

	searcher.err = errors.New("qdrant down")
	_, _, err = makeSemanticHandler(lib, searcher)(context.Background(), nil, SemanticSearchInput{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qdrant down")
}
