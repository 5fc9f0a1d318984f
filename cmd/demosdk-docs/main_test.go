package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
	"github.com/bull/demosdk-docs-mcp/internal/indexer"
	"github.com/bull/demosdk-docs-mcp/internal/storage"
)

// setupEnv points the CLI at an isolated docs directory, optionally seeded with a cache.
func setupEnv(t *testing.T, idx *docs.Index) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DEMOSDK_DOCS_DIR", dir)
	t.Setenv("DEMOSDK_INDEX_FILE", filepath.Join(dir, "docs-index.json"))
	t.Setenv("DEMOSDK_API_REF_DIR", filepath.Join(dir, "api-ref"))
	t.Setenv("DEMOSDK_SDK_PATH", filepath.Join(dir, "sdk"))
	t.Setenv("QDRANT_HOST", "")
	t.Setenv("LOG_LEVEL", "error")

	if idx != nil {
		require.NoError(t, storage.NewFileCache(filepath.Join(dir, "docs-index.json")).Save(idx))
	}
}

func cliIndex(t *testing.T) *docs.Index {
	t.Helper()
	idx := docs.NewIndex()

	demos := docs.NewEntry(docs.KindClass, "Demos", "websdk.Demos")
	demos.Description = "Main SDK entry point\nSecond line"
	demos.Members.Methods = []docs.Method{{Name: "connect", Signature: "connect(rpc: string): Promise<boolean>"}}
	require.NoError(t, idx.Add(demos))

	opts := docs.NewEntry(docs.KindInterface, "IConnectOptions", "types.IConnectOptions")
	require.NoError(t, idx.Add(opts))

	require.NoError(t, idx.Add(docs.NewEntry(docs.KindFunction, "hashTx", "utils.hashTx")))
	return idx
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSearchCmd(t *testing.T) {
	setupEnv(t, cliIndex(t))

	out, err := run(t, "search", "connect")
	require.NoError(t, err)
	assert.Contains(t, out, "class      Demos")
	assert.Contains(t, out, "interface  IConnectOptions")
	assert.Contains(t, out, "Main SDK entry point\n")
	assert.NotContains(t, out, "Second line")
}

func TestSearchCmd_TypeFilter(t *testing.T) {
	setupEnv(t, cliIndex(t))

	out, err := run(t, "search", "--type", "interfaces", "connect")
	require.NoError(t, err)
	assert.Contains(t, out, "IConnectOptions")
	assert.NotContains(t, out, "Demos")

	_, err = run(t, "search", "--type", "widget", "connect")
	assert.ErrorIs(t, err, docs.ErrUnknownKind)
}

func TestSearchCmd_NoResults(t *testing.T) {
	setupEnv(t, cliIndex(t))

	out, err := run(t, "search", "zzzzzz")
	require.NoError(t, err)
	assert.Contains(t, out, `No results for "zzzzzz"`)
}

func TestStatsCmd(t *testing.T) {
	setupEnv(t, cliIndex(t))

	out, err := run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded from: cache")
	assert.Contains(t, out, "  Classes:    1\n")
	assert.Contains(t, out, "  Interfaces: 1\n")
	assert.Contains(t, out, "  Total:      3\n")
}

func TestStatsCmd_NoDocumentation(t *testing.T) {
	setupEnv(t, nil)

	_, err := run(t, "stats")
	require.Error(t, err)
	assert.True(t, errors.Is(err, indexer.ErrNoDocumentation))
}

func TestSyncCmd_RequiresQdrant(t *testing.T) {
	setupEnv(t, cliIndex(t))

	_, err := run(t, "sync")
	assert.EqualError(t, err, "QDRANT_HOST is not set")
}

func TestInvalidConfig(t *testing.T) {
	setupEnv(t, cliIndex(t))
	t.Setenv("QDRANT_PORT", "not-a-port")

	_, err := run(t, "stats")
	assert.ErrorContains(t, err, "QDRANT_PORT")
}
