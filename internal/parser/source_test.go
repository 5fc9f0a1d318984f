package parser

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

const entrySource = `
/**
 * Main SDK class.
 * Handles <b>connections</b>.
 */
export class Demos {}

const internal = 1;

/** Hashes data */
export async function hashData(input) {}

function undocumented() {}
`

const declarations = `
export interface ConnectOptions {
  rpc: string;
  timeout?: number;
  readonly headers: Record<string, string>;
  connect(url: string): Promise<void>;
}
export declare type Address = string;
export type Handler<T> = (value: T) => void;
export declare const DEFAULT_RPC: string;
`

func TestParseSourceFallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"name":"sdk","main":"dist/main.js"}`)
	writeFile(t, filepath.Join(root, "dist", "main.js"), entrySource)
	writeFile(t, filepath.Join(root, "types", "index.d.ts"), declarations)
	writeFile(t, filepath.Join(root, "node_modules", "dep", "index.d.ts"), `export interface Hidden { a: string; }`)

	idx, err := New(nil).ParseSourceFallback(root)
	require.NoError(t, err)

	assert.Equal(t, docs.Stats{Classes: 1, Interfaces: 1, Functions: 1, Types: 2, Variables: 1, Total: 6}, idx.Stats())

	class := idx.Entries(docs.KindClass)[0]
	assert.Equal(t, "Demos", class.Name)
	assert.Contains(t, class.Description, "Main SDK class.")
	assert.Contains(t, class.Description, "Handles connections")
	assert.Equal(t, class.Description, class.Content)

	fn := idx.Entries(docs.KindFunction)[0]
	assert.Equal(t, "hashData", fn.Name)
	assert.Equal(t, "Hashes data", fn.Description)

	iface := idx.Entries(docs.KindInterface)[0]
	assert.Equal(t, "ConnectOptions", iface.Name)
	assert.Equal(t, "Interface ConnectOptions", iface.Description)
	assert.Equal(t, []docs.Property{
		{Name: "rpc", Type: "string"},
		{Name: "timeout", Type: "number"},
		{Name: "headers", Type: "Record<string, string>"},
	}, iface.Properties())
	assert.Contains(t, iface.Content, "Record<string, string>")

	var typeNames []string
	for _, e := range idx.Entries(docs.KindType) {
		typeNames = append(typeNames, e.Name)
	}
	assert.Equal(t, []string{"Address", "Handler"}, typeNames)
	assert.Equal(t, "(value: T) => void", idx.Entries(docs.KindType)[1].Content)

	v := idx.Entries(docs.KindVariable)[0]
	assert.Equal(t, "DEFAULT_RPC", v.Name)
	assert.Equal(t, "Variable DEFAULT_RPC: string", v.Description)
}

func TestParseSourceFallback_DefaultsToIndexJS(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"name":"sdk"}`)
	writeFile(t, filepath.Join(root, "index.js"), "/** Wallet helper */\nclass Wallet {}\n")

	idx, err := New(nil).ParseSourceFallback(root)
	require.NoError(t, err)
	require.Equal(t, 1, idx.Count(docs.KindClass))
	assert.Equal(t, "Wallet helper", idx.Entries(docs.KindClass)[0].Description)
}

func TestParseSourceFallback_MissingEntryFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"module":"esm/index.js"}`)
	writeFile(t, filepath.Join(root, "index.d.ts"), "export declare let counter: number;\n")

	idx, err := New(nil).ParseSourceFallback(root)
	require.NoError(t, err)
	assert.Equal(t, 1, idx.TotalCount())
	assert.Equal(t, 1, idx.Count(docs.KindVariable))
}

func TestParseSourceFallback_NoManifest(t *testing.T) {
	idx, err := New(nil).ParseSourceFallback(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingInput))
	assert.True(t, idx.Empty())
}

func TestParseSourceFallback_InvalidManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{not json`)

	_, err := New(nil).ParseSourceFallback(root)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMissingInput))
}
