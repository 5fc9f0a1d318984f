package search

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

func testIndex(t *testing.T) *docs.Index {
	t.Helper()
	idx := docs.NewIndex()

	demos := docs.NewEntry(docs.KindClass, "Demos", "websdk.Demos")
	demos.Description = "Main SDK entry point"
	demos.Members.Methods = []docs.Method{
		{Name: "connect", Signature: "connect(rpc: string): Promise<boolean>", Description: "Open a connection to a node"},
		{Name: "disconnect", Signature: "disconnect(): void"},
	}
	demos.Members.Properties = []docs.Property{{Name: "connected", Type: "boolean"}}
	require.NoError(t, idx.Add(demos))

	auth := docs.NewEntry(docs.KindClass, "DemosWebAuth", "websdk.DemosWebAuth")
	auth.Description = "Browser wallet authentication"
	require.NoError(t, idx.Add(auth))

	opts := docs.NewEntry(docs.KindInterface, "IConnectOptions", "IConnectOptions")
	opts.Members.Properties = []docs.Property{{Name: "rpc", Type: "string"}}
	require.NoError(t, idx.Add(opts))

	require.NoError(t, idx.Add(docs.NewEntry(docs.KindFunction, "connectWallet", "utils.connectWallet")))
	require.NoError(t, idx.Add(docs.NewEntry(docs.KindFunction, "getDemosInstance", "getDemosInstance")))
	return idx
}

func names(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Entry.Name)
	}
	return out
}

func TestSearch_ScoringTable(t *testing.T) {
	engine := New(testIndex(t))

	results := engine.Search("connect", Options{})
	require.Len(t, results, 3)

	// exact method 80 + method description 15 + method contains 40 + property contains 35
	assert.Equal(t, "Demos", results[0].Entry.Name)
	assert.Equal(t, 170, results[0].Score)
	assert.Equal(t, docs.KindClass, results[0].Category)

	assert.Equal(t, "connectWallet", results[1].Entry.Name)
	assert.Equal(t, 75, results[1].Score)
	assert.Equal(t, "IConnectOptions", results[2].Entry.Name)
	assert.Equal(t, 50, results[2].Score)
}

func TestSearch_NameTiersAreExclusive(t *testing.T) {
	engine := New(testIndex(t))

	results := engine.Search("DEMOS", Options{})
	require.Len(t, results, 3)
	assert.Equal(t, []string{"Demos", "DemosWebAuth", "getDemosInstance"}, names(results))
	assert.Equal(t, 100, results[0].Score)
	assert.Equal(t, 75, results[1].Score)
	assert.Equal(t, 50, results[2].Score)
}

func TestSearch_ExactMethodOnly(t *testing.T) {
	idx := docs.NewIndex()
	demos := docs.NewEntry(docs.KindClass, "Demos", "Demos")
	demos.Members.Methods = []docs.Method{{Name: "connect"}}
	require.NoError(t, idx.Add(demos))

	results := New(idx).Search("connect", Options{})
	require.Len(t, results, 1)
	assert.Equal(t, 80, results[0].Score)
}

func TestSearch_DescriptionAndContent(t *testing.T) {
	idx := docs.NewIndex()
	e := docs.NewEntry(docs.KindEnum, "Network", "Network")
	e.Description = "Supported chains"
	e.Content = "Network Supported chains mainnet testnet"
	require.NoError(t, idx.Add(e))

	results := New(idx).Search("chains", Options{})
	require.Len(t, results, 1)
	assert.Equal(t, 30, results[0].Score)

	results = New(idx).Search("testnet", Options{})
	require.Len(t, results, 1)
	assert.Equal(t, 10, results[0].Score)
}

func TestSearch_EmptyQuery(t *testing.T) {
	engine := New(testIndex(t))
	for _, q := range []string{"", "   ", "\t\n"} {
		assert.Empty(t, engine.Search(q, Options{}), "query %q", q)
	}
}

func TestSearch_NoMatch(t *testing.T) {
	assert.Empty(t, New(testIndex(t)).Search("zzz", Options{}))
	assert.Empty(t, New(nil).Search("demos", Options{}))
}

func TestSearch_KindFilter(t *testing.T) {
	engine := New(testIndex(t))

	results := engine.Search("connect", Options{Kind: docs.KindFunction})
	assert.Equal(t, []string{"connectWallet"}, names(results))

	assert.Empty(t, engine.Search("connect", Options{Kind: docs.KindEnum}))
}

func TestSearch_LimitAndOrder(t *testing.T) {
	idx := docs.NewIndex()
	for i := 0; i < 12; i++ {
		require.NoError(t, idx.Add(docs.NewEntry(docs.KindFunction, fmt.Sprintf("fn%d", i), "")))
	}
	exact := docs.NewEntry(docs.KindVariable, "fn", "fn")
	require.NoError(t, idx.Add(exact))
	engine := New(idx)

	results := engine.Search("fn", Options{})
	require.Len(t, results, DefaultLimit)
	assert.Equal(t, "fn", results[0].Entry.Name)
	// Ties keep index order.
	assert.Equal(t, []string{"fn", "fn0", "fn1", "fn2"}, names(results[:4]))

	for _, n := range []int{1, 3, 13, 50} {
		results := engine.Search("fn", Options{Limit: n})
		assert.LessOrEqual(t, len(results), n)
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
		}
	}
}

func TestSearch_ZeroLimitSelectsDefault(t *testing.T) {
	idx := docs.NewIndex()
	for i := range DefaultLimit + 5 {
		require.NoError(t, idx.Add(docs.NewEntry(docs.KindFunction, fmt.Sprintf("fn%d", i), fmt.Sprintf("fn%d", i))))
	}
	engine := New(idx)

	assert.Len(t, engine.Search("fn", Options{}), DefaultLimit)
	assert.Len(t, engine.Search("fn", Options{Limit: -1}), DefaultLimit)
	assert.Len(t, engine.Search("fn", Options{Limit: 1}), 1)
}

func TestSearch_ResultsAreCopies(t *testing.T) {
	engine := New(testIndex(t))

	results := engine.Search("demos", Options{Limit: 1})
	require.Len(t, results, 1)
	results[0].Entry.Members.Methods[0].Name = "mutated"
	results[0].Entry.Description = "mutated"

	class, ok := engine.ClassDocs("Demos")
	require.True(t, ok)
	assert.Equal(t, "connect", class.Methods()[0].Name)
	assert.Equal(t, "Main SDK entry point", class.Description)
}

func TestSearch_SurvivesCacheRoundTrip(t *testing.T) {
	idx := testIndex(t)
	data, err := json.Marshal(idx)
	require.NoError(t, err)

	reloaded := docs.NewIndex()
	require.NoError(t, json.Unmarshal(data, reloaded))
	assert.Equal(t, idx.TotalCount(), reloaded.TotalCount())

	for _, q := range []string{"connect", "demos", "rpc", "wallet"} {
		before := New(idx).Search(q, Options{})
		after := New(reloaded).Search(q, Options{})
		require.Len(t, after, len(before), q)
		for i := range before {
			assert.Equal(t, before[i].Entry.FullName, after[i].Entry.FullName, q)
			assert.Equal(t, before[i].Score, after[i].Score, q)
		}
	}
}

func TestStats(t *testing.T) {
	stats := New(testIndex(t)).Stats()
	assert.Equal(t, docs.Stats{Classes: 2, Interfaces: 1, Functions: 2, Total: 5}, stats)
}
