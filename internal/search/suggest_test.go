package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest_Misspelling(t *testing.T) {
	engine := New(testIndex(t))

	got, err := engine.Suggest("Demoz", 5)
	require.NoError(t, err)
	assert.Contains(t, got, "Demos")
	assert.NotContains(t, got, "connectWallet")
}

func TestSuggest_Prefix(t *testing.T) {
	engine := New(testIndex(t))

	got, err := engine.Suggest("demoswe", 5)
	require.NoError(t, err)
	assert.Contains(t, got, "DemosWebAuth")
}

func TestSuggest_Limits(t *testing.T) {
	engine := New(testIndex(t))

	got, err := engine.Suggest("demos", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = engine.Suggest("  ", 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = New(nil).Suggest("demos", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
