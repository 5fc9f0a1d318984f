package embedding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

func TestEntryText_Class(t *testing.T) {
	e := docs.NewEntry(docs.KindClass, "Demos", "websdk.Demos")
	e.Description = "Main SDK entry point"
	e.Members.Methods = []docs.Method{
		{Name: "connect", Signature: "connect(rpc: string): Promise<boolean>", Description: "Connects to a node"},
		{Name: "pay"},
	}
	e.Members.Properties = []docs.Property{{Name: "connected", Type: "boolean"}}

	want := strings.Join([]string{
		"class websdk.Demos (Demos)",
		"Main SDK entry point",
		"method connect(rpc: string): Promise<boolean>: Connects to a node",
		"method pay",
		"property connected: boolean",
	}, "\n")
	assert.Equal(t, want, EntryText(e, "ignored while a description exists"))
}

func TestEntryText_FunctionUsesSummary(t *testing.T) {
	e := docs.NewEntry(docs.KindFunction, "hashTx", "hashTx")
	e.Signature.Parameters = []docs.Parameter{{Name: "tx", Type: "Transaction"}}
	e.Signature.Returns = "string"

	want := "function hashTx\nHashes a transaction\nparam tx Transaction\nreturns string"
	assert.Equal(t, want, EntryText(e, "Hashes a transaction"))
}

func TestEntryText_Bounded(t *testing.T) {
	e := docs.NewEntry(docs.KindInterface, "IBig", "IBig")
	for i := 0; i < 2000; i++ {
		e.Members.Properties = append(e.Members.Properties, docs.Property{Name: "field", Type: "string"})
	}
	assert.LessOrEqual(t, len(EntryText(e, "")), maxTextLength)
}

func TestToFloat32(t *testing.T) {
	assert.Equal(t, []float32{0.5, -1, 0}, toFloat32([]float64{0.5, -1, 0}))
}
