// Package mcp exposes the DemoSDK documentation index as MCP tools and serves the
// companion HTTP endpoints.
package mcp

import "github.com/bull/demosdk-docs-mcp/internal/docs"

// SearchDocsInput defines the input parameters for the search_demosdk_docs tool.
type SearchDocsInput struct {
	// Query is matched against entry names, descriptions, members and content.
	Query string `json:"query" jsonschema:"Search query (e.g. Demos, connect, transaction)"`
	// Type restricts results to one kind.
	Type string `json:"type,omitempty" jsonschema:"Filter by type: class, interface, function, enum, type or variable"`
	// Limit caps the number of results.
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10, max 50)"`
}

// SearchDocsOutput contains the ranked results.
type SearchDocsOutput struct {
	Query       string      `json:"query"`
	Count       int         `json:"count"`
	Results     []SearchHit `json:"results"`
	Suggestions []string    `json:"suggestions,omitempty"` // names close to the query when nothing matched
}

// SearchHit is one ranked entry.
type SearchHit struct {
	Name        string   `json:"name"`
	FullName    string   `json:"fullName"`
	Kind        string   `json:"kind"`
	Description string   `json:"description,omitempty"`
	Score       int      `json:"score"`
	Methods     []string `json:"methods,omitempty"`
	Properties  []string `json:"properties,omitempty"`
}

// ClassDocsInput defines the input parameters for the get_class_docs tool.
type ClassDocsInput struct {
	ClassName string `json:"className" jsonschema:"Name of the class (e.g. Demos, DemosWebAuth)"`
}

// InterfaceDocsInput defines the input parameters for the get_interface_docs tool.
type InterfaceDocsInput struct {
	InterfaceName string `json:"interfaceName" jsonschema:"Name of the interface"`
}

// EntryDocsOutput contains a looked-up entry.
type EntryDocsOutput struct {
	Found bool      `json:"found"`
	Entry *EntryDoc `json:"entry,omitempty"`
}

// EntryDoc is the structured form of an entry page.
type EntryDoc struct {
	Kind        string           `json:"kind"`
	Name        string           `json:"name"`
	FullName    string           `json:"fullName"`
	Description string           `json:"description,omitempty"`
	Methods     []docs.Method    `json:"methods,omitempty"`
	Properties  []docs.Property  `json:"properties,omitempty"`
	Parameters  []docs.Parameter `json:"parameters,omitempty"`
	Returns     string           `json:"returns,omitempty"`
}

// MethodDocsInput defines the input parameters for the get_method_docs tool.
type MethodDocsInput struct {
	ClassName  string `json:"className" jsonschema:"Name of the class"`
	MethodName string `json:"methodName" jsonschema:"Name of the method"`
}

// MethodDocsOutput contains a looked-up method.
type MethodDocsOutput struct {
	Found  bool         `json:"found"`
	Class  string       `json:"class,omitempty"`
	Method *docs.Method `json:"method,omitempty"`
}

// ListInput is shared by the listing tools, which take no parameters.
type ListInput struct{}

// ListOutput contains every entry of one kind.
type ListOutput struct {
	Kind  string         `json:"kind"`
	Count int            `json:"count"`
	Items []docs.Summary `json:"items"`
}

// StatusInput defines the input parameters for the get_index_status tool.
type StatusInput struct{}

// StatusOutput describes the loaded index.
type StatusOutput struct {
	Loaded   bool       `json:"loaded"`
	Strategy string     `json:"strategy"`
	BuiltAt  string     `json:"builtAt,omitempty"` // RFC 3339
	Stats    docs.Stats `json:"stats"`
	Semantic bool       `json:"semantic"`
}

// RefreshInput defines the input parameters for the refresh_docs_index tool.
type RefreshInput struct{}

// RefreshOutput reports a completed rebuild.
type RefreshOutput struct {
	Strategy string     `json:"strategy"`
	Duration string     `json:"duration"`
	Stats    docs.Stats `json:"stats"`
}

// SemanticSearchInput defines the input parameters for the semantic_search_demosdk_docs tool.
type SemanticSearchInput struct {
	Query string `json:"query" jsonschema:"Natural-language description of what you are looking for"`
	Type  string `json:"type,omitempty" jsonschema:"Filter by type: class, interface, function, enum, type or variable"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10, max 50)"`
}

// SemanticSearchOutput contains vector search results.
type SemanticSearchOutput struct {
	Query   string        `json:"query"`
	Results []SemanticHit `json:"results"`
}

// SemanticHit is one vector search result.
type SemanticHit struct {
	Name        string  `json:"name"`
	FullName    string  `json:"fullName"`
	Kind        string  `json:"kind"`
	Description string  `json:"description,omitempty"`
	Summary     string  `json:"summary,omitempty"`
	Score       float64 `json:"score"`
	Stale       bool    `json:"stale,omitempty"`
}

func entryDoc(e docs.Entry) *EntryDoc {
	return &EntryDoc{
		Kind:        string(e.Kind),
		Name:        e.Name,
		FullName:    e.FullName,
		Description: e.Description,
		Methods:     e.Methods(),
		Properties:  e.Properties(),
		Parameters:  e.Parameters(),
		Returns:     e.Returns(),
	}
}
