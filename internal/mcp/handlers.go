package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
	"github.com/bull/demosdk-docs-mcp/internal/indexer"
	"github.com/bull/demosdk-docs-mcp/internal/search"
)

// maxSuggestions caps the "did you mean" names offered when a search finds nothing.
const maxSuggestions = 5

// SemanticSearcher answers natural-language queries. *indexer.SemanticSearch implements it.
type SemanticSearcher interface {
	Search(ctx context.Context, query string, limit int, kind docs.Kind) ([]indexer.SemanticHit, error)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// clampLimit applies the default and upper bound to a user-supplied limit.
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return search.DefaultLimit
	case limit > search.MaxLimit:
		return search.MaxLimit
	}
	return limit
}

// parseType maps the optional type filter to a kind; empty means every kind.
func parseType(s string) (docs.Kind, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	kind, err := docs.ParseKind(s)
	if err != nil {
		return "", fmt.Errorf("invalid type %q: use class, interface, function, enum, type or variable", s)
	}
	return kind, nil
}

// engine makes sure documentation is loaded and returns the current engine.
func engine(ctx context.Context, lib *indexer.Library) (*search.Engine, error) {
	if err := lib.EnsureInitialized(ctx); err != nil {
		return nil, fmt.Errorf("failed to load documentation: %w", err)
	}
	return lib.Engine(), nil
}

// makeSearchHandler creates the search_demosdk_docs tool handler.
func makeSearchHandler(lib *indexer.Library, logger *slog.Logger) func(
	context.Context, *mcp.CallToolRequest, SearchDocsInput,
) (*mcp.CallToolResult, SearchDocsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchDocsInput) (
		*mcp.CallToolResult, SearchDocsOutput, error,
	) {
		if input.Query == "" {
			return nil, SearchDocsOutput{}, errors.New("query parameter is required")
		}
		kind, err := parseType(input.Type)
		if err != nil {
			return nil, SearchDocsOutput{}, err
		}
		eng, err := engine(ctx, lib)
		if err != nil {
			return nil, SearchDocsOutput{}, err
		}

		results := eng.Search(input.Query, search.Options{Kind: kind, Limit: clampLimit(input.Limit)})
		out := SearchDocsOutput{
			Query:   input.Query,
			Count:   len(results),
			Results: make([]SearchHit, 0, len(results)),
		}

		if len(results) == 0 {
			suggestions, err := eng.Suggest(input.Query, maxSuggestions)
			if err != nil {
				logger.Warn("Suggestions unavailable", "query", input.Query, "error", err)
			}
			out.Suggestions = suggestions
			return textResult(formatNoResults(input.Query, suggestions)), out, nil
		}

		for _, r := range results {
			out.Results = append(out.Results, SearchHit{
				Name:        r.Entry.Name,
				FullName:    r.Entry.FullName,
				Kind:        string(r.Category),
				Description: r.Entry.Description,
				Score:       r.Score,
				Methods:     methodNames(r.Entry.Methods()),
				Properties:  propertyNames(r.Entry.Properties()),
			})
		}
		return textResult(formatSearchResults(input.Query, results)), out, nil
	}
}

// makeClassHandler creates the get_class_docs tool handler.
func makeClassHandler(lib *indexer.Library) func(
	context.Context, *mcp.CallToolRequest, ClassDocsInput,
) (*mcp.CallToolResult, EntryDocsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ClassDocsInput) (
		*mcp.CallToolResult, EntryDocsOutput, error,
	) {
		if input.ClassName == "" {
			return nil, EntryDocsOutput{}, errors.New("className parameter is required")
		}
		eng, err := engine(ctx, lib)
		if err != nil {
			return nil, EntryDocsOutput{}, err
		}

		class, ok := eng.ClassDocs(input.ClassName)
		if !ok {
			text := fmt.Sprintf("Class %q not found.\n\nRun `list_classes` to see all available classes.", input.ClassName)
			return textResult(text), EntryDocsOutput{}, nil
		}
		return textResult(formatEntry(class)), EntryDocsOutput{Found: true, Entry: entryDoc(class)}, nil
	}
}

// makeInterfaceHandler creates the get_interface_docs tool handler.
func makeInterfaceHandler(lib *indexer.Library) func(
	context.Context, *mcp.CallToolRequest, InterfaceDocsInput,
) (*mcp.CallToolResult, EntryDocsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input InterfaceDocsInput) (
		*mcp.CallToolResult, EntryDocsOutput, error,
	) {
		if input.InterfaceName == "" {
			return nil, EntryDocsOutput{}, errors.New("interfaceName parameter is required")
		}
		eng, err := engine(ctx, lib)
		if err != nil {
			return nil, EntryDocsOutput{}, err
		}

		iface, ok := eng.InterfaceDocs(input.InterfaceName)
		if !ok {
			text := fmt.Sprintf("Interface %q not found.\n\nRun `list_interfaces` to see all available interfaces.", input.InterfaceName)
			return textResult(text), EntryDocsOutput{}, nil
		}
		return textResult(formatEntry(iface)), EntryDocsOutput{Found: true, Entry: entryDoc(iface)}, nil
	}
}

// makeMethodHandler creates the get_method_docs tool handler.
func makeMethodHandler(lib *indexer.Library) func(
	context.Context, *mcp.CallToolRequest, MethodDocsInput,
) (*mcp.CallToolResult, MethodDocsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input MethodDocsInput) (
		*mcp.CallToolResult, MethodDocsOutput, error,
	) {
		if input.ClassName == "" || input.MethodName == "" {
			return nil, MethodDocsOutput{}, errors.New("className and methodName parameters are required")
		}
		eng, err := engine(ctx, lib)
		if err != nil {
			return nil, MethodDocsOutput{}, err
		}

		match, ok := eng.MethodDocs(input.ClassName, input.MethodName)
		if !ok {
			text := fmt.Sprintf("Method %q not found in class %q.\n\nUse `get_class_docs` to see all methods of the class.",
				input.MethodName, input.ClassName)
			return textResult(text), MethodDocsOutput{}, nil
		}
		method := match.Method
		return textResult(formatMethod(match)), MethodDocsOutput{Found: true, Class: match.Class, Method: &method}, nil
	}
}

// makeListHandler creates a listing tool handler for one kind.
func makeListHandler(lib *indexer.Library, kind docs.Kind) func(
	context.Context, *mcp.CallToolRequest, ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (
		*mcp.CallToolResult, ListOutput, error,
	) {
		eng, err := engine(ctx, lib)
		if err != nil {
			return nil, ListOutput{}, err
		}

		items := eng.List(kind)
		out := ListOutput{Kind: string(kind), Count: len(items), Items: items}
		return textResult(formatList(kind, items)), out, nil
	}
}

// makeStatusHandler creates the get_index_status tool handler.
func makeStatusHandler(lib *indexer.Library, semantic bool) func(
	context.Context, *mcp.CallToolRequest, StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatusInput) (
		*mcp.CallToolResult, StatusOutput, error,
	) {
		if _, err := engine(ctx, lib); err != nil {
			return nil, StatusOutput{}, err
		}

		status := lib.Status()
		out := StatusOutput{
			Loaded:   status.Initialized && status.Stats.Total > 0,
			Strategy: string(status.Strategy),
			Stats:    status.Stats,
			Semantic: semantic,
		}
		if !status.BuiltAt.IsZero() {
			out.BuiltAt = status.BuiltAt.UTC().Format(time.RFC3339)
		}
		return textResult(formatStatus(status, semantic)), out, nil
	}
}

// makeRefreshHandler creates the refresh_docs_index tool handler. The rebuilt index
// replaces the old one only once it is complete.
func makeRefreshHandler(lib *indexer.Library) func(
	context.Context, *mcp.CallToolRequest, RefreshInput,
) (*mcp.CallToolResult, RefreshOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RefreshInput) (
		*mcp.CallToolResult, RefreshOutput, error,
	) {
		result, err := lib.Reload(ctx)
		if err != nil {
			return nil, RefreshOutput{}, fmt.Errorf("failed to rebuild documentation index: %w", err)
		}

		stats := result.Index.Stats()
		out := RefreshOutput{
			Strategy: string(result.Strategy),
			Duration: result.Duration.Round(time.Millisecond).String(),
			Stats:    stats,
		}
		text := formatStats("Documentation Index Rebuilt", stats) +
			fmt.Sprintf("\nLoaded from: %s in %s\n", out.Strategy, out.Duration)
		return textResult(text), out, nil
	}
}

// makeSemanticHandler creates the semantic_search_demosdk_docs tool handler.
func makeSemanticHandler(lib *indexer.Library, searcher SemanticSearcher) func(
	context.Context, *mcp.CallToolRequest, SemanticSearchInput,
) (*mcp.CallToolResult, SemanticSearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SemanticSearchInput) (
		*mcp.CallToolResult, SemanticSearchOutput, error,
	) {
		if strings.TrimSpace(input.Query) == "" {
			return nil, SemanticSearchOutput{}, errors.New("query parameter is required")
		}
		kind, err := parseType(input.Type)
		if err != nil {
			return nil, SemanticSearchOutput{}, err
		}
		if _, err := engine(ctx, lib); err != nil {
			return nil, SemanticSearchOutput{}, err
		}

		hits, err := searcher.Search(ctx, input.Query, clampLimit(input.Limit), kind)
		if err != nil {
			return nil, SemanticSearchOutput{}, fmt.Errorf("semantic search failed: %w", err)
		}

		out := SemanticSearchOutput{Query: input.Query, Results: make([]SemanticHit, 0, len(hits))}
		for _, h := range hits {
			out.Results = append(out.Results, SemanticHit{
				Name:        h.Entry.Name,
				FullName:    h.Entry.FullName,
				Kind:        string(h.Entry.Kind),
				Description: h.Entry.Description,
				Summary:     h.Summary,
				Score:       h.Score,
				Stale:       h.Stale,
			})
		}
		return textResult(formatSemanticResults(input.Query, hits)), out, nil
	}
}
