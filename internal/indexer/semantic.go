package indexer

import (
	"context"
	"fmt"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
	"github.com/bull/demosdk-docs-mcp/internal/storage"
)

// QueryEmbedder embeds a single search query.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
}

// EntrySearcher finds stored entries nearest to a vector.
type EntrySearcher interface {
	SearchEntries(ctx context.Context, embedding []float32, limit int, kind string) ([]*storage.ScoredEntry, error)
}

// SemanticHit is a vector search result resolved against the loaded index.
type SemanticHit struct {
	Entry   docs.Entry
	Score   float64
	Summary string
	Stale   bool // not present in the loaded index; Entry holds only the stored fields
}

// SemanticSearch answers natural-language queries from the vector store.
type SemanticSearch struct {
	embedder QueryEmbedder
	store    EntrySearcher
	library  *Library
}

// NewSemanticSearch creates a semantic searcher resolving hits through library.
func NewSemanticSearch(embedder QueryEmbedder, store EntrySearcher, library *Library) *SemanticSearch {
	return &SemanticSearch{embedder: embedder, store: store, library: library}
}

// Search embeds query and returns up to limit hits, optionally restricted to kind.
func (s *SemanticSearch) Search(ctx context.Context, query string, limit int, kind docs.Kind) ([]SemanticHit, error) {
	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := s.store.SearchEntries(ctx, vector, limit, string(kind))
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}

	engine := s.library.Engine()
	hits := make([]SemanticHit, 0, len(scored))
	for _, se := range scored {
		stored := se.Entry
		k := docs.Kind(stored.Kind)
		hit := SemanticHit{Score: se.Score, Summary: stored.Summary}

		if e, ok := engine.EntryByName(k, stored.FullName); ok {
			hit.Entry = e
		} else {
			hit.Entry = docs.NewEntry(k, stored.Name, stored.FullName)
			hit.Entry.Description = stored.Description
			hit.Stale = true
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
