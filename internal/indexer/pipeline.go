package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
	"github.com/bull/demosdk-docs-mcp/internal/embedding"
	"github.com/bull/demosdk-docs-mcp/internal/metadata"
	"github.com/bull/demosdk-docs-mcp/internal/storage"
)

// Embedder turns entry texts into vectors, one per text in input order.
type Embedder interface {
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// EntryStore is the vector store entries are synced into.
type EntryStore interface {
	ClearCollection(ctx context.Context) error
	UpsertEntries(ctx context.Context, entries []*storage.StoredEntry) error
}

// Summarizer writes summaries for entries whose description is missing or too short.
type Summarizer interface {
	GenerateMetadata(ctx context.Context, e docs.Entry) (*metadata.EntryMetadata, error)
}

// SyncResult contains statistics about a sync.
type SyncResult struct {
	Entries    int
	Summarized int
	Failed     []FailedEntry
	Source     string
	Duration   time.Duration
}

// FailedEntry is an entry whose summary could not be generated. It is still embedded
// from its own text.
type FailedEntry struct {
	Kind   docs.Kind
	Name   string
	Reason string
}

// Pipeline mirrors a documentation index into the vector store.
type Pipeline struct {
	embedder   Embedder
	store      EntryStore
	summarizer Summarizer // nil skips summaries
	logger     *slog.Logger
	now        func() time.Time
}

// NewPipeline creates a sync pipeline. summarizer may be nil.
func NewPipeline(embedder Embedder, store EntryStore, summarizer Summarizer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		embedder:   embedder,
		store:      store,
		summarizer: summarizer,
		logger:     logger,
		now:        time.Now,
	}
}

// Sync replaces the store's contents with every entry of index. source records
// where the index came from (a build strategy or commit SHA).
func (p *Pipeline) Sync(ctx context.Context, index *docs.Index, source string) (*SyncResult, error) {
	start := p.now()
	result := &SyncResult{Source: source}

	if index == nil || index.Empty() {
		return nil, ErrNoDocumentation
	}

	var entries []docs.Entry
	for _, kind := range docs.Kinds {
		entries = append(entries, index.Entries(kind)...)
	}
	result.Entries = len(entries)
	p.logger.Info("Starting sync", "entries", len(entries), "source", source)

	summaries := make([]string, len(entries))
	if p.summarizer != nil {
		for i, e := range entries {
			if !metadata.NeedsSummary(e) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			meta, err := p.summarizer.GenerateMetadata(ctx, e)
			if err != nil {
				p.logger.Warn("Summary generation failed, embedding entry as is", "name", e.FullName, "error", err)
				result.Failed = append(result.Failed, FailedEntry{Kind: e.Kind, Name: e.FullName, Reason: err.Error()})
				continue
			}
			summaries[i] = summaryText(meta)
			result.Summarized++
		}
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = embedding.EntryText(e, summaries[i])
	}

	vectors, err := p.embedder.GenerateEmbeddings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embeddings: %w", err)
	}
	if len(vectors) != len(entries) {
		return nil, fmt.Errorf("embeddings: got %d vectors for %d entries", len(vectors), len(entries))
	}

	indexedAt := p.now()
	stored := make([]*storage.StoredEntry, len(entries))
	for i, e := range entries {
		stored[i] = &storage.StoredEntry{
			ID:          uuid.New().String(),
			Kind:        string(e.Kind),
			Name:        e.Name,
			FullName:    e.FullName,
			Description: e.Description,
			Summary:     summaries[i],
			Text:        texts[i],
			Source:      source,
			IndexedAt:   indexedAt,
			Embedding:   vectors[i],
		}
	}

	if err := p.store.ClearCollection(ctx); err != nil {
		return nil, fmt.Errorf("clear collection: %w", err)
	}
	if err := p.store.UpsertEntries(ctx, stored); err != nil {
		return nil, fmt.Errorf("store entries: %w", err)
	}

	result.Duration = p.now().Sub(start)
	p.logger.Info("Sync complete",
		"entries", result.Entries,
		"summarized", result.Summarized,
		"failed", len(result.Failed),
		"duration", result.Duration,
	)
	return result, nil
}

func summaryText(meta *metadata.EntryMetadata) string {
	if meta == nil {
		return ""
	}
	s := strings.TrimSpace(meta.Summary)
	if len(meta.Keywords) > 0 {
		s += "\nRelated: " + strings.Join(meta.Keywords, ", ")
	}
	return strings.TrimSpace(s)
}
