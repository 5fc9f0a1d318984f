package storage

import "time"

// StoredEntry is one documentation entry kept in Qdrant for semantic search.
// The vector is built from Text; the other fields let a hit be resolved back to
// the in-memory index.
type StoredEntry struct {
	ID          string // UUID
	Kind        string // docs.Kind of the entry
	Name        string
	FullName    string
	Description string
	Summary     string    // generated summary for entries without a usable description
	Text        string    // text the embedding was computed from
	Source      string    // build strategy or SDK commit the index came from
	IndexedAt   time.Time // when this sync ran
	Embedding   []float32 // 1536-dim vector (text-embedding-3-small)
}

// ScoredEntry is a semantic search hit.
type ScoredEntry struct {
	Entry *StoredEntry
	Score float64
}

// SyncInfo describes the last sync written to the collection.
type SyncInfo struct {
	Source    string
	IndexedAt time.Time
}

// CollectionName is the Qdrant collection holding documentation entries.
const CollectionName = "demosdk_entries"

// VectorName is the named vector entries are searched by.
const VectorName = "content"

// VectorDimension is the embedding size for text-embedding-3-small.
const VectorDimension = 1536
