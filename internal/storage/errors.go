package storage

import "errors"

var (
	ErrQdrantUnreachable = errors.New("qdrant server unreachable")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrCacheNotFound means no cache file exists at the configured path.
	ErrCacheNotFound = errors.New("documentation cache not found")
	// ErrCacheInvalid means the cache file exists but cannot be used.
	ErrCacheInvalid = errors.New("documentation cache invalid")
)
