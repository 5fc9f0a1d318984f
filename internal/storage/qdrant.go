package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/qdrant/go-client/qdrant"
)

// upsertBatchSize bounds the number of points per upsert request.
const upsertBatchSize = 100

// QdrantStorage keeps embedded documentation entries in a Qdrant collection.
type QdrantStorage struct {
	client *qdrant.Client
	host   string
	port   int
}

// NewQdrantStorage connects to Qdrant over gRPC and waits for it to report healthy.
// It fails with ErrQdrantUnreachable when the server does not answer within the retry window.
func NewQdrantStorage(host string, port int) (*QdrantStorage, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	storage := &QdrantStorage{
		client: client,
		host:   host,
		port:   port,
	}

	if err := storage.healthCheckWithRetry(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrQdrantUnreachable, err)
	}

	return storage, nil
}

// retryPolicy is shared by health checks and upserts:
// 500ms initial interval, 10s max interval, 30s overall.
func retryPolicy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second
	return backoff.WithContext(b, ctx)
}

func (s *QdrantStorage) healthCheckWithRetry(ctx context.Context) error {
	return backoff.Retry(func() error {
		return s.Health(ctx)
	}, retryPolicy(ctx))
}

// Health performs a single health check against Qdrant.
func (s *QdrantStorage) Health(ctx context.Context) error {
	result, err := s.client.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if result == nil || result.Title == "" {
		return fmt.Errorf("health check returned invalid response")
	}
	return nil
}

// EnsureCollection creates the entries collection with a named cosine vector and
// keyword indexes on the filterable payload fields. It is a no-op when the
// collection already exists.
func (s *QdrantStorage) EnsureCollection(ctx context.Context) error {
	collections, err := s.client.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	for _, name := range collections {
		if name == CollectionName {
			return nil
		}
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: CollectionName,
		VectorsConfig: qdrant.NewVectorsConfigMap(map[string]*qdrant.VectorParams{
			VectorName: {
				Size:     VectorDimension,
				Distance: qdrant.Distance_Cosine,
			},
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	if err := s.createPayloadIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create payload indexes: %w", err)
	}
	return nil
}

func (s *QdrantStorage) createPayloadIndexes(ctx context.Context) error {
	for _, field := range []string{"kind", "full_name", "source"} {
		_, err := s.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: CollectionName,
			FieldName:      field,
			FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
		})
		if err != nil {
			return fmt.Errorf("failed to create index for field %s: %w", field, err)
		}
	}
	return nil
}

// ClearCollection drops and recreates the collection. A sync always starts from an
// empty collection since the index it mirrors is rebuilt wholesale.
func (s *QdrantStorage) ClearCollection(ctx context.Context) error {
	if err := s.client.DeleteCollection(ctx, CollectionName); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return s.EnsureCollection(ctx)
}

// Close closes the Qdrant client connection.
func (s *QdrantStorage) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func (s *QdrantStorage) upsertWithRetry(ctx context.Context, points []*qdrant.PointStruct) error {
	return backoff.Retry(func() error {
		_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: CollectionName,
			Points:         points,
		})
		return err
	}, retryPolicy(ctx))
}

// UpsertEntries stores entries with their embeddings in batches of 100.
func (s *QdrantStorage) UpsertEntries(ctx context.Context, entries []*StoredEntry) error {
	if len(entries) == 0 {
		return nil
	}

	for i, e := range entries {
		if len(e.Embedding) != VectorDimension {
			return fmt.Errorf("%w: entry %d (%s) has %d dimensions, expected %d",
				ErrDimensionMismatch, i, e.FullName, len(e.Embedding), VectorDimension)
		}
	}

	for i := 0; i < len(entries); i += upsertBatchSize {
		end := min(i+upsertBatchSize, len(entries))

		points := make([]*qdrant.PointStruct, 0, end-i)
		for _, e := range entries[i:end] {
			points = append(points, &qdrant.PointStruct{
				Id: qdrant.NewIDUUID(e.ID),
				Vectors: qdrant.NewVectorsMap(map[string]*qdrant.Vector{
					VectorName: qdrant.NewVector(e.Embedding...),
				}),
				Payload: qdrant.NewValueMap(entryPayload(e)),
			})
		}

		if err := s.upsertWithRetry(ctx, points); err != nil {
			return fmt.Errorf("failed to upsert batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}

// SearchEntries returns the entries nearest to embedding, best first. A non-empty
// kind restricts the search to that kind.
func (s *QdrantStorage) SearchEntries(ctx context.Context, embedding []float32, limit int, kind string) ([]*ScoredEntry, error) {
	if len(embedding) != VectorDimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, expected %d",
			ErrDimensionMismatch, len(embedding), VectorDimension)
	}

	var filter *qdrant.Filter
	if kind != "" {
		filter = &qdrant.Filter{Must: []*qdrant.Condition{qdrant.NewMatch("kind", kind)}}
	}

	vectorName := VectorName
	results, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: CollectionName,
		Query:          qdrant.NewQuery(embedding...),
		Using:          &vectorName,
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}

	scored := make([]*ScoredEntry, 0, len(results))
	for _, r := range results {
		e := entryFromPayload(r.Payload)
		e.ID = r.Id.GetUuid()
		scored = append(scored, &ScoredEntry{Entry: e, Score: float64(r.Score)})
	}
	return scored, nil
}

// GetSyncInfo reads the source and time of the last sync from any stored point.
// It returns a zero SyncInfo when the collection is empty.
func (s *QdrantStorage) GetSyncInfo(ctx context.Context) (SyncInfo, error) {
	results, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: CollectionName,
		Limit:          qdrant.PtrOf(uint32(1)),
		WithPayload:    qdrant.NewWithPayloadInclude("source", "indexed_at"),
	})
	if err != nil {
		return SyncInfo{}, fmt.Errorf("failed to scroll for sync info: %w", err)
	}
	if len(results) == 0 {
		return SyncInfo{}, nil
	}

	e := entryFromPayload(results[0].Payload)
	return SyncInfo{Source: e.Source, IndexedAt: e.IndexedAt}, nil
}

// CollectionInfo contains collection statistics.
type CollectionInfo struct {
	PointsCount uint64
}

// GetCollectionInfo returns the number of stored entries.
func (s *QdrantStorage) GetCollectionInfo(ctx context.Context) (*CollectionInfo, error) {
	collection, err := s.client.GetCollectionInfo(ctx, CollectionName)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &CollectionInfo{PointsCount: collection.GetPointsCount()}, nil
}

func entryPayload(e *StoredEntry) map[string]any {
	return map[string]any{
		"kind":        e.Kind,
		"name":        e.Name,
		"full_name":   e.FullName,
		"description": e.Description,
		"summary":     e.Summary,
		"text":        e.Text,
		"source":      e.Source,
		"indexed_at":  e.IndexedAt.UTC().Format(time.RFC3339),
	}
}

func entryFromPayload(payload map[string]*qdrant.Value) *StoredEntry {
	// Zero time when the timestamp is missing or malformed.
	indexedAt, _ := time.Parse(time.RFC3339, payload["indexed_at"].GetStringValue())
	return &StoredEntry{
		Kind:        payload["kind"].GetStringValue(),
		Name:        payload["name"].GetStringValue(),
		FullName:    payload["full_name"].GetStringValue(),
		Description: payload["description"].GetStringValue(),
		Summary:     payload["summary"].GetStringValue(),
		Text:        payload["text"].GetStringValue(),
		Source:      payload["source"].GetStringValue(),
		IndexedAt:   indexedAt,
	}
}
