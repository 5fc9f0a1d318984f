package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go"
)

const (
	// Model is the OpenAI embedding model.
	Model = openai.EmbeddingModelTextEmbedding3Small

	// Dimension is the vector size Model produces. It matches storage.VectorDimension.
	Dimension = 1536

	// DefaultBatchSize keeps each request well under the token-per-minute limit.
	// The API accepts up to 2048 inputs per request.
	DefaultBatchSize = 500
)

// Embedder turns texts into vectors, batching requests and retrying on rate limits.
type Embedder struct {
	client    *Client
	batchSize int
}

// NewEmbedder returns an embedder. A batchSize of 0 selects DefaultBatchSize.
func NewEmbedder(client *Client, batchSize int) *Embedder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Embedder{
		client:    client,
		batchSize: batchSize,
	}
}

// GenerateEmbeddings returns one vector per text, in input order.
func (e *Embedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	var all [][]float32
	for i := 0; i < len(texts); i += e.batchSize {
		end := min(i+e.batchSize, len(texts))
		embeddings, err := e.embedBatchWithRetry(ctx, texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("batch %d-%d: %w", i, end, err)
		}
		all = append(all, embeddings...)
	}
	return all, nil
}

// EmbedQuery returns the vector for a single search query.
func (e *Embedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	embeddings, err := e.embedBatchWithRetry(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("embed query: got %d vectors", len(embeddings))
	}
	return embeddings[0], nil
}

// embedBatchWithRetry retries HTTP 429 responses with exponential backoff; any other
// error fails the batch immediately.
func (e *Embedder) embedBatchWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	var embeddings [][]float32

	operation := func() error {
		resp, err := e.client.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Input: openai.EmbeddingNewParamsInputUnion{
				OfArrayOfStrings: texts,
			},
			Model: Model,
		})
		if err != nil {
			if isRateLimitError(err) {
				return err
			}
			return backoff.Permanent(err)
		}

		embeddings = make([][]float32, len(resp.Data))
		for _, data := range resp.Data {
			if int(data.Index) < len(embeddings) {
				embeddings[data.Index] = toFloat32(data.Embedding)
			}
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	err := backoff.Retry(operation, backoff.WithContext(b, ctx))
	return embeddings, err
}

func isRateLimitError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}

// toFloat32 narrows the API's float64 vectors to the float32 Qdrant stores.
func toFloat32(f64 []float64) []float32 {
	f32 := make([]float32, len(f64))
	for i, v := range f64 {
		f32[i] = float32(v)
	}
	return f32
}
