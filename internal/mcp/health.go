package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bull/demosdk-docs-mcp/internal/indexer"
)

// HealthResponse represents the JSON response from the health check endpoint.
type HealthResponse struct {
	Status        string `json:"status"`
	Documentation string `json:"documentation"`
	Entries       int    `json:"entries"`
	Semantic      string `json:"semantic"`
	Timestamp     string `json:"timestamp"`
}

// HealthChecker interface defines the health check dependency.
// *indexer.Library implements it.
type HealthChecker interface {
	Health(ctx context.Context) error
	Status() indexer.Status
}

// NewHealthHandler creates an HTTP handler for the /health endpoint.
// It loads documentation if needed and answers 503 when none is available.
func NewHealthHandler(docs HealthChecker, semantic bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		err := docs.Health(ctx)

		response := HealthResponse{
			Entries:   docs.Status().Stats.Total,
			Semantic:  "disabled",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		if semantic {
			response.Semantic = "enabled"
		}

		w.Header().Set("Content-Type", "application/json")

		if err != nil {
			response.Status = "unhealthy"
			response.Documentation = "missing"
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(response)
			return
		}

		response.Status = "healthy"
		response.Documentation = "loaded"
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
	}
}
