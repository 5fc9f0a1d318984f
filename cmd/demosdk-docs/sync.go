package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bull/demosdk-docs-mcp/internal/embedding"
	"github.com/bull/demosdk-docs-mcp/internal/indexer"
	"github.com/bull/demosdk-docs-mcp/internal/metadata"
	"github.com/bull/demosdk-docs-mcp/internal/storage"
)

func newSyncCmd(a *app) *cobra.Command {
	var summarize bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Re-index all documentation entries into Qdrant",
		Long: `Clears the semantic index and rebuilds it from the current documentation index.

This command:
1. Loads the documentation index (cache, generated HTML or SDK sources)
2. Connects to Qdrant and verifies health
3. Optionally summarizes entries whose description is missing or too short
4. Generates an embedding for every entry
5. Replaces the entries stored in Qdrant

Environment variables:
  QDRANT_HOST    Qdrant hostname (required)
  QDRANT_PORT    Qdrant gRPC port (default: 6334)
  OPENAI_API_KEY OpenAI API key for embeddings (required)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start := time.Now()
			w := cmd.OutOrStdout()

			if a.cfg.QdrantHost == "" {
				return errors.New("QDRANT_HOST is not set")
			}

			fmt.Fprintln(w, "Starting sync...")
			fmt.Fprintln(w)

			// 1. Load documentation
			built, err := a.build(cmd, true)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Loaded %d entries from %s\n", built.Index.TotalCount(), built.Strategy)

			// 2. Connect to Qdrant
			fmt.Fprintf(w, "Connecting to Qdrant at %s:%d...\n", a.cfg.QdrantHost, a.cfg.QdrantPort)
			store, err := storage.NewQdrantStorage(a.cfg.QdrantHost, a.cfg.QdrantPort)
			if err != nil {
				return fmt.Errorf("failed to connect to Qdrant: %w", err)
			}
			defer store.Close()

			if err := store.Health(ctx); err != nil {
				return fmt.Errorf("qdrant health check failed: %w", err)
			}
			fmt.Fprintln(w, "Qdrant healthy")

			// 3. Embedding client, shared with the summarizer
			client, err := embedding.NewClient(a.cfg.OpenAIAPIKey)
			if err != nil {
				return fmt.Errorf("failed to create embedding client: %w", err)
			}
			embedder := embedding.NewEmbedder(client, 0) // Use default batch size

			var summarizer indexer.Summarizer
			if summarize {
				summarizer = metadata.NewGenerator(client.Client(), a.logger)
			}

			// 4. Run the pipeline
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Indexing entries...")
			pipeline := indexer.NewPipeline(embedder, store, summarizer, a.logger)

			result, err := pipeline.Sync(ctx, built.Index, string(built.Strategy))
			if err != nil {
				return fmt.Errorf("indexing failed: %w", err)
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, "Sync complete!")
			fmt.Fprintf(w, "  Entries: %d\n", result.Entries)
			if summarize {
				fmt.Fprintf(w, "  Summarized: %d\n", result.Summarized)
			}
			fmt.Fprintf(w, "  Source: %s\n", result.Source)
			fmt.Fprintf(w, "  Duration: %s\n", result.Duration.Round(time.Second))

			if len(result.Failed) > 0 {
				fmt.Fprintln(w)
				fmt.Fprintln(w, "Entries without summaries:")
				for _, failed := range result.Failed {
					fmt.Fprintf(w, "  - %s %s: %s\n", failed.Kind, failed.Name, failed.Reason)
				}
			}

			fmt.Fprintln(w)
			fmt.Fprintf(w, "Total time: %s\n", time.Since(start).Round(time.Second))
			return nil
		},
	}

	cmd.Flags().BoolVar(&summarize, "summarize", false, "generate summaries for entries with short descriptions")
	cmd.AddCommand(newSyncStatusCmd(a))
	return cmd
}

func newSyncStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what the semantic index was last synced from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.QdrantHost == "" {
				return errors.New("QDRANT_HOST is not set")
			}
			store, err := storage.NewQdrantStorage(a.cfg.QdrantHost, a.cfg.QdrantPort)
			if err != nil {
				return fmt.Errorf("failed to connect to Qdrant: %w", err)
			}
			defer store.Close()

			info, err := store.GetSyncInfo(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if info.IndexedAt.IsZero() {
				fmt.Fprintln(w, "Semantic index is empty")
				return nil
			}
			fmt.Fprintf(w, "Source: %s\n", info.Source)
			fmt.Fprintf(w, "Indexed at: %s\n", info.IndexedAt.Format(time.RFC3339))
			if coll, err := store.GetCollectionInfo(cmd.Context()); err == nil {
				fmt.Fprintf(w, "Entries: %d\n", coll.PointsCount)
			}
			return nil
		},
	}
}
