// Package main provides the MCP server entry point for DemoSDK documentation.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bull/demosdk-docs-mcp/internal/config"
	"github.com/bull/demosdk-docs-mcp/internal/embedding"
	"github.com/bull/demosdk-docs-mcp/internal/indexer"
	mcpserver "github.com/bull/demosdk-docs-mcp/internal/mcp"
	"github.com/bull/demosdk-docs-mcp/internal/storage"
)

var version = "v1.0.0"

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	dotenv := config.LoadDotEnv()

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// stdout carries the stdio transport, so logs go to stderr.
	logger := config.NewLogger(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)
	if !dotenv {
		logger.Debug("No .env file found, using environment variables")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	library := indexer.NewLibrary(indexer.NewBuilder(indexer.BuilderConfig{
		CacheFile:  cfg.IndexFile,
		APIRefDir:  cfg.APIRefDir,
		SDKPath:    cfg.ResolveSDKPath(),
		WriteCache: true,
	}, logger), logger)

	// Pre-initialize documentation so the first tool call is fast.
	if err := library.EnsureInitialized(ctx); err != nil {
		logger.Error("failed to load documentation", "error", err)
		os.Exit(1)
	}

	serverCfg := &mcpserver.Config{Library: library, Logger: logger, Version: version}
	if semantic, closeStore := setupSemantic(cfg, library, logger); semantic != nil {
		defer closeStore()
		serverCfg.Semantic = semantic
	}
	server := mcpserver.NewServer(serverCfg)

	mux := server.Routes(&mcpserver.HTTPHandlerOptions{Stateless: cfg.ServerMode})
	httpServer := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		httpServer.Shutdown(shutdownCtx)
	}()

	if cfg.ServerMode {
		// HTTP mode: serve MCP over HTTP for remote clients
		logger.Info("Starting HTTP server", "addr", httpServer.Addr, "mcp", "/mcp", "health", "/health")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
		return
	}

	// Stdio mode: the HTTP endpoints stay available in the background for local testing.
	go func() {
		logger.Info("Starting health server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Health server error", "error", err)
		}
	}()

	logger.Info("DemoSDK API Reference MCP Server running on stdio")
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// setupSemantic connects the vector store and embedder when both are configured.
// Failures disable the semantic tool rather than the server.
func setupSemantic(cfg *config.Config, library *indexer.Library, logger *slog.Logger) (*indexer.SemanticSearch, func()) {
	if !cfg.SemanticEnabled() {
		logger.Debug("Semantic search disabled", "qdrant_host", cfg.QdrantHost)
		return nil, nil
	}

	store, err := storage.NewQdrantStorage(cfg.QdrantHost, cfg.QdrantPort)
	if err != nil {
		logger.Warn("Semantic search disabled: Qdrant unavailable", "error", err)
		return nil, nil
	}
	client, err := embedding.NewClient(cfg.OpenAIAPIKey)
	if err != nil {
		store.Close()
		logger.Warn("Semantic search disabled: embedding client", "error", err)
		return nil, nil
	}

	logger.Info("Semantic search enabled", "qdrant", cfg.QdrantHost, "collection", storage.CollectionName)
	embedder := embedding.NewEmbedder(client, 0)
	return indexer.NewSemanticSearch(embedder, store, library), func() { store.Close() }
}
