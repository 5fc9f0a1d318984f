package mcp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
	"github.com/bull/demosdk-docs-mcp/internal/indexer"
	"github.com/bull/demosdk-docs-mcp/internal/markdown"
)

// Server wraps the MCP server with dependencies.
type Server struct {
	server   *mcp.Server
	library  *indexer.Library
	semantic SemanticSearcher
	renderer *markdown.Renderer
	logger   *slog.Logger
}

// Config holds server dependencies.
type Config struct {
	Library  *indexer.Library
	Semantic SemanticSearcher // enables semantic_search_demosdk_docs when set
	Logger   *slog.Logger
	Version  string
}

// NewServer creates a configured MCP server with tools registered.
func NewServer(cfg *Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	version := cfg.Version
	if version == "" {
		version = "v1.0.0"
	}

	impl := &mcp.Implementation{
		Name:    "demosdk-docs",
		Version: version,
	}
	server := mcp.NewServer(impl, nil)
	lib := cfg.Library

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_demosdk_docs",
		Description: "Search the DemoSDK documentation for classes, methods, interfaces, and more",
	}, makeSearchHandler(lib, logger))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_class_docs",
		Description: "Get detailed documentation for a specific class",
	}, makeClassHandler(lib))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_method_docs",
		Description: "Get detailed documentation for a specific method of a class",
	}, makeMethodHandler(lib))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_interface_docs",
		Description: "Get detailed documentation for a specific interface, including its properties",
	}, makeInterfaceHandler(lib))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_classes",
		Description: "List all available classes in the DemoSDK",
	}, makeListHandler(lib, docs.KindClass))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_interfaces",
		Description: "List all available interfaces in the DemoSDK",
	}, makeListHandler(lib, docs.KindInterface))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_functions",
		Description: "List all available standalone functions in the DemoSDK",
	}, makeListHandler(lib, docs.KindFunction))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_index_status",
		Description: "Get the number of documented classes, interfaces, functions, enums, types and variables, and where the index was loaded from",
	}, makeStatusHandler(lib, cfg.Semantic != nil))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refresh_docs_index",
		Description: "Rebuild the documentation index from the generated API reference or the SDK sources",
	}, makeRefreshHandler(lib))

	if cfg.Semantic != nil {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "semantic_search_demosdk_docs",
			Description: "Search the DemoSDK documentation by meaning rather than by name. Use when you know what you want to do but not what it is called.",
		}, makeSemanticHandler(lib, cfg.Semantic))
	}

	return &Server{
		server:   server,
		library:  lib,
		semantic: cfg.Semantic,
		renderer: markdown.NewRenderer(),
		logger:   logger,
	}
}

// Run starts the server with stdio transport (blocks until client disconnects).
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server instance.
// Used by transport handlers that need to wrap the server.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}

// Routes returns the HTTP surface: the MCP endpoint, health, the landing page and
// rendered reference pages.
func (s *Server) Routes(opts *HTTPHandlerOptions) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/mcp", NewHTTPHandler(s, opts))
	mux.HandleFunc("/health", NewHealthHandler(s.library, s.semantic != nil))
	mux.HandleFunc("GET /reference/{kind}/{name}", s.handleReference)
	mux.HandleFunc("/", s.handleLanding)
	return mux
}
