package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// HTTPHandlerOptions configures the HTTP transport behavior.
type HTTPHandlerOptions struct {
	// Stateless disables session management. The documentation tools never call
	// back into the client, so remote deployments can run without sessions.
	Stateless bool
	// JSONResponse answers with application/json instead of an event stream.
	JSONResponse bool
}

// NewHTTPHandler creates an HTTP handler for the MCP server using Streamable HTTP transport.
// Every request is served by the same server, so all sessions share one loaded index.
func NewHTTPHandler(server *Server, opts *HTTPHandlerOptions) http.Handler {
	if opts == nil {
		opts = &HTTPHandlerOptions{}
	}

	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server.MCPServer()
	}, &mcp.StreamableHTTPOptions{
		Stateless:    opts.Stateless,
		JSONResponse: opts.JSONResponse,
	})
}
