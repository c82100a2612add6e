package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewHTTPHandler wraps the server in a Streamable HTTP transport so it
// can be mounted on a mux path, e.g. "/mcp".
func NewHTTPHandler(server *Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server.MCPServer()
	}, &mcp.StreamableHTTPOptions{})
}
