package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/docqa/internal/freshness"
	"github.com/bull/docqa/internal/pipeline"
)

// Server wraps the MCP server with its pipeline dependencies.
type Server struct {
	server *mcp.Server
}

// Config holds server dependencies.
type Config struct {
	Engine     *pipeline.Engine
	Controller *freshness.Controller
}

// NewServer creates an MCP server with the ask/search/status tools
// registered.
func NewServer(cfg *Config) *Server {
	impl := &mcp.Implementation{
		Name:    "docqa-server",
		Version: "v0.1.0",
	}

	server := mcp.NewServer(impl, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_docs",
		Description: "Answer a question from the indexed document corpus using retrieval-augmented generation.",
	}, makeAskHandler(cfg.Engine))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_docs",
		Description: "Semantically search the indexed corpus. Returns scored passages with surrounding-sentence context.",
	}, makeSearchHandler(cfg.Engine))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "index_status",
		Description: "Report whether the persisted index still matches the document corpus.",
	}, makeStatusHandler(cfg.Controller))

	return &Server{server: server}
}

// Run starts the server over stdio (blocks until the client disconnects).
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying server for transport wrappers.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
