package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/bull/docqa/internal/mcp"
	"github.com/bull/docqa/internal/pipeline"
)

var serveHTTP string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the corpus as MCP tools",
	Long: `Runs an MCP server with ask_docs, search_docs, and index_status tools.
By default the server speaks MCP over stdio for local clients; --http
serves the Streamable HTTP transport at /mcp instead.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTP, "http", "",
		"Serve MCP over HTTP on this address (e.g. :8080) instead of stdio")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	searcher, _, err := a.controller.Ensure(ctx)
	if err != nil {
		return err
	}
	engine := pipeline.NewEngine(searcher, a.embedder, a.answerer, a.cfg.Retrieval.TopK)

	server := mcpserver.NewServer(&mcpserver.Config{
		Engine:     engine,
		Controller: a.controller,
	})

	if serveHTTP != "" {
		mux := http.NewServeMux()
		mux.Handle("/mcp", mcpserver.NewHTTPHandler(server))
		mux.Handle("/health", mcpserver.NewHealthHandler(a.controller))
		fmt.Printf("Serving MCP over HTTP on %s (endpoint /mcp)\n", serveHTTP)
		return http.ListenAndServe(serveHTTP, mux)
	}

	return server.Run(ctx)
}
