package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/docqa/internal/freshness"
	"github.com/bull/docqa/internal/pipeline"
)

// makeAskHandler creates the ask_docs tool handler: the full pipeline,
// question in, grounded answer out.
func makeAskHandler(engine *pipeline.Engine) func(
	context.Context, *mcp.CallToolRequest, AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (
		*mcp.CallToolResult, AskOutput, error,
	) {
		if input.Question == "" {
			return nil, AskOutput{}, fmt.Errorf("question must not be empty")
		}
		answer, err := engine.Query(ctx, input.Question)
		if err != nil {
			return nil, AskOutput{}, fmt.Errorf("query failed: %w", err)
		}
		return nil, AskOutput{Answer: answer}, nil
	}
}

// makeSearchHandler creates the search_docs tool handler: retrieval only,
// with each chunk's window already swapped in.
func makeSearchHandler(engine *pipeline.Engine) func(
	context.Context, *mcp.CallToolRequest, SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (
		*mcp.CallToolResult, SearchOutput, error,
	) {
		if input.Query == "" {
			return nil, SearchOutput{}, fmt.Errorf("query must not be empty")
		}
		results, err := engine.Retrieve(ctx, input.Query, input.TopK)
		if err != nil {
			return nil, SearchOutput{}, fmt.Errorf("search failed: %w", err)
		}

		passages := make([]Passage, 0, len(results))
		for _, r := range results {
			passages = append(passages, Passage{
				DocPath: r.Chunk.DocPath,
				Section: r.Chunk.Section,
				Text:    r.Chunk.ContextText(),
				Score:   r.Score,
			})
		}
		if len(passages) == 0 {
			return nil, SearchOutput{
				Results: []Passage{},
				Message: "No matching passages found. Try broader search terms.",
			}, nil
		}
		return nil, SearchOutput{Results: passages}, nil
	}
}

// makeStatusHandler creates the index_status tool handler.
func makeStatusHandler(ctrl *freshness.Controller) func(
	context.Context, *mcp.CallToolRequest, StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatusInput) (
		*mcp.CallToolResult, StatusOutput, error,
	) {
		state, fingerprint, err := ctrl.Evaluate()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("evaluate freshness: %w", err)
		}
		return nil, StatusOutput{
			State:       state.String(),
			Fingerprint: fingerprint,
		}, nil
	}
}
