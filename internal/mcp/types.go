// Package mcp exposes the question-answering pipeline as MCP tools.
package mcp

// AskInput defines the input parameters for the ask_docs tool.
type AskInput struct {
	// Question is the free-text question to answer from the corpus.
	Question string `json:"question" jsonschema:"required,description=The question to answer from the indexed documents"`
}

// AskOutput contains the synthesized answer.
type AskOutput struct {
	Answer string `json:"answer"`
}

// SearchInput defines the input parameters for the search_docs tool.
type SearchInput struct {
	// Query is the semantic search query.
	Query string `json:"query" jsonschema:"required,description=The semantic search query"`
	// TopK is the maximum number of passages to return.
	TopK int `json:"top_k,omitempty" jsonschema:"minimum=1,maximum=20,default=3,description=Maximum number of passages to return"`
}

// SearchOutput contains the retrieved passages.
type SearchOutput struct {
	Results []Passage `json:"results"`
	Message string    `json:"message,omitempty"`
}

// Passage is one retrieved chunk with its surrounding window expanded.
type Passage struct {
	DocPath string  `json:"doc_path"`
	Section string  `json:"section,omitempty"`
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
}

// StatusInput defines the (empty) input for the index_status tool.
type StatusInput struct{}

// StatusOutput reports index freshness relative to the corpus.
type StatusOutput struct {
	// State is "fresh" or "stale"; staleness is re-evaluated on request
	// but acted on only at the next process start.
	State       string `json:"state"`
	Fingerprint string `json:"fingerprint"`
}
