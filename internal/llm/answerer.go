// Package llm synthesizes answers from retrieved context through the
// OpenAI chat completions API.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
)

// Answerer sends retrieved passages and the user's question to a chat
// model and returns the completion. It performs no retries: a failed
// call surfaces to the session loop, which reports it and carries on.
type Answerer struct {
	client *openai.Client
	model  string
}

// NewAnswerer creates an Answerer using the given client and chat model.
func NewAnswerer(client *openai.Client, model string) *Answerer {
	return &Answerer{
		client: client,
		model:  model,
	}
}

// Answer produces a completion grounded in the context passages.
func (a *Answerer) Answer(ctx context.Context, question string, contexts []string) (string, error) {
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(BuildPrompt(question, contexts)),
		},
		Model: openai.ChatModel(a.model),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// BuildPrompt assembles the grounded-answer prompt: numbered context
// passages followed by the question, with an instruction to answer only
// from the supplied context.
func BuildPrompt(question string, contexts []string) string {
	var b strings.Builder
	b.WriteString("Answer the question using only the context passages below. ")
	b.WriteString("If the context does not contain the answer, say so.\n\n")
	for i, c := range contexts {
		fmt.Fprintf(&b, "Context %d:\n%s\n\n", i+1, c)
	}
	fmt.Fprintf(&b, "Question: %s", question)
	return b.String()
}
