package llm

import (
	"strings"
	"testing"
)

func TestBuildPrompt_NumbersContexts(t *testing.T) {
	prompt := BuildPrompt("What is X?", []string{"first passage", "second passage"})

	if !strings.Contains(prompt, "Context 1:\nfirst passage") {
		t.Errorf("prompt missing first passage:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Context 2:\nsecond passage") {
		t.Errorf("prompt missing second passage:\n%s", prompt)
	}
	if !strings.HasSuffix(prompt, "Question: What is X?") {
		t.Errorf("prompt should end with the question:\n%s", prompt)
	}
}

func TestBuildPrompt_ContextsPrecedeQuestion(t *testing.T) {
	prompt := BuildPrompt("Q", []string{"passage"})

	ctxPos := strings.Index(prompt, "passage")
	qPos := strings.Index(prompt, "Question: Q")
	if ctxPos < 0 || qPos < 0 || ctxPos > qPos {
		t.Errorf("context must appear before the question:\n%s", prompt)
	}
}
