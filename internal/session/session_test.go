package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyEngine fails on selected calls and records how many it served.
type flakyEngine struct {
	failOn map[int]error
	calls  int
}

func (e *flakyEngine) Query(_ context.Context, question string) (string, error) {
	e.calls++
	if err, ok := e.failOn[e.calls]; ok {
		return "", err
	}
	return "answer to " + question, nil
}

func TestIsExit(t *testing.T) {
	for _, input := range []string{"exit", "quit", "EXIT", "Quit", "  exit  "} {
		assert.True(t, IsExit(input), "input %q", input)
	}
	for _, input := range []string{"", "exit now", "what is quit?"} {
		assert.False(t, IsExit(input), "input %q", input)
	}
}

func TestRun_AnswersUntilExit(t *testing.T) {
	engine := &flakyEngine{}
	in := strings.NewReader("first question\nsecond question\nexit\n")
	var out strings.Builder

	err := Run(context.Background(), engine, in, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, engine.calls)
	assert.Contains(t, out.String(), "AI: answer to first question")
	assert.Contains(t, out.String(), "AI: answer to second question")
}

func TestRun_FailedQueryDoesNotEndSession(t *testing.T) {
	engine := &flakyEngine{failOn: map[int]error{1: errors.New("backend down")}}
	in := strings.NewReader("bad question\ngood question\nquit\n")
	var out strings.Builder

	err := Run(context.Background(), engine, in, &out)
	require.NoError(t, err)

	// Both queries reached the engine; the second one succeeded against
	// the same handle.
	assert.Equal(t, 2, engine.calls)
	assert.Contains(t, out.String(), "backend down")
	assert.Contains(t, out.String(), ErrorHint)
	assert.Contains(t, out.String(), "AI: answer to good question")
}

func TestRun_SkipsBlankLinesAndStopsAtEOF(t *testing.T) {
	engine := &flakyEngine{}
	in := strings.NewReader("\n   \nonly question\n")
	var out strings.Builder

	err := Run(context.Background(), engine, in, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, engine.calls)
}
