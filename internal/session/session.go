// Package session runs the interactive question loop around the query
// engine.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// ErrorHint is shown after any failed query.
const ErrorHint = "Please check: 1. network connection 2. API key 3. document path"

// Engine is the query capability the session loop drives.
type Engine interface {
	Query(ctx context.Context, question string) (string, error)
}

// IsExit reports whether the input is a session-ending sentinel.
func IsExit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "quit":
		return true
	}
	return false
}

// Run reads questions line by line until EOF or an exit sentinel.
// A failed query is reported with a hint and the loop continues; one bad
// query never ends the session or touches the index handle.
func Run(ctx context.Context, engine Engine, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Ready. Ask a question, or type 'exit' to leave.")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(out, "\nYou: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if IsExit(question) {
			return nil
		}

		answer, err := engine.Query(ctx, question)
		if err != nil {
			fmt.Fprintf(out, "\nError: %v\n%s\n", err, ErrorHint)
			continue
		}
		fmt.Fprintf(out, "\nAI: %s\n", answer)
	}
}
