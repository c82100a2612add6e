package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bull/docqa/internal/freshness"
	"github.com/bull/docqa/internal/pipeline"
	"github.com/bull/docqa/internal/session"
	"github.com/bull/docqa/internal/tui"
)

var (
	askQuestion string
	askTUI      bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask questions against the indexed corpus",
	Long: `Starts an interactive question session. The index is checked against
the corpus fingerprint first: unchanged documents load the persisted
index, any edit triggers a full rebuild.

Type 'exit' or 'quit' to leave the session. A failed query is reported
and the session continues.`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "",
		"Answer a single question and exit instead of starting a session")
	askCmd.Flags().BoolVar(&askTUI, "tui", false,
		"Use the full-screen terminal UI for the session")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	engine, cleanup, err := readyEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if askQuestion != "" {
		answer, err := engine.Query(ctx, askQuestion)
		if err != nil {
			return fmt.Errorf("%w\n%s", err, session.ErrorHint)
		}
		fmt.Println(answer)
		return nil
	}

	if askTUI {
		_, err := tea.NewProgram(tui.New(engine), tea.WithAltScreen()).Run()
		return err
	}

	return session.Run(ctx, engine, os.Stdin, os.Stdout)
}

// readyEngine runs the freshness decision and returns a query engine
// over the resulting index handle.
func readyEngine(ctx context.Context) (*pipeline.Engine, func(), error) {
	a, err := loadApp()
	if err != nil {
		return nil, nil, err
	}

	fmt.Println("Checking index freshness...")
	searcher, state, err := a.controller.Ensure(ctx)
	if err != nil {
		_ = a.close()
		return nil, nil, err
	}
	if state == freshness.StateStale {
		fmt.Printf("Index updated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("Loaded existing index.")
	}

	engine := pipeline.NewEngine(searcher, a.embedder, a.answerer, a.cfg.Retrieval.TopK)
	cleanup := func() { _ = a.close() }
	return engine, cleanup, nil
}
