package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bull/docqa/internal/config"
	ghclient "github.com/bull/docqa/internal/github"
)

var (
	fetchOwner string
	fetchRepo  string
	fetchPath  string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Mirror markdown docs from a GitHub repository into the corpus",
	Long: `Downloads every markdown file under the given repository path into the
corpus directory, preserving the relative layout. The next 'ask' run
notices the changed fingerprint and rebuilds the index.

Set GITHUB_TOKEN for a higher API rate limit.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchOwner, "owner", "", "Repository owner (required)")
	fetchCmd.Flags().StringVar(&fetchRepo, "repo", "", "Repository name (required)")
	fetchCmd.Flags().StringVar(&fetchPath, "path", "", "Directory within the repository")
	_ = fetchCmd.MarkFlagRequired("owner")
	_ = fetchCmd.MarkFlagRequired("repo")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	client, err := ghclient.NewClient()
	if err != nil {
		return fmt.Errorf("create GitHub client: %w", err)
	}

	mirror := ghclient.NewMirror(client, fetchOwner, fetchRepo, fetchPath, slog.Default())
	fmt.Printf("Fetching %s/%s/%s into %s...\n", fetchOwner, fetchRepo, fetchPath, cfg.CorpusDir)

	count, err := mirror.Sync(ctx, cfg.CorpusDir)
	if err != nil {
		return err
	}
	fmt.Printf("Fetched %d document(s). The index will rebuild on the next ask.\n", count)
	return nil
}
