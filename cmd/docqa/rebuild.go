package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the index regardless of the stored fingerprint",
	Long: `Re-chunks and re-embeds the whole corpus, persists the new index, and
rewrites the fingerprint sidecar. Useful after changing the chunking
policy or embedding model, which the content fingerprint cannot detect.`,
	RunE: runRebuild,
}

func runRebuild(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Println("Rebuilding index...")
	start := time.Now()
	if _, err := a.controller.ForceRebuild(ctx); err != nil {
		return err
	}

	result := a.builder.LastResult()
	fmt.Println("Rebuild complete.")
	fmt.Printf("  Documents: %d\n", result.TotalDocs)
	fmt.Printf("  Chunks: %d\n", result.TotalChunks)
	fmt.Printf("  Duration: %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
