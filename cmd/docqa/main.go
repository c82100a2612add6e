// Package main provides the docqa CLI: retrieval-augmented question
// answering over a local document corpus.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bull/docqa/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Question answering over a local document corpus",
	Long: `docqa indexes the documents in the corpus directory, keeps the index
in sync with a content fingerprint, and answers free-text questions by
retrieving the most relevant passages and handing them to an LLM.

The index is rebuilt automatically on startup whenever any byte of the
corpus changes; otherwise the persisted index is loaded as-is.

Environment variables:
  OPENAI_API_KEY  OpenAI API key (required)
  PROXY_URL       Outbound HTTP proxy for API traffic (optional)
  GITHUB_TOKEN    GitHub token for the fetch command (optional)`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath,
		"Path to the YAML config file")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(rebuildCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	// Load .env if present (local development), ignore if missing.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
