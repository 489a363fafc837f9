// ABOUTME: CLI command to rebuild the passage index
// ABOUTME: Chunks and embeds the articles directory into a fresh index
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewIndexCmd creates index command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the passage index",
		Long: `Rebuild the passage index from the articles directory.

Loads every article (JSON, text, or markdown), splits it into
overlapping chunks, embeds the chunks, and persists the index. The
previous index is replaced only after the rebuild succeeds.

Examples:
  dialrag index
  DIALRAG_ARTICLES_DIR=./letters dialrag index`,
		Args: cobra.NoArgs,
		RunE: runIndex,
	}

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	engine, cfg, err := setupEngine()
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexing articles from %s...\n", cfg.ArticlesDir)
	}

	stats, err := engine.RebuildIndex(cmd.Context())
	if err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Indexed %d articles into %d chunks (dim %d) in %.1fs\n",
			stats.TotalArticles, stats.TotalChunks, stats.EmbeddingDim, stats.BuildSeconds)
	}
	return nil
}
