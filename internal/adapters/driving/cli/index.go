package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustic-ai/codeprism-sub002/internal/connectors/filesystem"
)

var indexSourceID string

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Index a directory tree",
	Long: `Walks the directory, parses every visible file and adds the resulting
chunks to the index. Re-indexing a path replaces its previous content.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexSourceID, "source", "", "source identifier (defaults to sources.default)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if syncOrchestrator == nil || contentService == nil {
		return errors.New("services not configured")
	}

	sourceID := indexSourceID
	if sourceID == "" && configStore != nil {
		sourceID = configStore.GetString("sources.default")
	}
	if sourceID == "" {
		sourceID = "local"
	}

	connector := filesystem.New(sourceID, args[0])
	defer connector.Close()

	ctx := context.Background()
	if err := connector.Validate(ctx); err != nil {
		return err
	}

	count, err := syncOrchestrator.SyncAll(ctx, connector)
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}

	stats := contentService.Stats()
	cmd.Printf("Indexed %d files (%d chunks, %d tokens).\n", count, stats.TotalChunks, stats.TotalTokens)
	return nil
}
