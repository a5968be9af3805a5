package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	stats := contentService.Stats()

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Files:  %d\n", stats.TotalFiles)
	cmd.Printf("Chunks: %d\n", stats.TotalChunks)
	cmd.Printf("Tokens: %d\n", stats.TotalTokens)

	if len(stats.ContentByType) > 0 {
		cmd.Println("\nChunks by type:")
		for _, key := range sortedKeys(stats.ContentByType) {
			cmd.Printf("  %-24s %d\n", key, stats.ContentByType[key])
		}
	}
	if len(stats.SizeDistribution) > 0 {
		cmd.Println("\nFiles by size:")
		for _, key := range sortedKeys(stats.SizeDistribution) {
			cmd.Printf("  %-24s %d\n", key, stats.SizeDistribution[key])
		}
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
