package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find [pattern]",
	Short: "List indexed files matching a regex",
	Args:  cobra.ExactArgs(1),
	RunE:  runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	if contentService == nil {
		return errors.New("content service not configured")
	}

	paths, err := contentService.FindFiles(args[0])
	if err != nil {
		return fmt.Errorf("find failed: %w", err)
	}

	if len(paths) == 0 {
		cmd.Println("No files found.")
		return nil
	}

	sort.Strings(paths)
	for _, path := range paths {
		cmd.Println(path)
	}
	return nil
}
