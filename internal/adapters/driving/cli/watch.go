package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustic-ai/codeprism-sub002/internal/connectors/filesystem"
)

var watchSourceID string

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Index a directory and keep it up to date",
	Long: `Indexes the directory, then watches it for changes and applies creates,
modifications and deletions to the index until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchSourceID, "source", "local", "source identifier")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if syncOrchestrator == nil {
		return errors.New("services not configured")
	}

	connector := filesystem.New(watchSourceID, args[0])
	defer connector.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := connector.Validate(ctx); err != nil {
		return err
	}

	count, err := syncOrchestrator.SyncAll(ctx, connector)
	if err != nil {
		return fmt.Errorf("initial sync failed: %w", err)
	}
	cmd.Printf("Indexed %d files. Watching %s (Ctrl-C to stop)...\n", count, args[0])

	if err := syncOrchestrator.WatchAndIndex(ctx, connector); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}
	cmd.Println("Watch stopped.")
	return nil
}
