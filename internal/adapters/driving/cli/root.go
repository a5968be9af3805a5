// Package cli is the cobra command surface. Commands talk to the core
// exclusively through the driving ports; service wiring happens in main.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/rustic-ai/codeprism-sub002/internal/core/ports/driven"
	"github.com/rustic-ai/codeprism-sub002/internal/core/ports/driving"
	"github.com/rustic-ai/codeprism-sub002/internal/logger"
)

var (
	contentService   driving.ContentService
	syncOrchestrator driving.SyncOrchestrator
	configStore      driven.ConfigStore

	version = "dev"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "contentidx",
	Short: "Index and search documentation and configuration files",
	Long: `contentidx parses markdown, configuration and plain text files into
searchable chunks, keeps them in an in-memory index, and answers token
and regex queries over the indexed content.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetServices injects the service implementations the commands run against.
func SetServices(content driving.ContentService, sync driving.SyncOrchestrator, config driven.ConfigStore) {
	contentService = content
	syncOrchestrator = sync
	configStore = config
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
