// Command contentidx indexes documentation and configuration trees and
// answers token and regex searches over them.
package main

import (
	"fmt"
	"os"

	configfile "github.com/rustic-ai/codeprism-sub002/internal/adapters/driven/config/file"
	"github.com/rustic-ai/codeprism-sub002/internal/adapters/driving/cli"
	"github.com/rustic-ai/codeprism-sub002/internal/core/services"
	"github.com/rustic-ai/codeprism-sub002/internal/index"
	"github.com/rustic-ai/codeprism-sub002/internal/logger"
	"github.com/rustic-ai/codeprism-sub002/internal/parsers"
)

// version is set at build time with -ldflags.
var version = "dev"

func main() {
	configStore, err := configfile.NewConfigStore(os.Getenv("CONTENTIDX_CONFIG_DIR"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "contentidx: config: %v\n", err)
		os.Exit(1)
	}

	contentIndex := index.New()
	contentIndex.AddUpdateListener(&index.LoggingListener{})

	contentService := services.NewContentService(parsers.New(), contentIndex)
	syncService := services.NewSyncService(contentService)

	cli.SetVersion(version)
	cli.SetServices(contentService, syncService, configStore)

	if err := cli.Execute(); err != nil {
		logger.Debug("Exiting with error: %v", err)
		fmt.Fprintf(os.Stderr, "contentidx: %v\n", err)
		os.Exit(1)
	}
}
