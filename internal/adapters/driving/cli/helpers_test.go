package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	configfile "github.com/rustic-ai/codeprism-sub002/internal/adapters/driven/config/file"
	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
	"github.com/rustic-ai/codeprism-sub002/internal/core/services"
	"github.com/rustic-ai/codeprism-sub002/internal/index"
	"github.com/rustic-ai/codeprism-sub002/internal/parsers"
)

// setupTestServices wires real in-memory services behind the package-level
// service variables, seeds a small corpus, and returns a cleanup that
// restores the previous wiring.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	oldContent := contentService
	oldSync := syncOrchestrator
	oldConfig := configStore

	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	content := services.NewContentService(parsers.New(), index.New())
	_, err = content.IndexFile("README.md", "# Overview\n\nThe indexer answers token queries quickly.\n")
	require.NoError(t, err)
	_, err = content.IndexFile("app.json", `{"server": {"port": 8080}}`)
	require.NoError(t, err)

	SetServices(content, services.NewSyncService(content), store)

	return func() {
		contentService = oldContent
		syncOrchestrator = oldSync
		configStore = oldConfig
		resetSearchFlags()
	}
}

// resetSearchFlags restores the package-level flag variables to their
// defaults so flags set in one test do not leak into the next.
func resetSearchFlags() {
	searchRegex = false
	searchCaseSens = false
	searchLimit = 0
	searchTypes = nil
	searchInclude = nil
	searchExclude = nil
	searchContext = domain.DefaultContextLines
	searchNoContext = false
	searchJSON = false
	statsJSON = false
}
