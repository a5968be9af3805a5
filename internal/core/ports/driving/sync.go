package driving

import (
	"context"

	"github.com/rustic-ai/codeprism-sub002/internal/core/ports/driven"
)

// SyncOrchestrator drives connector output into the index.
type SyncOrchestrator interface {
	// SyncAll indexes every file the connector yields and returns the
	// number of files indexed.
	SyncAll(ctx context.Context, connector driven.Connector) (int, error)

	// WatchAndIndex applies connector change events to the index until
	// the context is cancelled.
	WatchAndIndex(ctx context.Context, connector driven.Connector) error
}
