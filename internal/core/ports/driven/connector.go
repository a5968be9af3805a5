package driven

import (
	"context"
	"time"

	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
)

// ConnectorCapabilities describes what a connector supports.
type ConnectorCapabilities struct {
	// SupportsIncremental indicates sync from a point in time.
	SupportsIncremental bool

	// SupportsWatch indicates change notification.
	SupportsWatch bool

	// SupportsHierarchy indicates nested directory traversal.
	SupportsHierarchy bool

	// SupportsBinary indicates binary content delivery.
	SupportsBinary bool
}

// Connector streams files from a content source into the indexing
// pipeline. Implementations own the source-specific traversal and change
// detection; consumers never touch the source directly.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// SourceID returns the configured source identifier.
	SourceID() string

	// Capabilities reports what this connector supports.
	Capabilities() ConnectorCapabilities

	// FullSync streams every file from the source. Both channels are
	// closed when the sync finishes or the context is cancelled.
	FullSync(ctx context.Context) (<-chan domain.RawFile, <-chan error)

	// IncrementalSync streams files modified after the given time.
	IncrementalSync(ctx context.Context, since time.Time) (<-chan domain.RawFile, <-chan error)

	// Watch streams filesystem changes until the context is cancelled.
	Watch(ctx context.Context) (<-chan domain.FileChange, error)

	// Validate checks that the source is reachable.
	Validate(ctx context.Context) error

	// Close releases connector resources. Close is idempotent.
	Close() error
}
