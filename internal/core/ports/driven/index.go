package driven

import "github.com/rustic-ai/codeprism-sub002/internal/core/domain"

// ContentIndex is the concurrent store for content chunks and the posting
// indexes derived from them. All operations are synchronous; callers needing
// timeouts or async integration wrap calls externally.
type ContentIndex interface {
	// AddNode stores a node, atomically superseding any node at the same
	// path, and notifies listeners with a Modified update.
	AddNode(node *domain.ContentNode) error

	// RemoveNode removes the node at the path and notifies listeners with
	// a Deleted update. Removing an unknown path is a silent no-op.
	RemoveNode(filePath string) error

	// GetNode returns the node for a path, or false if absent.
	GetNode(filePath string) (*domain.ContentNode, bool)

	// GetChunk returns the chunk with the given id, or false if absent.
	GetChunk(id domain.ChunkID) (domain.ContentChunk, bool)

	// Search runs a token-intersection or regex query and returns ranked
	// results. It fails only on invalid regex input.
	Search(query domain.SearchQuery) ([]domain.SearchResult, error)

	// FindFiles returns every indexed path matching the regex pattern.
	FindFiles(pattern string) ([]string, error)

	// GetStats returns the cached statistics snapshot, recomputing if stale.
	GetStats() domain.ContentStats

	// AddUpdateListener registers a listener notified synchronously after
	// every mutation, in registration order.
	AddUpdateListener(listener UpdateListener)

	// Clear empties the index.
	Clear()
}

// UpdateListener observes index mutations. Listeners run synchronously in
// the mutating caller's goroutine and must not re-enter the index's
// mutation path.
type UpdateListener interface {
	// OnContentUpdate is called once per mutating index operation.
	OnContentUpdate(update domain.ContentUpdate)
}
