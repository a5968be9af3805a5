package driving

import (
	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
	"github.com/rustic-ai/codeprism-sub002/internal/core/ports/driven"
)

// ContentService is the primary entry point for indexing and searching
// content. It hides the parser and index behind one coherent surface.
type ContentService interface {
	// IndexFile parses content and stores the resulting node in the index,
	// replacing any previous node for the same path.
	IndexFile(filePath, content string) (*domain.ContentNode, error)

	// RemoveFile drops a file's node and chunks from the index.
	RemoveFile(filePath string) error

	// Search executes a full search query.
	Search(query domain.SearchQuery) ([]domain.SearchResult, error)

	// SimpleSearch runs a case-insensitive token search with context.
	SimpleSearch(term string, maxResults int) ([]domain.SearchResult, error)

	// RegexSearch runs a regex search with context.
	RegexSearch(pattern string, maxResults int) ([]domain.SearchResult, error)

	// SearchDocumentation restricts a token search to documentation chunks.
	SearchDocumentation(term string) ([]domain.SearchResult, error)

	// SearchConfiguration restricts a token search to configuration chunks.
	SearchConfiguration(term string) ([]domain.SearchResult, error)

	// SearchInFiles restricts a token search to files matching the globs.
	SearchInFiles(term string, filePatterns []string) ([]domain.SearchResult, error)

	// FindFiles lists indexed file paths matching a regex pattern.
	FindFiles(pattern string) ([]string, error)

	// DetectContentType classifies a path without parsing it.
	DetectContentType(filePath string) domain.ContentType

	// GetNode returns the indexed node for a path.
	GetNode(filePath string) (*domain.ContentNode, bool)

	// GetChunk returns a single chunk by id.
	GetChunk(id domain.ChunkID) (domain.ContentChunk, bool)

	// Stats returns index-wide statistics.
	Stats() domain.ContentStats

	// AddUpdateListener registers a listener for content updates.
	AddUpdateListener(listener driven.UpdateListener)

	// Clear empties the index.
	Clear()
}
