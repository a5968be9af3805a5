// Package domain defines the core business entities for the content index.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Span: A byte and line/column range within a source file
//   - ContentChunk: The smallest indexed and searchable unit of content
//   - ContentNode: All chunks belonging to one file
//   - ContentStats: A cached snapshot of index-wide statistics
//   - SearchQuery / SearchResult: The search surface
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
