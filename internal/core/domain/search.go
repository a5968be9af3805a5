package domain

// DefaultMaxResults caps search results when the query does not set a limit.
const DefaultMaxResults = 100

// DefaultContextLines is the number of context lines attached to matches.
const DefaultContextLines = 2

// SearchQuery configures a content search.
type SearchQuery struct {
	// Query is the search text, or a regex pattern when UseRegex is set.
	Query string

	// UseRegex switches from token-intersection to regex matching.
	UseRegex bool

	// CaseSensitive disables the default lowercase folding.
	CaseSensitive bool

	// ContentTypes restricts results to the given type variants.
	// Matching compares kinds only. Empty means all types.
	ContentTypes []ContentType

	// FilePatterns are include globs; empty passes every path.
	FilePatterns []string

	// ExcludePatterns are exclude globs; any match drops the candidate.
	ExcludePatterns []string

	// MaxResults caps the number of results collected.
	MaxResults int

	// IncludeContext attaches surrounding lines to each match.
	IncludeContext bool

	// ContextLines is the number of lines before and after a match.
	ContextLines int
}

// NewSearchQuery creates a query with the default knobs: case-insensitive
// token search, context enabled, capped at DefaultMaxResults.
func NewSearchQuery(query string) SearchQuery {
	return SearchQuery{
		Query:          query,
		MaxResults:     DefaultMaxResults,
		IncludeContext: true,
		ContextLines:   DefaultContextLines,
	}
}

// SearchResult is a single ranked search hit.
type SearchResult struct {
	// Chunk is the matching content chunk.
	Chunk ContentChunk

	// Score is the relevance score in [0, 1].
	Score float64

	// Matches are the individual occurrences within the chunk.
	Matches []SearchMatch

	// RelatedNodes lists file paths related to the chunk.
	RelatedNodes []string
}

// SearchMatch is one occurrence of the query within a chunk.
type SearchMatch struct {
	// Text is the matched text.
	Text string

	// Position is the byte offset within the chunk content.
	Position int

	// LineNumber is the 1-indexed line of the match.
	LineNumber int

	// ColumnNumber is the 1-indexed column of the match.
	ColumnNumber int

	// ContextBefore holds the lines preceding the match, if requested.
	ContextBefore string

	// ContextAfter holds the lines following the match, if requested.
	ContextAfter string
}
