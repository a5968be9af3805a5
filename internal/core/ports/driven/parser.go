package driven

import "github.com/rustic-ai/codeprism-sub002/internal/core/domain"

// DocumentParser turns raw file bytes into an addressable content node.
// Implementations are pure functions of their inputs: no shared state,
// and malformed input degrades rather than fails (see domain metadata
// flags such as parse_error).
type DocumentParser interface {
	// ParseFile classifies the file by path, runs the matching format
	// parser and assembles one ContentNode holding the ordered chunks.
	// Unknown extensions degrade to plain text rather than failing.
	ParseFile(filePath, content string) (*domain.ContentNode, error)

	// DetectContentType maps a file path to its content type.
	DetectContentType(filePath string) domain.ContentType
}
