// Package plaintext chunks text documents by paragraph. It is the fallback
// for unrecognised extensions and also handles the documentation formats
// without a structural parser (reStructuredText, AsciiDoc, HTML, txt).
package plaintext

import (
	"strings"

	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
)

// Parser extracts paragraph chunks from plain text.
type Parser struct{}

// New creates a plain text parser.
func New() *Parser {
	return &Parser{}
}

// Parse splits content into paragraphs at blank lines. Each paragraph's
// lines are trimmed and rejoined with newlines; the line_count metadata
// records how many lines it had.
func (p *Parser) Parse(filePath, content string, format domain.DocumentFormat) []domain.ContentChunk {
	var chunks []domain.ContentChunk
	lines := domain.SplitLines(content)
	docType := domain.DocumentationType(format)

	var paragraphLines []string
	paragraphStart := 0
	flush := func(endLine int) {
		if len(paragraphLines) == 0 {
			return
		}
		chunk := domain.NewContentChunk(
			filePath, docType, strings.Join(paragraphLines, "\n"),
			domain.ParagraphSpan(lines, paragraphStart, endLine),
			len(chunks),
		).WithMetadata(map[string]any{
			"element_type": "paragraph",
			"line_count":   len(paragraphLines),
		})
		chunks = append(chunks, chunk)
		paragraphLines = nil
	}

	for lineIdx, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush(lineIdx - 1)
			continue
		}
		if len(paragraphLines) == 0 {
			paragraphStart = lineIdx
		}
		paragraphLines = append(paragraphLines, trimmed)
	}
	flush(len(lines) - 1)

	return chunks
}
