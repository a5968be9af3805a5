// Package markdown chunks markdown documents into headers, fenced code
// blocks, and paragraphs. The three element kinds are extracted in
// independent passes, so chunk ordinals group by kind rather than by
// document position.
package markdown

import (
	"regexp"
	"strings"

	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
)

var (
	headerRe    = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	codeBlockRe = regexp.MustCompile("```" + `(\w+)?\n([\s\S]*?)\n` + "```")
)

// Parser extracts content chunks from markdown.
type Parser struct{}

// New creates a markdown parser.
func New() *Parser {
	return &Parser{}
}

// Parse chunks markdown content. Headers carry the header text only (not
// the # marks); code blocks carry the code without the fences; paragraphs
// are runs of non-empty lines outside headers and fences, trimmed and
// joined with newlines.
func (p *Parser) Parse(filePath, content string) []domain.ContentChunk {
	var chunks []domain.ContentChunk
	lines := domain.SplitLines(content)
	mdType := domain.DocumentationType(domain.DocMarkdown)

	for lineIdx, line := range lines {
		captures := headerRe.FindStringSubmatch(line)
		if captures == nil {
			continue
		}
		chunk := domain.NewContentChunk(
			filePath, mdType, captures[2],
			domain.LineSpan(lineIdx, line, content),
			len(chunks),
		).WithMetadata(map[string]any{
			"header_level": len(captures[1]),
			"element_type": "header",
		})
		chunks = append(chunks, chunk)
	}

	for _, loc := range codeBlockRe.FindAllStringSubmatchIndex(content, -1) {
		language := "text"
		if loc[2] >= 0 {
			language = content[loc[2]:loc[3]]
		}
		code := content[loc[4]:loc[5]]

		chunk := domain.NewContentChunk(
			filePath, mdType, code,
			domain.MatchSpan(content, loc[0], loc[1]),
			len(chunks),
		).WithMetadata(map[string]any{
			"language":     language,
			"element_type": "code_block",
		})
		chunks = append(chunks, chunk)
	}

	var paragraphLines []string
	paragraphStart := 0
	flush := func(endLine int) {
		if len(paragraphLines) == 0 {
			return
		}
		chunk := domain.NewContentChunk(
			filePath, mdType, strings.Join(paragraphLines, "\n"),
			domain.ParagraphSpan(lines, paragraphStart, endLine),
			len(chunks),
		).WithMetadata(map[string]any{
			"element_type": "paragraph",
		})
		chunks = append(chunks, chunk)
		paragraphLines = nil
	}

	for lineIdx, line := range lines {
		trimmed := strings.TrimSpace(line)
		if headerRe.MatchString(line) || strings.HasPrefix(trimmed, "```") || trimmed == "" {
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
