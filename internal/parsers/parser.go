package parsers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
	"github.com/rustic-ai/codeprism-sub002/internal/core/ports/driven"
	"github.com/rustic-ai/codeprism-sub002/internal/parsers/config"
	"github.com/rustic-ai/codeprism-sub002/internal/parsers/markdown"
	"github.com/rustic-ai/codeprism-sub002/internal/parsers/plaintext"
)

// Ensure Parser implements the interface.
var _ driven.DocumentParser = (*Parser)(nil)

// Parser dispatches file content to a format-specific parser based on the
// detected content type.
type Parser struct {
	markdown  *markdown.Parser
	config    *config.Parser
	plaintext *plaintext.Parser
}

// New creates a document parser with all format parsers registered.
func New() *Parser {
	return &Parser{
		markdown:  markdown.New(),
		config:    config.New(),
		plaintext: plaintext.New(),
	}
}

// ParseFile parses content into a node of chunks. The file path selects the
// parser; the content is never read from disk here.
func (p *Parser) ParseFile(filePath, content string) (*domain.ContentNode, error) {
	contentType := p.DetectContentType(filePath)
	node := domain.NewContentNode(filePath, contentType)

	var chunks []domain.ContentChunk
	switch contentType.Kind {
	case domain.KindDocumentation:
		if contentType.DocFormat == domain.DocMarkdown {
			chunks = p.markdown.Parse(filePath, content)
		} else {
			chunks = p.plaintext.Parse(filePath, content, contentType.DocFormat)
		}
	case domain.KindConfiguration:
		chunks = p.config.Parse(filePath, content, contentType.ConfFormat)
	case domain.KindPlainText:
		chunks = p.plaintext.Parse(filePath, content, domain.DocPlainText)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, contentType.Key())
	}

	for _, chunk := range chunks {
		node.AddChunk(chunk)
	}
	node.FileSize = len(content)

	return node, nil
}

// DetectContentType classifies a file by extension. The .env filename is
// recognised without an extension; unknown extensions fall back to plain
// text rather than failing.
func (p *Parser) DetectContentType(filePath string) domain.ContentType {
	if filepath.Base(filePath) == ".env" {
		return domain.ConfigurationType(domain.ConfigEnv)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	switch ext {
	case "md", "markdown":
		return domain.DocumentationType(domain.DocMarkdown)
	case "rst":
		return domain.DocumentationType(domain.DocRestructuredText)
	case "adoc", "asciidoc":
		return domain.DocumentationType(domain.DocAsciiDoc)
	case "html", "htm":
		return domain.DocumentationType(domain.DocHTML)
	case "txt", "text":
		return domain.DocumentationType(domain.DocPlainText)
	case "json":
		return domain.ConfigurationType(domain.ConfigJSON)
	case "yaml", "yml":
		return domain.ConfigurationType(domain.ConfigYAML)
	case "toml":
		return domain.ConfigurationType(domain.ConfigTOML)
	case "ini":
		return domain.ConfigurationType(domain.ConfigINI)
	case "properties":
		return domain.ConfigurationType(domain.ConfigProperties)
	case "env":
		return domain.ConfigurationType(domain.ConfigEnv)
	case "xml":
		return domain.ConfigurationType(domain.ConfigXML)
	default:
		return domain.PlainTextType()
	}
}
