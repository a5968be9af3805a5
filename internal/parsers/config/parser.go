// Package config chunks configuration files into key-value pairs. JSON is
// parsed structurally; the remaining formats use line-oriented extraction
// that tolerates malformed input by skipping lines it cannot read.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
)

var xmlTagRe = regexp.MustCompile(`<([^/>]+)>([^<]+)</[^>]+>`)

// Parser extracts content chunks from configuration files.
type Parser struct{}

// New creates a configuration parser.
func New() *Parser {
	return &Parser{}
}

// Parse dispatches to the format-specific extraction.
func (p *Parser) Parse(filePath, content string, format domain.ConfigFormat) []domain.ContentChunk {
	switch format {
	case domain.ConfigJSON:
		return p.parseJSON(filePath, content)
	case domain.ConfigYAML:
		return p.parseYAML(filePath, content)
	case domain.ConfigTOML:
		return p.parseTOML(filePath, content)
	case domain.ConfigXML:
		return p.parseXML(filePath, content)
	default:
		// INI, properties and env files share the key=value shape.
		return p.parseKeyValue(filePath, content, format)
	}
}

// parseJSON walks the parsed document and emits one chunk per scalar leaf,
// keyed by its dotted path. Object keys are walked in sorted order so chunk
// ordinals are deterministic. Invalid JSON degrades to a single chunk
// covering the whole file, flagged with parse_error.
func (p *Parser) parseJSON(filePath, content string) []domain.ContentChunk {
	dec := json.NewDecoder(bytes.NewReader([]byte(content)))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		lines := domain.SplitLines(content)
		lastLen := 0
		if len(lines) > 0 {
			lastLen = len(lines[len(lines)-1])
		}
		chunk := domain.NewContentChunk(
			filePath, domain.ConfigurationType(domain.ConfigJSON), content,
			domain.NewSpan(0, len(content), 1, len(lines), 1, lastLen),
			0,
		).WithMetadata(map[string]any{
			"parse_error": true,
			"config_type": "json",
		})
		return []domain.ContentChunk{chunk}
	}

	var chunks []domain.ContentChunk
	p.walkJSON(value, "", filePath, content, &chunks)
	return chunks
}

func (p *Parser) walkJSON(value any, keyPath, filePath, content string, chunks *[]domain.ContentChunk) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			path := key
			if keyPath != "" {
				path = keyPath + "." + key
			}
			p.walkJSON(v[key], path, filePath, content, chunks)
		}
	case []any:
		for i, elem := range v {
			p.walkJSON(elem, fmt.Sprintf("%s[%d]", keyPath, i), filePath, content, chunks)
		}
	case string:
		p.emitJSONLeaf(v, "string", keyPath, filePath, content, chunks)
	case json.Number:
		p.emitJSONLeaf(v.String(), "number", keyPath, filePath, content, chunks)
	case bool:
		p.emitJSONLeaf(strconv.FormatBool(v), "boolean", keyPath, filePath, content, chunks)
	case nil:
		// Null values carry nothing searchable.
	}
}

// emitJSONLeaf creates a chunk for one scalar value. The span is recovered
// by finding the value's first occurrence in the source text; values that
// cannot be located (an identical value may appear earlier) are recorded at
// that earlier position, and values not present literally are dropped.
func (p *Parser) emitJSONLeaf(valueStr, valueType, keyPath, filePath, content string, chunks *[]domain.ContentChunk) {
	searchable := valueStr
	if keyPath != "" {
		searchable = keyPath + ": " + valueStr
	}

	position := strings.Index(content, valueStr)
	if position < 0 {
		return
	}

	before := content[:position]
	line := len(domain.SplitLines(before))
	if line < 1 {
		line = 1
	}
	lineStart := strings.LastIndexByte(before, '\n') + 1
	column := position - lineStart + 1

	chunk := domain.NewContentChunk(
		filePath, domain.ConfigurationType(domain.ConfigJSON), searchable,
		domain.NewSpan(position, position+len(valueStr), line, line, column, column+len(valueStr)),
		len(*chunks),
	).WithMetadata(map[string]any{
		"key_path":    keyPath,
		"value":       valueStr,
		"value_type":  valueType,
		"config_type": "json",
	})
	*chunks = append(*chunks, chunk)
}

// parseYAML extracts key: value lines. Nested structure is not tracked;
// keys keep only their own name. Comment and blank lines are skipped, as
// are keys opening a nested block (no inline value).
func (p *Parser) parseYAML(filePath, content string) []domain.ContentChunk {
	var chunks []domain.ContentChunk
	for lineIdx, line := range domain.SplitLines(content) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		colon := strings.IndexByte(trimmed, ':')
		if colon < 0 {
			continue
		}
		key := strings.TrimSpace(trimmed[:colon])
		value := strings.TrimSpace(trimmed[colon+1:])
		if value == "" {
			continue
		}

		chunk := domain.NewContentChunk(
			filePath, domain.ConfigurationType(domain.ConfigYAML), key+": "+value,
			domain.LineSpan(lineIdx, line, content),
			len(chunks),
		).WithMetadata(map[string]any{
			"key":         key,
			"value":       value,
			"config_type": "yaml",
		})
		chunks = append(chunks, chunk)
	}
	return chunks
}

// parseTOML extracts [section] headers and key = value lines.
func (p *Parser) parseTOML(filePath, content string) []domain.ContentChunk {
	var chunks []domain.ContentChunk
	for lineIdx, line := range domain.SplitLines(content) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section := trimmed[1 : len(trimmed)-1]
			chunk := domain.NewContentChunk(
				filePath, domain.ConfigurationType(domain.ConfigTOML), section,
				domain.LineSpan(lineIdx, line, content),
				len(chunks),
			).WithMetadata(map[string]any{
				"element_type": "section",
				"section_name": section,
				"config_type":  "toml",
			})
			chunks = append(chunks, chunk)
			continue
		}

		eq := strings.IndexByte(trimmed, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(trimmed[:eq])
		value := strings.TrimSpace(trimmed[eq+1:])

		chunk := domain.NewContentChunk(
			filePath, domain.ConfigurationType(domain.ConfigTOML), key+" = "+value,
			domain.LineSpan(lineIdx, line, content),
			len(chunks),
		).WithMetadata(map[string]any{
			"key":         key,
			"value":       value,
			"config_type": "toml",
		})
		chunks = append(chunks, chunk)
	}
	return chunks
}

// parseXML extracts simple <tag>text</tag> elements. Nested elements and
// attributes are not modelled; the regex only sees leaf text content.
func (p *Parser) parseXML(filePath, content string) []domain.ContentChunk {
	var chunks []domain.ContentChunk
	for _, loc := range xmlTagRe.FindAllStringSubmatchIndex(content, -1) {
		tagName := content[loc[2]:loc[3]]
		text := strings.TrimSpace(content[loc[4]:loc[5]])
		if text == "" {
			continue
		}

		chunk := domain.NewContentChunk(
			filePath, domain.ConfigurationType(domain.ConfigXML), text,
			domain.MatchSpan(content, loc[0], loc[1]),
			len(chunks),
		).WithMetadata(map[string]any{
			"tag_name":    tagName,
			"config_type": "xml",
		})
		chunks = append(chunks, chunk)
	}
	return chunks
}

// parseKeyValue handles the key=value family: INI, properties and env
// files. Lines starting with # or ; are comments.
func (p *Parser) parseKeyValue(filePath, content string, format domain.ConfigFormat) []domain.ContentChunk {
	var chunks []domain.ContentChunk
	for lineIdx, line := range domain.SplitLines(content) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}
		eq := strings.IndexByte(trimmed, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(trimmed[:eq])
		value := strings.TrimSpace(trimmed[eq+1:])

		chunk := domain.NewContentChunk(
			filePath, domain.ConfigurationType(format), key+"="+value,
			domain.LineSpan(lineIdx, line, content),
			len(chunks),
		).WithMetadata(map[string]any{
			"key":         key,
			"value":       value,
			"config_type": string(format),
		})
		chunks = append(chunks, chunk)
	}
	return chunks
}
