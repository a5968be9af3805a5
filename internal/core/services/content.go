package services

import (
	"fmt"
	"strings"

	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
	"github.com/rustic-ai/codeprism-sub002/internal/core/ports/driven"
	"github.com/rustic-ai/codeprism-sub002/internal/core/ports/driving"
	"github.com/rustic-ai/codeprism-sub002/internal/logger"
)

// Ensure ContentService implements the interface.
var _ driving.ContentService = (*ContentService)(nil)

// ContentService wires the document parser to the content index and offers
// convenience search entry points over the raw query surface.
type ContentService struct {
	parser driven.DocumentParser
	index  driven.ContentIndex
}

// NewContentService creates a content service.
func NewContentService(parser driven.DocumentParser, index driven.ContentIndex) *ContentService {
	return &ContentService{
		parser: parser,
		index:  index,
	}
}

// IndexFile parses content and stores the resulting node, replacing any
// previous node for the same path.
func (s *ContentService) IndexFile(filePath, content string) (*domain.ContentNode, error) {
	node, err := s.parser.ParseFile(filePath, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filePath, err)
	}
	if err := s.index.AddNode(node); err != nil {
		return nil, fmt.Errorf("index %s: %w", filePath, err)
	}
	logger.Debug("Indexed %s: %d chunks", filePath, len(node.Chunks))
	return node, nil
}

// RemoveFile drops a file from the index. Removing an unindexed path is a
// no-op.
func (s *ContentService) RemoveFile(filePath string) error {
	return s.index.RemoveNode(filePath)
}

// Search executes a full search query.
func (s *ContentService) Search(query domain.SearchQuery) ([]domain.SearchResult, error) {
	logger.Section("Content Search")
	logger.Debug("Query: %q regex=%t case_sensitive=%t", query.Query, query.UseRegex, query.CaseSensitive)

	if strings.TrimSpace(query.Query) == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	results, err := s.index.Search(query)
	if err != nil {
		return nil, err
	}
	logger.Debug("Results: %d", len(results))
	return results, nil
}

// SimpleSearch runs a case-insensitive token search with context lines.
func (s *ContentService) SimpleSearch(term string, maxResults int) ([]domain.SearchResult, error) {
	query := domain.NewSearchQuery(term)
	if maxResults > 0 {
		query.MaxResults = maxResults
	}
	return s.Search(query)
}

// RegexSearch runs a regex search with context lines.
func (s *ContentService) RegexSearch(pattern string, maxResults int) ([]domain.SearchResult, error) {
	query := domain.NewSearchQuery(pattern)
	if maxResults > 0 {
		query.MaxResults = maxResults
	}
	query.UseRegex = true
	return s.Search(query)
}

// SearchDocumentation restricts a token search to documentation chunks of
// any format.
func (s *ContentService) SearchDocumentation(term string) ([]domain.SearchResult, error) {
	query := domain.NewSearchQuery(term)
	query.ContentTypes = []domain.ContentType{{Kind: domain.KindDocumentation}}
	return s.Search(query)
}

// SearchConfiguration restricts a token search to configuration chunks of
// any format.
func (s *ContentService) SearchConfiguration(term string) ([]domain.SearchResult, error) {
	query := domain.NewSearchQuery(term)
	query.ContentTypes = []domain.ContentType{{Kind: domain.KindConfiguration}}
	return s.Search(query)
}

// SearchInFiles restricts a token search to files matching the glob
// patterns.
func (s *ContentService) SearchInFiles(term string, filePatterns []string) ([]domain.SearchResult, error) {
	query := domain.NewSearchQuery(term)
	query.FilePatterns = filePatterns
	return s.Search(query)
}

// FindFiles lists indexed file paths matching a regex pattern.
func (s *ContentService) FindFiles(pattern string) ([]string, error) {
	return s.index.FindFiles(pattern)
}

// DetectContentType classifies a path without parsing it.
func (s *ContentService) DetectContentType(filePath string) domain.ContentType {
	return s.parser.DetectContentType(filePath)
}

// GetNode returns the indexed node for a path.
func (s *ContentService) GetNode(filePath string) (*domain.ContentNode, bool) {
	return s.index.GetNode(filePath)
}

// GetChunk returns a single chunk by id.
func (s *ContentService) GetChunk(id domain.ChunkID) (domain.ContentChunk, bool) {
	return s.index.GetChunk(id)
}

// Stats returns index-wide statistics.
func (s *ContentService) Stats() domain.ContentStats {
	return s.index.GetStats()
}

// AddUpdateListener registers a listener for content updates.
func (s *ContentService) AddUpdateListener(listener driven.UpdateListener) {
	s.index.AddUpdateListener(listener)
}

// Clear empties the index.
func (s *ContentService) Clear() {
	s.index.Clear()
}
