package index

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
	"github.com/rustic-ai/codeprism-sub002/internal/logger"
)

// Search executes a token-intersection or regex query against the index.
// Results are collected in candidate iteration order, capped at MaxResults
// before sorting, then sorted descending by score. The size cap applies
// before ranking, so the returned set is whatever satisfied the cap first;
// a higher-scoring chunk later in iteration order can be dropped. This is
// a deliberate, known limitation of the ranking.
func (idx *ContentIndex) Search(query domain.SearchQuery) ([]domain.SearchResult, error) {
	var searchRe *regexp.Regexp
	var candidates []domain.ChunkID
	if query.UseRegex {
		re, err := regexp.Compile(query.Query)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPattern, err)
		}
		searchRe = re
		candidates = idx.searchByRegex(re, query)
	} else {
		candidates = idx.searchByTokens(query.Query)
	}
	logger.Debug("Candidates: %d chunks", len(candidates))

	maxResults := query.MaxResults
	if maxResults <= 0 {
		maxResults = domain.DefaultMaxResults
	}

	var results []domain.SearchResult
	seen := make(map[domain.ChunkID]struct{})

	for _, id := range candidates {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		chunk, ok := idx.chunks.Get(id)
		if !ok {
			continue
		}

		if len(query.ContentTypes) > 0 && !matchesContentType(chunk.ContentType, query.ContentTypes) {
			continue
		}

		pass, err := matchesFilePatterns(chunk.FilePath, query.FilePatterns, query.ExcludePatterns)
		if err != nil {
			return nil, err
		}
		if !pass {
			continue
		}

		matches := findMatchesInChunk(chunk, query, searchRe)
		if len(matches) == 0 {
			continue
		}

		results = append(results, domain.SearchResult{
			Chunk:        chunk,
			Score:        relevanceScore(chunk, matches),
			Matches:      matches,
			RelatedNodes: chunk.RelatedNodes,
		})
		if len(results) >= maxResults {
			break
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	logger.Debug("Results: %d", len(results))
	return results, nil
}

// FindFiles returns every indexed file path matching the regex pattern.
// The pattern is a raw regex, not a glob.
func (idx *ContentIndex) FindFiles(pattern string) ([]string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPattern, err)
	}

	var paths []string
	idx.nodes.Range(func(path string, _ *domain.ContentNode) bool {
		if re.MatchString(path) {
			paths = append(paths, path)
		}
		return true
	})
	return paths, nil
}

// searchByTokens intersects the posting lists of the lower-cased query
// tokens. Any token absent from the index empties the result (conjunctive
// semantics); the intersection cost is bounded by the smallest posting list.
// Posting sets are mutated in place by index writers, so each set is only
// read inside View, under its shard lock; result is a private copy.
func (idx *ContentIndex) searchByTokens(query string) []domain.ChunkID {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil
	}

	var result chunkSet
	for _, token := range tokens {
		found := false
		idx.tokenIndex.View(token, func(set chunkSet, present bool) {
			if !present {
				return
			}
			found = true
			if result == nil {
				result = make(chunkSet, len(set))
				for id := range set {
					result[id] = struct{}{}
				}
				return
			}
			for id := range result {
				if _, ok := set[id]; !ok {
					delete(result, id)
				}
			}
		})
		if !found {
			return nil
		}
	}

	ids := make([]domain.ChunkID, 0, len(result))
	for id := range result {
		ids = append(ids, id)
	}
	return ids
}

// searchByRegex scans every stored chunk's content. Case-insensitive
// queries match the pattern against the lower-cased content.
func (idx *ContentIndex) searchByRegex(re *regexp.Regexp, query domain.SearchQuery) []domain.ChunkID {
	var ids []domain.ChunkID
	idx.chunks.Range(func(id domain.ChunkID, chunk domain.ContentChunk) bool {
		content := chunk.Content
		if !query.CaseSensitive {
			content = strings.ToLower(content)
		}
		if re.MatchString(content) {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}

// findMatchesInChunk locates every occurrence of the query in a chunk.
// Token mode scans literally, advancing one byte past each match start so
// overlapping occurrences are still found. Regex mode iterates the
// compiled pattern's non-overlapping matches. Case-insensitive queries
// match against a lowered copy, but line info and context always come
// from the original content so context lines keep their case.
func findMatchesInChunk(chunk domain.ContentChunk, query domain.SearchQuery, re *regexp.Regexp) []domain.SearchMatch {
	haystack := chunk.Content
	term := query.Query
	if !query.CaseSensitive {
		haystack = strings.ToLower(haystack)
		term = strings.ToLower(term)
	}

	var matches []domain.SearchMatch
	appendMatch := func(text string, position, end int) {
		line, column := lineInfo(chunk.Content, position)
		match := domain.SearchMatch{
			Text:         text,
			Position:     position,
			LineNumber:   line,
			ColumnNumber: column,
		}
		if query.IncludeContext {
			match.ContextBefore = contextBefore(chunk.Content, position, query.ContextLines)
			match.ContextAfter = contextAfter(chunk.Content, end, query.ContextLines)
		}
		matches = append(matches, match)
	}

	if re != nil {
		for _, loc := range re.FindAllStringIndex(haystack, -1) {
			appendMatch(haystack[loc[0]:loc[1]], loc[0], loc[1])
		}
		return matches
	}

	if term == "" {
		return nil
	}
	start := 0
	for {
		pos := strings.Index(haystack[start:], term)
		if pos < 0 {
			break
		}
		absolute := start + pos
		appendMatch(term, absolute, absolute+len(term))
		start = absolute + 1
	}
	return matches
}

// lineInfo derives the 1-indexed line and column of a byte position by
// counting newlines in the preceding content.
func lineInfo(content string, position int) (line, column int) {
	if position > len(content) {
		position = len(content)
	}
	prefix := content[:position]
	line = strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	column = position - lineStart + 1
	return line, column
}

// contextBefore joins up to n lines immediately preceding the match line.
func contextBefore(content string, position, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	line, _ := lineInfo(content, position)
	cur := line - 1
	start := cur - n
	if start < 0 {
		start = 0
	}
	if start >= cur {
		return ""
	}
	return strings.Join(lines[start:cur], "\n")
}

// contextAfter joins up to n lines immediately following the match line.
func contextAfter(content string, position, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	line, _ := lineInfo(content, position)
	start := line
	if start >= len(lines) {
		return ""
	}
	end := start + n
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

// relevanceScore is the heuristic ranking: a content-type base plus a
// 0.1 bonus per match, clamped to [0, 1]. No IR model is involved.
func relevanceScore(chunk domain.ContentChunk, matches []domain.SearchMatch) float64 {
	if len(matches) == 0 {
		return 0
	}

	var typeScore float64
	switch chunk.ContentType.Kind {
	case domain.KindDocumentation:
		typeScore = 0.8
	case domain.KindComment:
		switch chunk.ContentType.CommentCtx {
		case domain.CommentDocumentation:
			typeScore = 0.7
		case domain.CommentFunction, domain.CommentClass:
			typeScore = 0.6
		default:
			typeScore = 0.4
		}
	case domain.KindCode:
		typeScore = 0.5
	case domain.KindConfiguration:
		typeScore = 0.4
	default:
		typeScore = 0.2
	}

	score := typeScore + float64(len(matches))*0.1
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// matchesContentType compares variants only: a Documentation filter matches
// documentation of any format. The format and language fields are ignored.
func matchesContentType(contentType domain.ContentType, allowed []domain.ContentType) bool {
	for _, t := range allowed {
		if contentType.SameKind(t) {
			return true
		}
	}
	return false
}

// matchesFilePatterns applies exclude globs first, then include globs.
// An empty include list passes everything through. Globs are compiled to
// anchored regexes per call.
func matchesFilePatterns(filePath string, include, exclude []string) (bool, error) {
	for _, pattern := range exclude {
		re, err := regexp.Compile(globToRegex(pattern))
		if err != nil {
			return false, fmt.Errorf("%w: %v", domain.ErrInvalidPattern, err)
		}
		if re.MatchString(filePath) {
			return false, nil
		}
	}

	if len(include) == 0 {
		return true, nil
	}
	for _, pattern := range include {
		re, err := regexp.Compile(globToRegex(pattern))
		if err != nil {
			return false, fmt.Errorf("%w: %v", domain.ErrInvalidPattern, err)
		}
		if re.MatchString(filePath) {
			return true, nil
		}
	}
	return false, nil
}

// globToRegex converts a * / ? wildcard pattern to an anchored regex,
// escaping every other regex metacharacter.
func globToRegex(glob string) string {
	var b strings.Builder
	b.WriteByte('^')
	for _, ch := range glob {
		switch ch {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		case '.', '+', '^', '$', '(', ')', '[', ']', '{', '}', '|', '\\':
			b.WriteByte('\\')
			b.WriteRune(ch)
		default:
			b.WriteRune(ch)
		}
	}
	b.WriteByte('$')
	return b.String()
}
