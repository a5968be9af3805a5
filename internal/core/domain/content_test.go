package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunkID(t *testing.T) {
	t.Run("same inputs produce same id", func(t *testing.T) {
		a := NewContentChunk("docs/readme.md", DocumentationType(DocMarkdown), "hello world", Span{}, 0)
		b := NewContentChunk("docs/readme.md", DocumentationType(DocMarkdown), "hello world", Span{}, 0)

		assert.Equal(t, a.ID, b.ID)
	})

	t.Run("different ordinal produces different id", func(t *testing.T) {
		a := NewContentChunk("docs/readme.md", DocumentationType(DocMarkdown), "hello world", Span{}, 0)
		b := NewContentChunk("docs/readme.md", DocumentationType(DocMarkdown), "hello world", Span{}, 1)

		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("different content produces different id", func(t *testing.T) {
		a := NewContentChunk("docs/readme.md", DocumentationType(DocMarkdown), "hello world", Span{}, 0)
		b := NewContentChunk("docs/readme.md", DocumentationType(DocMarkdown), "goodbye world", Span{}, 0)

		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("different path produces different id", func(t *testing.T) {
		a := NewContentChunk("docs/a.md", DocumentationType(DocMarkdown), "hello", Span{}, 0)
		b := NewContentChunk("docs/b.md", DocumentationType(DocMarkdown), "hello", Span{}, 0)

		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("hex is 32 characters", func(t *testing.T) {
		chunk := NewContentChunk("a.md", DocumentationType(DocMarkdown), "text", Span{}, 0)

		assert.Len(t, chunk.ID.Hex(), 32)
	})
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "lowercases and splits on non-word characters",
			content:  "Hello, World! foo-bar",
			expected: []string{"hello", "world", "foo", "bar"},
		},
		{
			name:     "drops single character tokens",
			content:  "a be sea",
			expected: []string{"be", "sea"},
		},
		{
			name:     "dedupes preserving first occurrence",
			content:  "go Go GO rust go",
			expected: []string{"go", "rust"},
		},
		{
			name:     "keeps digits and underscores",
			content:  "max_results 100",
			expected: []string{"max_results", "100"},
		},
		{
			name:     "empty content yields nothing",
			content:  "",
			expected: nil,
		},
		{
			name:     "punctuation only yields nothing",
			content:  "!!! ... ???",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.content))
		})
	}
}

func TestContentTypeKey(t *testing.T) {
	tests := []struct {
		name        string
		contentType ContentType
		expected    string
	}{
		{"code", CodeType(LangGo), "code:go"},
		{"documentation", DocumentationType(DocMarkdown), "doc:markdown"},
		{"configuration", ConfigurationType(ConfigJSON), "config:json"},
		{"comment", CommentType(LangPython, CommentFunction), "comment:python:function"},
		{"plain text", PlainTextType(), "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.contentType.Key())
		})
	}
}

func TestContentTypeSameKind(t *testing.T) {
	t.Run("same variant different format matches", func(t *testing.T) {
		assert.True(t, DocumentationType(DocMarkdown).SameKind(DocumentationType(DocHTML)))
		assert.True(t, ConfigurationType(ConfigJSON).SameKind(ConfigurationType(ConfigYAML)))
	})

	t.Run("different variants do not match", func(t *testing.T) {
		assert.False(t, DocumentationType(DocMarkdown).SameKind(ConfigurationType(ConfigJSON)))
		assert.False(t, PlainTextType().SameKind(CodeType(LangGo)))
	})
}

func TestContentNode(t *testing.T) {
	t.Run("add chunk preserves order", func(t *testing.T) {
		node := NewContentNode("doc.md", DocumentationType(DocMarkdown))
		node.AddChunk(NewContentChunk("doc.md", DocumentationType(DocMarkdown), "first", Span{}, 0))
		node.AddChunk(NewContentChunk("doc.md", DocumentationType(DocMarkdown), "second", Span{}, 1))

		require.Len(t, node.Chunks, 2)
		assert.Equal(t, "first", node.Chunks[0].Content)
		assert.Equal(t, "second", node.Chunks[1].Content)
	})

	t.Run("all tokens is sorted union", func(t *testing.T) {
		node := NewContentNode("doc.md", DocumentationType(DocMarkdown))
		node.AddChunk(NewContentChunk("doc.md", DocumentationType(DocMarkdown), "zebra apple", Span{}, 0))
		node.AddChunk(NewContentChunk("doc.md", DocumentationType(DocMarkdown), "apple mango", Span{}, 1))

		assert.Equal(t, []string{"apple", "mango", "zebra"}, node.AllTokens())
	})
}

func TestNewSearchQuery(t *testing.T) {
	query := NewSearchQuery("hello")

	assert.Equal(t, "hello", query.Query)
	assert.False(t, query.UseRegex)
	assert.False(t, query.CaseSensitive)
	assert.Equal(t, DefaultMaxResults, query.MaxResults)
	assert.True(t, query.IncludeContext)
	assert.Equal(t, DefaultContextLines, query.ContextLines)
	assert.Empty(t, query.ContentTypes)
	assert.Empty(t, query.FilePatterns)
	assert.Empty(t, query.ExcludePatterns)
}
