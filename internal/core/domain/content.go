package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// ContentKind discriminates the closed set of content type variants.
// Index filtering compares kinds only, never the format or language fields.
type ContentKind string

// Content kinds.
const (
	KindCode          ContentKind = "code"
	KindDocumentation ContentKind = "documentation"
	KindConfiguration ContentKind = "configuration"
	KindComment       ContentKind = "comment"
	KindPlainText     ContentKind = "plain_text"
)

// Language identifies the programming language of code or comment content.
type Language string

// Known languages.
const (
	LangUnknown    Language = "unknown"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangPython     Language = "python"
	LangJava       Language = "java"
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangC          Language = "c"
	LangCpp        Language = "cpp"
)

// DocumentFormat identifies a documentation file format.
type DocumentFormat string

// Documentation formats.
const (
	DocMarkdown         DocumentFormat = "markdown"
	DocRestructuredText DocumentFormat = "restructured_text"
	DocAsciiDoc         DocumentFormat = "asciidoc"
	DocPlainText        DocumentFormat = "plain_text"
	DocHTML             DocumentFormat = "html"
)

// ConfigFormat identifies a configuration file format.
type ConfigFormat string

// Configuration formats.
const (
	ConfigJSON       ConfigFormat = "json"
	ConfigYAML       ConfigFormat = "yaml"
	ConfigTOML       ConfigFormat = "toml"
	ConfigINI        ConfigFormat = "ini"
	ConfigProperties ConfigFormat = "properties"
	ConfigEnv        ConfigFormat = "env"
	ConfigXML        ConfigFormat = "xml"
)

// CommentContext describes where a code comment appears.
type CommentContext string

// Comment contexts, ordered roughly by search relevance.
const (
	CommentFunction      CommentContext = "function"
	CommentClass         CommentContext = "class"
	CommentModule        CommentContext = "module"
	CommentInline        CommentContext = "inline"
	CommentBlock         CommentContext = "block"
	CommentDocumentation CommentContext = "documentation"
)

// ContentType is the closed variant set describing what a chunk contains.
// Only the fields relevant to Kind are populated: Language for code,
// DocFormat for documentation, ConfigFormat for configuration, and
// Language+CommentCtx for comments.
type ContentType struct {
	Kind       ContentKind
	Language   Language
	DocFormat  DocumentFormat
	ConfFormat ConfigFormat
	CommentCtx CommentContext
}

// CodeType builds a Code content type.
func CodeType(lang Language) ContentType {
	return ContentType{Kind: KindCode, Language: lang}
}

// DocumentationType builds a Documentation content type.
func DocumentationType(format DocumentFormat) ContentType {
	return ContentType{Kind: KindDocumentation, DocFormat: format}
}

// ConfigurationType builds a Configuration content type.
func ConfigurationType(format ConfigFormat) ContentType {
	return ContentType{Kind: KindConfiguration, ConfFormat: format}
}

// CommentType builds a Comment content type.
func CommentType(lang Language, ctx CommentContext) ContentType {
	return ContentType{Kind: KindComment, Language: lang, CommentCtx: ctx}
}

// PlainTextType builds a PlainText content type.
func PlainTextType() ContentType {
	return ContentType{Kind: KindPlainText}
}

// SameKind reports whether two content types share a variant, ignoring
// the format/language fields. This is the equality used for filtering.
func (t ContentType) SameKind(other ContentType) bool {
	return t.Kind == other.Kind
}

// Key renders the posting-index key for this content type.
func (t ContentType) Key() string {
	switch t.Kind {
	case KindCode:
		return "code:" + string(t.Language)
	case KindDocumentation:
		return "doc:" + string(t.DocFormat)
	case KindConfiguration:
		return "config:" + string(t.ConfFormat)
	case KindComment:
		return "comment:" + string(t.Language) + ":" + string(t.CommentCtx)
	default:
		return "text"
	}
}

// ChunkID is a content-addressed chunk identifier: the first 16 bytes of
// SHA-256 over the normalized file path, the little-endian chunk ordinal,
// and a digest of the chunk text. Identical inputs always yield the same id.
type ChunkID [16]byte

// NewChunkID derives an id from a file path, chunk ordinal and content digest.
func NewChunkID(filePath string, chunkIndex int, contentDigest [sha256.Size]byte) ChunkID {
	var ordinal [8]byte
	binary.LittleEndian.PutUint64(ordinal[:], uint64(chunkIndex))

	h := sha256.New()
	h.Write([]byte(filepath.ToSlash(filePath)))
	h.Write(ordinal[:])
	h.Write(contentDigest[:])

	var id ChunkID
	copy(id[:], h.Sum(nil)[:16])
	return id
}

// Hex returns the id as a 32-character lowercase hex string.
func (id ChunkID) Hex() string {
	return hex.EncodeToString(id[:])
}

// tokenRe splits content on runs of non-word characters.
var tokenRe = regexp.MustCompile(`\W+`)

// Tokenize extracts the lowercase search tokens from content. Single-character
// fragments are dropped and duplicates removed, preserving first occurrence.
func Tokenize(content string) []string {
	var tokens []string
	seen := make(map[string]struct{})
	for _, raw := range tokenRe.Split(content, -1) {
		if len(raw) <= 1 {
			continue
		}
		token := strings.ToLower(raw)
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}

// ContentChunk is the smallest indexed unit of content extracted from a file.
// A chunk is immutable once constructed; it is replaced, never mutated.
type ContentChunk struct {
	// ID is the content-addressed identifier.
	ID ChunkID

	// FilePath is the file this chunk was extracted from.
	FilePath string

	// ContentType describes what the chunk contains.
	ContentType ContentType

	// Content is the chunk text.
	Content string

	// Span is the chunk's source location.
	Span Span

	// ChunkIndex is the ordinal position within the file.
	ChunkIndex int

	// Tokens are the lowercase words indexed for search.
	Tokens []string

	// RelatedNodes lists file paths related to this chunk.
	RelatedNodes []string

	// Metadata holds per-chunk parser annotations.
	Metadata map[string]any
}

// NewContentChunk builds a chunk, deriving its id and tokens from content.
func NewContentChunk(filePath string, contentType ContentType, content string, span Span, chunkIndex int) ContentChunk {
	digest := sha256.Sum256([]byte(content))
	return ContentChunk{
		ID:          NewChunkID(filePath, chunkIndex, digest),
		FilePath:    filePath,
		ContentType: contentType,
		Content:     content,
		Span:        span,
		ChunkIndex:  chunkIndex,
		Tokens:      Tokenize(content),
	}
}

// WithMetadata returns a copy of the chunk carrying the given metadata.
func (c ContentChunk) WithMetadata(metadata map[string]any) ContentChunk {
	c.Metadata = metadata
	return c
}

// ContentNode is the set of chunks belonging to one file. A file path maps
// to at most one live node; adding a node for an existing path supersedes it.
type ContentNode struct {
	// FilePath is the indexed file.
	FilePath string

	// ContentType is the file-level content type.
	ContentType ContentType

	// Chunks are the ordered content chunks of the file.
	Chunks []ContentChunk

	// FileSize is the file size in bytes.
	FileSize int

	// LastIndexed is when the file was last parsed.
	LastIndexed time.Time
}

// NewContentNode creates an empty node for a file.
func NewContentNode(filePath string, contentType ContentType) *ContentNode {
	return &ContentNode{
		FilePath:    filePath,
		ContentType: contentType,
		LastIndexed: time.Now(),
	}
}

// AddChunk appends a chunk to the node.
func (n *ContentNode) AddChunk(chunk ContentChunk) {
	n.Chunks = append(n.Chunks, chunk)
}

// AllTokens returns the sorted union of all chunk tokens.
func (n *ContentNode) AllTokens() []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, chunk := range n.Chunks {
		for _, token := range chunk.Tokens {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			tokens = append(tokens, token)
		}
	}
	sort.Strings(tokens)
	return tokens
}

// ContentStats is a derived snapshot of index-wide statistics. It is rebuilt
// wholesale from index state, never mutated in place.
type ContentStats struct {
	// TotalFiles is the number of indexed files.
	TotalFiles int

	// TotalChunks is the number of indexed chunks.
	TotalChunks int

	// TotalTokens is the number of distinct tokens in the token index.
	TotalTokens int

	// ContentByType counts chunks per content type key.
	ContentByType map[string]int

	// SizeDistribution counts files per size bucket.
	SizeDistribution map[string]int

	// ComputedAt is when the snapshot was taken.
	ComputedAt time.Time
}

// NewContentStats creates an empty stats snapshot.
func NewContentStats() ContentStats {
	return ContentStats{
		ContentByType:    make(map[string]int),
		SizeDistribution: make(map[string]int),
		ComputedAt:       time.Now(),
	}
}

// UpdateKind describes the kind of content change reported to listeners.
type UpdateKind string

// Update kinds.
const (
	UpdateCreated  UpdateKind = "created"
	UpdateModified UpdateKind = "modified"
	UpdateDeleted  UpdateKind = "deleted"
	UpdateRenamed  UpdateKind = "renamed"
)

// ContentUpdate is the event delivered to update listeners after a mutation.
type ContentUpdate struct {
	// FilePath is the file that changed.
	FilePath string

	// Kind is the kind of change.
	Kind UpdateKind

	// OldPath is the previous path for renames, empty otherwise.
	OldPath string

	// Timestamp is when the update occurred.
	Timestamp time.Time
}
