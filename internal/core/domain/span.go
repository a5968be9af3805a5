package domain

import (
	"fmt"
	"strings"
)

// Span is a source location within a file. Byte offsets are 0-indexed with
// an exclusive end; lines and columns are 1-indexed.
type Span struct {
	// StartByte is the starting byte offset.
	StartByte int

	// EndByte is the ending byte offset (exclusive).
	EndByte int

	// StartLine is the starting line (1-indexed).
	StartLine int

	// EndLine is the ending line (1-indexed).
	EndLine int

	// StartColumn is the starting column (1-indexed).
	StartColumn int

	// EndColumn is the ending column (1-indexed).
	EndColumn int
}

// NewSpan creates a span from explicit offsets.
func NewSpan(startByte, endByte, startLine, endLine, startColumn, endColumn int) Span {
	return Span{
		StartByte:   startByte,
		EndByte:     endByte,
		StartLine:   startLine,
		EndLine:     endLine,
		StartColumn: startColumn,
		EndColumn:   endColumn,
	}
}

// Len returns the span's length in bytes.
func (s Span) Len() int {
	return s.EndByte - s.StartByte
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.StartByte == s.EndByte
}

// String renders the span as line:col-line:col.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartColumn, s.EndLine, s.EndColumn)
}

// LineSpan builds the span of a whole source line. lineIdx is 0-indexed;
// the byte offset is recovered by summing the lengths of the preceding
// lines plus their newlines.
func LineSpan(lineIdx int, line, content string) Span {
	startByte := 0
	for i, l := range SplitLines(content) {
		if i >= lineIdx {
			break
		}
		startByte += len(l) + 1
	}
	return NewSpan(startByte, startByte+len(line), lineIdx+1, lineIdx+1, 1, len(line)+1)
}

// MatchSpan builds the span of a byte range located by a pattern match.
func MatchSpan(content string, startByte, endByte int) Span {
	before := content[:startByte]
	beforeLines := SplitLines(before)
	startLine := len(beforeLines)
	startColumn := 1
	if n := len(beforeLines); n > 0 {
		startColumn = len(beforeLines[n-1]) + 1
	}

	matchLines := SplitLines(content[startByte:endByte])
	endLine := startLine
	if len(matchLines) > 1 {
		endLine = startLine + len(matchLines) - 1
	}
	endColumn := startColumn + (endByte - startByte)
	if len(matchLines) > 1 {
		endColumn = len(matchLines[len(matchLines)-1]) + 1
	}

	if startLine < 1 {
		startLine = 1
	}
	if endLine < 1 {
		endLine = 1
	}
	return NewSpan(startByte, endByte, startLine, endLine, startColumn, endColumn)
}

// ParagraphSpan builds the span of an inclusive line range. Both line
// arguments are 0-indexed.
func ParagraphSpan(lines []string, startLine, endLine int) Span {
	startByte := 0
	for i := 0; i < startLine && i < len(lines); i++ {
		startByte += len(lines[i]) + 1
	}
	endByte := 0
	for i := 0; i <= endLine && i < len(lines); i++ {
		endByte += len(lines[i]) + 1
	}
	endByte--

	endColumn := 1
	if endLine >= 0 && endLine < len(lines) {
		endColumn = len(lines[endLine]) + 1
	}
	return NewSpan(startByte, endByte, startLine+1, endLine+1, 1, endColumn)
}

// SplitLines splits content on newlines without yielding a trailing empty
// line for newline-terminated content. Empty content yields no lines.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}
