package domain

import "time"

// RawFile is a file read by a connector, before parsing. Content is raw
// bytes; the parser decides how to chunk it.
type RawFile struct {
	// SourceID identifies the connector source the file came from.
	SourceID string

	// Path is the file's absolute path.
	Path string

	// Content is the raw file content.
	Content []byte

	// ModTime is the file's last modification time.
	ModTime time.Time

	// Metadata carries connector-specific annotations.
	Metadata map[string]any
}

// FileChange is a single filesystem event observed by a connector watch.
type FileChange struct {
	// Kind is the change kind, sharing the ContentUpdate vocabulary.
	Kind UpdateKind

	// File is the affected file. Content is empty for deletions.
	File RawFile
}
