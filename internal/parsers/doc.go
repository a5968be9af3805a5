// Package parsers turns documentation and configuration files into content
// chunks. Format-specific parsers live in subpackages; this package detects
// the content type from the file path and dispatches to the right one.
package parsers
