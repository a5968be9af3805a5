// Package filesystem implements the Connector port for local directories.
// It walks a root path for full syncs and uses fsnotify for change
// watching. Hidden files and directories are always skipped.
package filesystem

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
	"github.com/rustic-ai/codeprism-sub002/internal/core/ports/driven"
	"github.com/rustic-ai/codeprism-sub002/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// watchEventsPerSecond bounds how fast watch events are delivered
// downstream. Editors that write files in bursts otherwise flood the
// indexing pipeline.
const watchEventsPerSecond = 50

// Connector streams files from a local directory tree.
type Connector struct {
	sourceID string
	rootPath string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a filesystem connector rooted at rootPath.
func New(sourceID, rootPath string) *Connector {
	return &Connector{
		sourceID: sourceID,
		rootPath: rootPath,
	}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "filesystem"
}

// SourceID returns the configured source identifier.
func (c *Connector) SourceID() string {
	return c.sourceID
}

// Capabilities reports filesystem connector support.
func (c *Connector) Capabilities() driven.ConnectorCapabilities {
	return driven.ConnectorCapabilities{
		SupportsIncremental: true,
		SupportsWatch:       true,
		SupportsHierarchy:   true,
		SupportsBinary:      false,
	}
}

// Validate checks that the root path exists and is a directory.
func (c *Connector) Validate(_ context.Context) error {
	info, err := os.Stat(c.rootPath)
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path error: %s is not a directory", c.rootPath)
	}
	return nil
}

// FullSync walks the whole tree and streams every visible regular file.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.RawFile, <-chan error) {
	return c.sync(ctx, time.Time{})
}

// IncrementalSync streams only files modified after the given time.
func (c *Connector) IncrementalSync(ctx context.Context, since time.Time) (<-chan domain.RawFile, <-chan error) {
	return c.sync(ctx, since)
}

func (c *Connector) sync(ctx context.Context, since time.Time) (<-chan domain.RawFile, <-chan error) {
	files := make(chan domain.RawFile, 16)
	errs := make(chan error, 1)

	runID := uuid.New().String()
	logger.Debug("Sync run %s starting at %s", runID, c.rootPath)

	go func() {
		defer close(files)
		defer close(errs)

		if _, err := os.Stat(c.rootPath); err != nil {
			if os.IsNotExist(err) {
				errs <- fmt.Errorf("root path does not exist: %s", c.rootPath)
			} else {
				errs <- fmt.Errorf("root path error: %w", err)
			}
			return
		}

		count := 0
		err := filepath.WalkDir(c.rootPath, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if isHidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return err
			}
			if !since.IsZero() && !info.ModTime().After(since) {
				return nil
			}

			raw, err := c.readFile(path, info.ModTime())
			if err != nil {
				return err
			}

			select {
			case files <- raw:
				count++
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil && ctx.Err() == nil {
			errs <- err
		}
		logger.Debug("Sync run %s finished: %d files", runID, count)
	}()

	return files, errs
}

// Watch streams filesystem changes under the root until the context is
// cancelled. Events are rate limited; bursts beyond the limit are delayed,
// not dropped.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.FileChange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, domain.ErrWatcherClosed
	}

	if _, err := os.Stat(c.rootPath); err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the root and every visible subdirectory. fsnotify does not
	// recurse on its own.
	err = filepath.WalkDir(c.rootPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if isHidden(path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", c.rootPath, err)
	}

	c.watcher = watcher
	changes := make(chan domain.FileChange, 16)
	limiter := rate.NewLimiter(rate.Limit(watchEventsPerSecond), watchEventsPerSecond)

	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// New directories must be added to the watch set.
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if !isHidden(event.Name) {
							watcher.Add(event.Name)
						}
						continue
					}
				}
				change := c.handleFsEvent(event)
				if change == nil {
					continue
				}
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// handleFsEvent converts an fsnotify event into a file change, or nil for
// events that should not reach the indexing pipeline (directories, hidden
// paths, chmod).
func (c *Connector) handleFsEvent(event fsnotify.Event) *domain.FileChange {
	if isHidden(event.Name) {
		return nil
	}

	switch {
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return &domain.FileChange{
			Kind: domain.UpdateDeleted,
			File: domain.RawFile{
				SourceID: c.sourceID,
				Path:     event.Name,
			},
		}
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return nil
		}
		raw, err := c.readFile(event.Name, info.ModTime())
		if err != nil {
			logger.Warn("Read %s: %v", event.Name, err)
			return nil
		}
		kind := domain.UpdateModified
		if event.Op.Has(fsnotify.Create) {
			kind = domain.UpdateCreated
		}
		return &domain.FileChange{Kind: kind, File: raw}
	default:
		return nil
	}
}

// Close releases the watcher, if any. Close is idempotent.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.watcher != nil {
		return c.watcher.Close()
	}
	return nil
}

func (c *Connector) readFile(path string, modTime time.Time) (domain.RawFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.RawFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)
	return domain.RawFile{
		SourceID: c.sourceID,
		Path:     path,
		Content:  content,
		ModTime:  modTime,
		Metadata: map[string]any{
			"filename":  name,
			"extension": strings.TrimPrefix(filepath.Ext(name), "."),
			"mime_type": detectMIMEType(name),
		},
	}, nil
}

// mimeFallbacks covers source and config extensions the platform mime
// database usually lacks.
var mimeFallbacks = map[string]string{
	".md":         "text/markdown",
	".markdown":   "text/markdown",
	".go":         "text/x-go",
	".py":         "text/x-python",
	".rs":         "text/x-rust",
	".ts":         "text/typescript",
	".tsx":        "text/typescript-jsx",
	".jsx":        "text/javascript-jsx",
	".yaml":       "text/yaml",
	".yml":        "text/yaml",
	".toml":       "text/toml",
	".ini":        "text/x-ini",
	".env":        "text/x-env",
	".properties": "text/x-properties",
	".sh":         "text/x-shellscript",
	".bash":       "text/x-shellscript",
	".sql":        "text/x-sql",
	".rst":        "text/x-rst",
	".adoc":       "text/asciidoc",
	".txt":        "text/plain",
}

// detectMIMEType resolves a file's MIME type from its extension, preferring
// the fallback table over the platform registry and stripping any charset
// parameter. Extensionless files are treated as plain text.
func detectMIMEType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "text/plain"
	}
	if mimeType, ok := mimeFallbacks[ext]; ok {
		return mimeType
	}
	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		if idx := strings.IndexByte(mimeType, ';'); idx >= 0 {
			mimeType = strings.TrimSpace(mimeType[:idx])
		}
		return mimeType
	}
	return "application/octet-stream"
}

// isHidden reports whether any component of the path starts with a dot.
// The . and .. components are not hidden, and neither is .env: it is a
// configuration file the parser classifies, not clutter to skip.
func isHidden(path string) bool {
	for _, component := range strings.Split(filepath.ToSlash(path), "/") {
		if component == "." || component == ".." || component == ".env" {
			continue
		}
		if strings.HasPrefix(component, ".") {
			return true
		}
	}
	return false
}
