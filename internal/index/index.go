// Package index implements the concurrent content index: chunk storage,
// the token, content-type and file-pattern posting indexes, a cached
// statistics snapshot and the update-listener registry.
//
// Chunk storage and each posting index are independently-synchronized
// sharded maps, so a writer touching the token index never blocks a reader
// of the type index. Multi-step mutations are not transactional across
// tables; a concurrent reader can observe transient mixed state. That is
// acceptable for a rebuildable in-memory index over external files.
package index

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
	"github.com/rustic-ai/codeprism-sub002/internal/core/ports/driven"
	"github.com/rustic-ai/codeprism-sub002/internal/logger"
)

// Ensure ContentIndex implements the port.
var _ driven.ContentIndex = (*ContentIndex)(nil)

// chunkSet is a posting list: the set of chunk ids under one key.
type chunkSet map[domain.ChunkID]struct{}

// pathSet is the file-pattern posting list: the set of paths under one key.
type pathSet map[string]struct{}

// ContentIndex is the in-memory concurrent content store.
type ContentIndex struct {
	// nodes maps file path to its live content node.
	nodes *shardedMap[string, *domain.ContentNode]

	// chunks maps chunk id to the stored chunk.
	chunks *shardedMap[domain.ChunkID, domain.ContentChunk]

	// tokenIndex maps a lowercase token to the chunks containing it.
	tokenIndex *shardedMap[string, chunkSet]

	// typeIndex maps a content type key to the chunks of that type.
	typeIndex *shardedMap[string, chunkSet]

	// fileIndex maps filename/extension/path-component keys to paths.
	fileIndex *shardedMap[string, pathSet]

	statsMu    sync.RWMutex
	statsCache *domain.ContentStats

	listenersMu sync.RWMutex
	listeners   []driven.UpdateListener
}

// New creates an empty content index.
func New() *ContentIndex {
	return &ContentIndex{
		nodes:      newShardedMap[string, *domain.ContentNode](hashString),
		chunks:     newShardedMap[domain.ChunkID, domain.ContentChunk](hashChunkID),
		tokenIndex: newShardedMap[string, chunkSet](hashString),
		typeIndex:  newShardedMap[string, chunkSet](hashString),
		fileIndex:  newShardedMap[string, pathSet](hashString),
	}
}

// AddNode stores a node, superseding any node previously held at the same
// path. Old chunks leave the token and type indexes before the new chunks
// are inserted; the file-pattern index is only ever extended for a path
// that stays the same.
func (idx *ContentIndex) AddNode(node *domain.ContentNode) error {
	if node == nil {
		return domain.ErrInvalidInput
	}

	if old, ok := idx.nodes.Get(node.FilePath); ok {
		for _, chunk := range old.Chunks {
			idx.removeChunkFromIndexes(chunk.ID)
		}
	}

	for _, chunk := range node.Chunks {
		idx.addChunkToIndexes(chunk)
	}

	idx.indexFilePattern(node.FilePath)
	idx.nodes.Set(node.FilePath, node)
	idx.invalidateStats()

	idx.notify(domain.ContentUpdate{
		FilePath:  node.FilePath,
		Kind:      domain.UpdateModified,
		Timestamp: time.Now(),
	})
	return nil
}

// RemoveNode removes the node at the path, if any. Unknown paths are a
// silent no-op.
func (idx *ContentIndex) RemoveNode(filePath string) error {
	node, ok := idx.nodes.Delete(filePath)
	if !ok {
		return nil
	}

	for _, chunk := range node.Chunks {
		idx.removeChunkFromIndexes(chunk.ID)
	}
	idx.removeFilePattern(filePath)
	idx.invalidateStats()

	idx.notify(domain.ContentUpdate{
		FilePath:  filePath,
		Kind:      domain.UpdateDeleted,
		Timestamp: time.Now(),
	})
	return nil
}

// GetNode returns the node for a path.
func (idx *ContentIndex) GetNode(filePath string) (*domain.ContentNode, bool) {
	return idx.nodes.Get(filePath)
}

// GetChunk returns a chunk by id.
func (idx *ContentIndex) GetChunk(id domain.ChunkID) (domain.ContentChunk, bool) {
	return idx.chunks.Get(id)
}

// Clear empties all tables. Each table is cleared atomically with respect
// to its own readers, not across tables.
func (idx *ContentIndex) Clear() {
	idx.nodes.Clear()
	idx.chunks.Clear()
	idx.tokenIndex.Clear()
	idx.typeIndex.Clear()
	idx.fileIndex.Clear()
	idx.invalidateStats()
}

// AddUpdateListener registers a listener. Listeners run synchronously in
// the mutating caller's goroutine, in registration order.
func (idx *ContentIndex) AddUpdateListener(listener driven.UpdateListener) {
	idx.listenersMu.Lock()
	defer idx.listenersMu.Unlock()
	idx.listeners = append(idx.listeners, listener)
}

// GetStats returns the cached snapshot, recomputing when invalidated.
// Racing callers may each recompute; the computation is idempotent.
func (idx *ContentIndex) GetStats() domain.ContentStats {
	idx.statsMu.RLock()
	cached := idx.statsCache
	idx.statsMu.RUnlock()
	if cached != nil {
		return *cached
	}

	stats := idx.computeStats()

	idx.statsMu.Lock()
	idx.statsCache = &stats
	idx.statsMu.Unlock()
	return stats
}

func (idx *ContentIndex) invalidateStats() {
	idx.statsMu.Lock()
	idx.statsCache = nil
	idx.statsMu.Unlock()
}

func (idx *ContentIndex) addChunkToIndexes(chunk domain.ContentChunk) {
	for _, token := range chunk.Tokens {
		idx.tokenIndex.Update(token, func(set chunkSet, present bool) (chunkSet, bool) {
			if !present {
				set = make(chunkSet)
			}
			set[chunk.ID] = struct{}{}
			return set, true
		})
	}

	idx.typeIndex.Update(chunk.ContentType.Key(), func(set chunkSet, present bool) (chunkSet, bool) {
		if !present {
			set = make(chunkSet)
		}
		set[chunk.ID] = struct{}{}
		return set, true
	})

	idx.chunks.Set(chunk.ID, chunk)
}

// removeChunkFromIndexes drops a chunk from storage and prunes the token
// and type posting lists it appeared in. Keys whose sets become empty are
// removed outright, bounding memory for a churning vocabulary.
func (idx *ContentIndex) removeChunkFromIndexes(id domain.ChunkID) {
	chunk, ok := idx.chunks.Delete(id)
	if !ok {
		return
	}

	for _, token := range chunk.Tokens {
		idx.tokenIndex.Update(token, func(set chunkSet, present bool) (chunkSet, bool) {
			if !present {
				return nil, false
			}
			delete(set, id)
			return set, len(set) > 0
		})
	}

	idx.typeIndex.Update(chunk.ContentType.Key(), func(set chunkSet, present bool) (chunkSet, bool) {
		if !present {
			return nil, false
		}
		delete(set, id)
		return set, len(set) > 0
	})
}

// indexFilePattern records the path under its filename, "*.ext" and every
// path component, all lower-cased, for file discovery.
func (idx *ContentIndex) indexFilePattern(filePath string) {
	insert := func(key string) {
		idx.fileIndex.Update(key, func(set pathSet, present bool) (pathSet, bool) {
			if !present {
				set = make(pathSet)
			}
			set[filePath] = struct{}{}
			return set, true
		})
	}

	name := filepath.Base(filePath)
	insert(strings.ToLower(name))

	if ext := strings.TrimPrefix(filepath.Ext(filePath), "."); ext != "" {
		insert("*." + strings.ToLower(ext))
	}

	for _, component := range strings.Split(filepath.ToSlash(filePath), "/") {
		if component != "" {
			insert(strings.ToLower(component))
		}
	}
}

// removeFilePattern drops the filename and extension entries for a path.
func (idx *ContentIndex) removeFilePattern(filePath string) {
	remove := func(key string) {
		idx.fileIndex.Update(key, func(set pathSet, present bool) (pathSet, bool) {
			if !present {
				return nil, false
			}
			delete(set, filePath)
			return set, len(set) > 0
		})
	}

	remove(strings.ToLower(filepath.Base(filePath)))
	if ext := strings.TrimPrefix(filepath.Ext(filePath), "."); ext != "" {
		remove("*." + strings.ToLower(ext))
	}
}

// computeStats rebuilds the statistics snapshot from current table state.
func (idx *ContentIndex) computeStats() domain.ContentStats {
	logger.Debug("Recomputing index statistics")
	stats := domain.NewContentStats()

	stats.TotalFiles = idx.nodes.Len()
	stats.TotalChunks = idx.chunks.Len()
	stats.TotalTokens = idx.tokenIndex.Len()

	idx.typeIndex.Range(func(key string, set chunkSet) bool {
		stats.ContentByType[key] = len(set)
		return true
	})

	idx.nodes.Range(func(_ string, node *domain.ContentNode) bool {
		var bucket string
		switch {
		case node.FileSize <= 1024:
			bucket = "small (0-1KB)"
		case node.FileSize <= 10240:
			bucket = "medium (1-10KB)"
		case node.FileSize <= 102400:
			bucket = "large (10-100KB)"
		default:
			bucket = "very_large (>100KB)"
		}
		stats.SizeDistribution[bucket]++
		return true
	})

	stats.ComputedAt = time.Now()
	return stats
}

// notify delivers an update to every listener while holding the registry
// read lock. A slow or failing listener is the listener's responsibility.
func (idx *ContentIndex) notify(update domain.ContentUpdate) {
	idx.listenersMu.RLock()
	defer idx.listenersMu.RUnlock()
	for _, listener := range idx.listeners {
		listener.OnContentUpdate(update)
	}
}

// LoggingListener logs index updates through the logger package.
type LoggingListener struct{}

// OnContentUpdate implements driven.UpdateListener.
func (LoggingListener) OnContentUpdate(update domain.ContentUpdate) {
	logger.Info("Content %s: %s", update.Kind, update.FilePath)
}
