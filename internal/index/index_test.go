package index

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
)

func newTestNode(path string, contentType domain.ContentType, contents ...string) *domain.ContentNode {
	node := domain.NewContentNode(path, contentType)
	for i, content := range contents {
		node.AddChunk(domain.NewContentChunk(path, contentType, content, domain.Span{}, i))
	}
	node.FileSize = 100
	return node
}

// recordingListener captures updates for assertions.
type recordingListener struct {
	mu      sync.Mutex
	updates []domain.ContentUpdate
}

func (l *recordingListener) OnContentUpdate(update domain.ContentUpdate) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.updates = append(l.updates, update)
}

func (l *recordingListener) all() []domain.ContentUpdate {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.ContentUpdate(nil), l.updates...)
}

func TestContentIndex_AddNode(t *testing.T) {
	t.Run("stores node and chunks", func(t *testing.T) {
		idx := New()
		node := newTestNode("doc.md", domain.DocumentationType(domain.DocMarkdown), "hello world")

		require.NoError(t, idx.AddNode(node))

		got, ok := idx.GetNode("doc.md")
		require.True(t, ok)
		assert.Equal(t, "doc.md", got.FilePath)

		chunk, ok := idx.GetChunk(node.Chunks[0].ID)
		require.True(t, ok)
		assert.Equal(t, "hello world", chunk.Content)
	})

	t.Run("nil node is rejected", func(t *testing.T) {
		idx := New()

		err := idx.AddNode(nil)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("re-adding a path replaces its chunks", func(t *testing.T) {
		idx := New()
		old := newTestNode("doc.md", domain.DocumentationType(domain.DocMarkdown), "obsolete words")
		require.NoError(t, idx.AddNode(old))

		replacement := newTestNode("doc.md", domain.DocumentationType(domain.DocMarkdown), "fresh words")
		require.NoError(t, idx.AddNode(replacement))

		// Old chunk is gone.
		_, ok := idx.GetChunk(old.Chunks[0].ID)
		assert.False(t, ok)

		// Searching the old token finds nothing: no dangling postings.
		results, err := idx.Search(domain.NewSearchQuery("obsolete"))
		require.NoError(t, err)
		assert.Empty(t, results)

		results, err = idx.Search(domain.NewSearchQuery("fresh"))
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})
}

func TestContentIndex_RemoveNode(t *testing.T) {
	t.Run("removes node and postings", func(t *testing.T) {
		idx := New()
		node := newTestNode("doc.md", domain.DocumentationType(domain.DocMarkdown), "searchable words")
		require.NoError(t, idx.AddNode(node))

		require.NoError(t, idx.RemoveNode("doc.md"))

		_, ok := idx.GetNode("doc.md")
		assert.False(t, ok)
		_, ok = idx.GetChunk(node.Chunks[0].ID)
		assert.False(t, ok)

		results, err := idx.Search(domain.NewSearchQuery("searchable"))
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("removing unknown path is a no-op", func(t *testing.T) {
		idx := New()

		assert.NoError(t, idx.RemoveNode("never-indexed.md"))
	})
}

func TestContentIndex_Clear(t *testing.T) {
	idx := New()
	require.NoError(t, idx.AddNode(newTestNode("a.md", domain.DocumentationType(domain.DocMarkdown), "alpha")))
	require.NoError(t, idx.AddNode(newTestNode("b.json", domain.ConfigurationType(domain.ConfigJSON), "beta")))

	idx.Clear()

	stats := idx.GetStats()
	assert.Equal(t, 0, stats.TotalFiles)
	assert.Equal(t, 0, stats.TotalChunks)
	assert.Equal(t, 0, stats.TotalTokens)
}

func TestContentIndex_GetStats(t *testing.T) {
	t.Run("counts files chunks and tokens", func(t *testing.T) {
		idx := New()
		require.NoError(t, idx.AddNode(newTestNode("a.md", domain.DocumentationType(domain.DocMarkdown), "alpha beta", "gamma")))
		require.NoError(t, idx.AddNode(newTestNode("b.json", domain.ConfigurationType(domain.ConfigJSON), "delta")))

		stats := idx.GetStats()

		assert.Equal(t, 2, stats.TotalFiles)
		assert.Equal(t, 3, stats.TotalChunks)
		assert.Equal(t, 4, stats.TotalTokens)
		assert.Equal(t, 2, stats.ContentByType["doc:markdown"])
		assert.Equal(t, 1, stats.ContentByType["config:json"])
		assert.False(t, stats.ComputedAt.IsZero())
	})

	t.Run("size buckets", func(t *testing.T) {
		idx := New()

		sizes := map[string]int{
			"tiny.md":  512,
			"mid.md":   5 * 1024,
			"big.md":   50 * 1024,
			"huge.md":  500 * 1024,
			"tiny2.md": 1024,
		}
		for path, size := range sizes {
			node := newTestNode(path, domain.DocumentationType(domain.DocMarkdown), "content")
			node.FileSize = size
			require.NoError(t, idx.AddNode(node))
		}

		stats := idx.GetStats()

		assert.Equal(t, 2, stats.SizeDistribution["small (0-1KB)"])
		assert.Equal(t, 1, stats.SizeDistribution["medium (1-10KB)"])
		assert.Equal(t, 1, stats.SizeDistribution["large (10-100KB)"])
		assert.Equal(t, 1, stats.SizeDistribution["very_large (>100KB)"])
	})

	t.Run("cache is invalidated by mutation", func(t *testing.T) {
		idx := New()
		require.NoError(t, idx.AddNode(newTestNode("a.md", domain.DocumentationType(domain.DocMarkdown), "alpha")))

		first := idx.GetStats()
		assert.Equal(t, 1, first.TotalFiles)

		require.NoError(t, idx.AddNode(newTestNode("b.md", domain.DocumentationType(domain.DocMarkdown), "beta")))

		second := idx.GetStats()
		assert.Equal(t, 2, second.TotalFiles)
	})
}

func TestContentIndex_Listeners(t *testing.T) {
	t.Run("add and remove notify in order", func(t *testing.T) {
		idx := New()
		listener := &recordingListener{}
		idx.AddUpdateListener(listener)

		require.NoError(t, idx.AddNode(newTestNode("doc.md", domain.DocumentationType(domain.DocMarkdown), "hello")))
		require.NoError(t, idx.RemoveNode("doc.md"))

		updates := listener.all()
		require.Len(t, updates, 2)
		assert.Equal(t, domain.UpdateModified, updates[0].Kind)
		assert.Equal(t, "doc.md", updates[0].FilePath)
		assert.Equal(t, domain.UpdateDeleted, updates[1].Kind)
	})

	t.Run("multiple listeners all fire", func(t *testing.T) {
		idx := New()
		first := &recordingListener{}
		second := &recordingListener{}
		idx.AddUpdateListener(first)
		idx.AddUpdateListener(second)

		require.NoError(t, idx.AddNode(newTestNode("doc.md", domain.DocumentationType(domain.DocMarkdown), "hello")))

		assert.Len(t, first.all(), 1)
		assert.Len(t, second.all(), 1)
	})
}

func TestContentIndex_ConcurrentAccess(t *testing.T) {
	idx := New()
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				path := fmt.Sprintf("file-%d-%d.md", g, i)
				node := newTestNode(path, domain.DocumentationType(domain.DocMarkdown), "shared tokens here")
				if err := idx.AddNode(node); err != nil {
					t.Error(err)
					return
				}
				if _, err := idx.Search(domain.NewSearchQuery("shared")); err != nil {
					t.Error(err)
					return
				}
				// Multi-token queries intersect posting sets while other
				// goroutines mutate them.
				if _, err := idx.Search(domain.NewSearchQuery("shared tokens")); err != nil {
					t.Error(err)
					return
				}
				idx.GetStats()
			}
		}(g)
	}
	wg.Wait()

	stats := idx.GetStats()
	assert.Equal(t, 8*50, stats.TotalFiles)
}
