package index

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShardedMap(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		m := newShardedMap[string, int](hashString)
		m.Set("one", 1)
		m.Set("two", 2)

		v, ok := m.Get("one")
		require.True(t, ok)
		assert.Equal(t, 1, v)

		_, ok = m.Get("missing")
		assert.False(t, ok)
	})

	t.Run("set overwrites", func(t *testing.T) {
		m := newShardedMap[string, int](hashString)
		m.Set("key", 1)
		m.Set("key", 2)

		v, _ := m.Get("key")
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("delete returns removed value", func(t *testing.T) {
		m := newShardedMap[string, int](hashString)
		m.Set("key", 7)

		v, ok := m.Delete("key")
		require.True(t, ok)
		assert.Equal(t, 7, v)

		_, ok = m.Delete("key")
		assert.False(t, ok)
		assert.Equal(t, 0, m.Len())
	})

	t.Run("update can drop entries", func(t *testing.T) {
		m := newShardedMap[string, map[string]struct{}](hashString)
		m.Update("key", func(set map[string]struct{}, present bool) (map[string]struct{}, bool) {
			require.False(t, present)
			return map[string]struct{}{"a": {}}, true
		})
		assert.Equal(t, 1, m.Len())

		m.Update("key", func(set map[string]struct{}, present bool) (map[string]struct{}, bool) {
			require.True(t, present)
			delete(set, "a")
			return set, len(set) > 0
		})
		assert.Equal(t, 0, m.Len())
	})

	t.Run("view reads under the shard lock", func(t *testing.T) {
		m := newShardedMap[string, map[string]struct{}](hashString)
		m.Set("key", map[string]struct{}{"a": {}, "b": {}})

		size := 0
		m.View("key", func(set map[string]struct{}, present bool) {
			require.True(t, present)
			size = len(set)
		})
		assert.Equal(t, 2, size)

		called := false
		m.View("absent", func(set map[string]struct{}, present bool) {
			called = true
			assert.False(t, present)
			assert.Nil(t, set)
		})
		assert.True(t, called)
	})

	t.Run("concurrent view and update of one entry", func(t *testing.T) {
		m := newShardedMap[string, map[string]struct{}](hashString)
		m.Set("postings", map[string]struct{}{"seed": {}})

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 200; i++ {
					member := fmt.Sprintf("member-%d-%d", g, i)
					m.Update("postings", func(set map[string]struct{}, present bool) (map[string]struct{}, bool) {
						set[member] = struct{}{}
						return set, true
					})
					m.View("postings", func(set map[string]struct{}, present bool) {
						for range set {
						}
					})
				}
			}(g)
		}
		wg.Wait()

		members := 0
		m.View("postings", func(set map[string]struct{}, _ bool) {
			members = len(set)
		})
		assert.Equal(t, 1+8*200, members)
	})

	t.Run("range visits every entry and honours stop", func(t *testing.T) {
		m := newShardedMap[string, int](hashString)
		for i := 0; i < 50; i++ {
			m.Set(fmt.Sprintf("key-%d", i), i)
		}

		seen := 0
		m.Range(func(string, int) bool {
			seen++
			return true
		})
		assert.Equal(t, 50, seen)

		visited := 0
		m.Range(func(string, int) bool {
			visited++
			return false
		})
		assert.Equal(t, 1, visited)
	})

	t.Run("clear empties the map", func(t *testing.T) {
		m := newShardedMap[string, int](hashString)
		m.Set("a", 1)
		m.Set("b", 2)
		m.Clear()

		assert.Equal(t, 0, m.Len())
	})

	t.Run("concurrent writers and readers", func(t *testing.T) {
		m := newShardedMap[string, int](hashString)
		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 200; i++ {
					key := fmt.Sprintf("key-%d-%d", g, i)
					m.Set(key, i)
					m.Get(key)
				}
			}(g)
		}
		wg.Wait()

		assert.Equal(t, 8*200, m.Len())
	})
}
