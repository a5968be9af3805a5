package index

import (
	"sync"

	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
)

// shardCount fixes the number of independently-locked buckets per map.
const shardCount = 32

// mapShard is one lock-guarded bucket of a sharded map.
type mapShard[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// shardedMap is a concurrent map with per-shard read/write locks, so writers
// touching one shard do not block readers of another. Each index table gets
// its own shardedMap, keeping the "independent structures, independent locks"
// contract.
type shardedMap[K comparable, V any] struct {
	hash   func(K) uint32
	shards [shardCount]*mapShard[K, V]
}

// newShardedMap creates a sharded map using the given key hasher.
func newShardedMap[K comparable, V any](hash func(K) uint32) *shardedMap[K, V] {
	m := &shardedMap[K, V]{hash: hash}
	for i := range m.shards {
		m.shards[i] = &mapShard[K, V]{items: make(map[K]V)}
	}
	return m
}

func (m *shardedMap[K, V]) shard(key K) *mapShard[K, V] {
	return m.shards[m.hash(key)%shardCount]
}

// Get returns the value for key, or false if absent.
func (m *shardedMap[K, V]) Get(key K) (V, bool) {
	s := m.shard(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Set stores a value under key.
func (m *shardedMap[K, V]) Set(key K, value V) {
	s := m.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// Delete removes key. Returns the removed value and whether it was present.
func (m *shardedMap[K, V]) Delete(key K) (V, bool) {
	s := m.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if ok {
		delete(s.items, key)
	}
	return v, ok
}

// Update mutates the value under key while holding the shard lock. fn
// receives the current value (or the zero value when absent); returning
// keep=false removes the key, which is how empty posting sets get pruned.
func (m *shardedMap[K, V]) Update(key K, fn func(value V, present bool) (V, bool)) {
	s := m.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	current, present := s.items[key]
	next, keep := fn(current, present)
	if keep {
		s.items[key] = next
	} else if present {
		delete(s.items, key)
	}
}

// View runs fn with the value under the shard read lock. Mutable values
// such as posting sets must only be read this way; Get hands out the map
// reference itself, which a concurrent Update would race with. fn must not
// retain the value or call back into the map.
func (m *shardedMap[K, V]) View(key K, fn func(value V, present bool)) {
	s := m.shard(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	fn(v, ok)
}

// Len returns the total number of entries across all shards.
func (m *shardedMap[K, V]) Len() int {
	total := 0
	for _, s := range m.shards {
		s.mu.RLock()
		total += len(s.items)
		s.mu.RUnlock()
	}
	return total
}

// Range calls fn for every entry until fn returns false. Iteration holds
// one shard's read lock at a time; entries added or removed concurrently
// may or may not be observed.
func (m *shardedMap[K, V]) Range(fn func(key K, value V) bool) {
	for _, s := range m.shards {
		s.mu.RLock()
		for k, v := range s.items {
			if !fn(k, v) {
				s.mu.RUnlock()
				return
			}
		}
		s.mu.RUnlock()
	}
}

// Clear removes every entry, one shard at a time.
func (m *shardedMap[K, V]) Clear() {
	for _, s := range m.shards {
		s.mu.Lock()
		s.items = make(map[K]V)
		s.mu.Unlock()
	}
}

// hashString is FNV-1a over the key bytes.
func hashString(key string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(key); i++ {
		h ^= uint32(key[i])
		h *= prime32
	}
	return h
}

// hashChunkID reuses the id's leading bytes; chunk ids are already uniform.
func hashChunkID(id domain.ChunkID) uint32 {
	return uint32(id[0]) | uint32(id[1])<<8 | uint32(id[2])<<16 | uint32(id[3])<<24
}
