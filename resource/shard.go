package resource

import (
	"hash/fnv"
	"sync"
)

const (
	// ShardCount is the number of shards the key space is split across.
	// Must be a power of 2 for fast modulo via bitwise AND.
	ShardCount = 16

	shardMask = ShardCount - 1
)

// Hasher computes the hash used to pick a shard for a key.
type Hasher func(key string) uint64

// StringHasher computes the FNV-1a hash of a key.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// shard is one lock domain of the cache.
type shard struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func newShard() *shard {
	return &shard{entries: make(map[string]*entry)}
}

func (s *shard) load(key string) (*entry, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	return e, ok
}

// insertIfAbsent stores e unless the key is taken or closed reports true.
// closed is evaluated under the shard lock. It returns the entry that is
// canonical for the key afterwards and whether e was the one stored.
func (s *shard) insertIfAbsent(e *entry, closed func() bool) (canonical *entry, stored bool, rejected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if closed() {
		return nil, false, true
	}
	if existing, ok := s.entries[e.key]; ok {
		return existing, false, false
	}
	s.entries[e.key] = e
	return e, true, false
}

// detach removes and returns the entry for key.
func (s *shard) detach(key string) (*entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	delete(s.entries, key)
	return e, true
}

// drain empties the shard and returns everything it held.
func (s *shard) drain() []*entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	s.entries = make(map[string]*entry)
	return out
}

func (s *shard) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *shard) keys(dst []string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k := range s.entries {
		dst = append(dst, k)
	}
	return dst
}
