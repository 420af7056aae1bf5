package crawl

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wrake"
)

// Compile-time interface verification.
var _ wrake.SeenSet = (*SeenSet)(nil)

// seenShards is the number of independently locked partitions of a SeenSet.
const seenShards = 32

// SeenSet is an exact set of URLs, safe for concurrent use.
// URLs are partitioned across shards by xxhash so concurrent inserts of
// different URLs rarely contend on the same lock.
type SeenSet struct {
	shards [seenShards]seenShard
}

type seenShard struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

// NewSeenSet creates an empty SeenSet.
func NewSeenSet() *SeenSet {
	s := &SeenSet{}
	for i := range s.shards {
		s.shards[i].urls = make(map[string]struct{})
	}
	return s
}

// Insert adds url and reports whether it was absent.
func (s *SeenSet) Insert(url string) bool {
	shard := &s.shards[xxhash.Sum64String(url)%seenShards]
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if _, ok := shard.urls[url]; ok {
		return false
	}
	shard.urls[url] = struct{}{}
	return true
}

// Len returns the number of URLs in the set.
func (s *SeenSet) Len() int {
	n := 0
	for i := range s.shards {
		shard := &s.shards[i]
		shard.mu.Lock()
		n += len(shard.urls)
		shard.mu.Unlock()
	}
	return n
}
