// Package bloom provides approximate URL deduplication using Bloom filters.
//
// A Bloom seen set uses a fixed amount of memory regardless of how many URLs
// a crawl discovers. In exchange, a small fraction of URLs that were never
// seen are wrongly reported as seen and silently skipped. URLs that were
// seen are never reported again.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/wrake"
)

// Ensure SeenSet implements wrake.SeenSet at compile time.
var _ wrake.SeenSet = (*SeenSet)(nil)

// SeenSet is a wrake.SeenSet backed by a Bloom filter.
type SeenSet struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
	n  int
}

// NewSeenSet creates a seen set sized for n expected URLs
// with the given false positive rate.
func NewSeenSet(n uint, fpRate float64) *SeenSet {
	return &SeenSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Insert adds url and reports whether it was not already present.
func (s *SeenSet) Insert(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f.TestAndAddString(url) {
		return false
	}
	s.n++
	return true
}

// Len returns the number of URLs admitted by Insert.
func (s *SeenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

// EstimatedCount returns the filter's own estimate of the number of
// distinct URLs added.
func (s *SeenSet) EstimatedCount() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint(s.f.ApproximatedSize())
}
